//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kemaleren/lazyflow/internal/domain/provision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultManifest_ToPlan(t *testing.T) {
	plan, err := DefaultManifest().ToPlan()
	require.NoError(t, err)

	assert.Equal(t, "lazyflow-development", plan.Name)
	assert.Equal(t, "master", plan.Branch)
	require.Len(t, plan.Steps, 8)

	// The artifacts the bootstrap is defined by.
	assert.Equal(t, provision.KindPackages, plan.Steps[0].Kind)
	assert.Contains(t, plan.Steps[0].Packages, "libhdf5-serial-dev")
	assert.Contains(t, plan.Steps[0].Packages, "libfftw3-dev")

	assert.Equal(t, provision.KindExport, plan.Steps[1].Kind)
	assert.Equal(t, "LD_LIBRARY_PATH", plan.Steps[1].EnvName)
	assert.Equal(t, "/usr/local/lib", plan.Steps[1].EnvValue)
	assert.True(t, plan.Steps[1].PrependPath)

	assert.Equal(t, provision.KindPip, plan.Steps[2].Kind)
	assert.Equal(t, "requirements/development-stage1.txt", plan.Steps[2].RequirementsFile)

	assert.Equal(t, "requirements/install_h5py.sh", plan.Steps[3].ScriptPath)
	assert.Equal(t, "requirements/install_vigra.sh", plan.Steps[4].ScriptPath)
	assert.Equal(t, "requirements/build_drtile.sh", plan.Steps[5].ScriptPath)
	assert.Equal(t, []string{"$VIRTUAL_ENV"}, plan.Steps[5].ScriptArgs)

	require.Equal(t, provision.KindConfigFile, plan.Steps[6].Kind)
	assert.Equal(t, "~/.lazyflow/config", plan.Steps[6].ConfigPath)
	require.Len(t, plan.Steps[6].ConfigSections, 1)
	section := plan.Steps[6].ConfigSections[0]
	assert.Equal(t, "verbosity", section.Name)
	require.Len(t, section.Entries, 1)
	assert.Equal(t, "deprecation_warnings", section.Entries[0].Key)
	assert.Equal(t, "false", section.Entries[0].Value)

	assert.Equal(t, provision.KindTest, plan.Steps[7].Kind)
	assert.Equal(t, []string{"nosetests", "--nologcapture", "tests"}, plan.Steps[7].Command)
}

func TestLoadPlan_EmptyPathUsesBuiltinPlan(t *testing.T) {
	plan, err := LoadPlan("")
	require.NoError(t, err)
	assert.Equal(t, "lazyflow-development", plan.Name)
}

func TestLoadPlan_FromYAML(t *testing.T) {
	manifest := `
name: minimal
branch: master
steps:
  - name: python-requirements
    kind: pip
    requirements_file: requirements/development-stage1.txt
  - name: test-suite
    kind: test
    command: [nosetests, --nologcapture, tests]
    timeout_seconds: 600
`
	path := filepath.Join(t.TempDir(), "bootstrap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0600))

	plan, err := LoadPlan(path)
	require.NoError(t, err)

	assert.Equal(t, "minimal", plan.Name)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, provision.KindPip, plan.Steps[0].Kind)
	assert.Equal(t, 600, plan.Steps[1].TimeoutSeconds)
}

func TestLoadPlan_InvalidManifest(t *testing.T) {
	manifest := `
name: broken
steps:
  - name: python-requirements
    kind: pip
`
	path := filepath.Join(t.TempDir(), "bootstrap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0600))

	_, err := LoadPlan(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requirements file")
}

func TestLoadPlan_MissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
