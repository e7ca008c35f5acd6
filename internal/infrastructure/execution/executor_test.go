//go:build unit
// +build unit

package execution

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kemaleren/lazyflow/internal/domain/provision"
	"github.com/kemaleren/lazyflow/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()

	// sh keeps the script steps portable across test hosts.
	executor, err := NewExecutor(Options{Shell: "sh"}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return executor
}

func TestRender_CommandSteps(t *testing.T) {
	executor := newTestExecutor(t)

	tests := []struct {
		name     string
		step     provision.Step
		expected string
	}{
		{
			"packages",
			provision.Step{Kind: provision.KindPackages, Packages: []string{"libhdf5-serial-dev", "libfftw3-dev"}},
			"apt-get install -y libhdf5-serial-dev libfftw3-dev",
		},
		{
			"pip",
			provision.Step{Kind: provision.KindPip, RequirementsFile: "requirements/development-stage1.txt"},
			"pip install -r requirements/development-stage1.txt",
		},
		{
			"script",
			provision.Step{Kind: provision.KindScript, ScriptPath: "requirements/build_drtile.sh", ScriptArgs: []string{"$VIRTUAL_ENV"}},
			"sh requirements/build_drtile.sh $VIRTUAL_ENV",
		},
		{
			"test",
			provision.Step{Kind: provision.KindTest, Command: []string{"nosetests", "--nologcapture", "tests"}},
			"nosetests --nologcapture tests",
		},
		{
			"export prepend",
			provision.Step{Kind: provision.KindExport, EnvName: "LD_LIBRARY_PATH", EnvValue: "/usr/local/lib", PrependPath: true},
			"export LD_LIBRARY_PATH=/usr/local/lib:$LD_LIBRARY_PATH",
		},
		{
			"export set",
			provision.Step{Kind: provision.KindExport, EnvName: "CC", EnvValue: "gcc"},
			"export CC=gcc",
		},
		{
			"configfile",
			provision.Step{Kind: provision.KindConfigFile, ConfigPath: "~/.lazyflow/config"},
			"write ~/.lazyflow/config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command, err := executor.Render(tt.step)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, command)
		})
	}
}

func TestExecute_ExportMutatesOverlay(t *testing.T) {
	executor := newTestExecutor(t)
	env := provision.NewEnviron([]string{"LD_LIBRARY_PATH=/opt/lib"})

	step := provision.Step{
		Name:        "library-path",
		Kind:        provision.KindExport,
		EnvName:     "LD_LIBRARY_PATH",
		EnvValue:    "/usr/local/lib",
		PrependPath: true,
	}

	outcome, err := executor.Execute(context.Background(), step, env)
	require.NoError(t, err)

	value, _ := env.Get("LD_LIBRARY_PATH")
	assert.Equal(t, "/usr/local/lib:/opt/lib", value)
	assert.Equal(t, 0, outcome.ExitCode)
	assert.Contains(t, outcome.Output, "/usr/local/lib:/opt/lib")
}

func TestExecute_ScriptSeesExportedVariables(t *testing.T) {
	executor := newTestExecutor(t)
	dir := t.TempDir()
	script := testutil.CreateTestScript(t, dir, "check_env.sh", `echo "venv is $1"; test -n "$LD_LIBRARY_PATH"`)

	env := provision.NewEnviron([]string{"PATH=" + os.Getenv("PATH")})
	env.Set("VIRTUAL_ENV", "/home/dev/venv")
	env.PrependPath("LD_LIBRARY_PATH", "/usr/local/lib")

	step := provision.Step{
		Name:       "build-drtile",
		Kind:       provision.KindScript,
		ScriptPath: script,
		ScriptArgs: []string{"$VIRTUAL_ENV"},
	}

	outcome, err := executor.Execute(context.Background(), step, env)
	require.NoError(t, err)

	// The positional argument was expanded from the overlay, not the
	// process environment.
	assert.Contains(t, outcome.Output, "venv is /home/dev/venv")
}

func TestExecute_FailingScriptReportsExitCode(t *testing.T) {
	executor := newTestExecutor(t)
	dir := t.TempDir()
	script := testutil.CreateTestScript(t, dir, "fail.sh", "echo boom >&2; exit 2")

	env := provision.NewEnviron([]string{"PATH=" + os.Getenv("PATH")})
	step := provision.Step{Name: "fail", Kind: provision.KindScript, ScriptPath: script}

	outcome, err := executor.Execute(context.Background(), step, env)
	require.Error(t, err)

	assert.Equal(t, 2, outcome.ExitCode)
	assert.Contains(t, outcome.Output, "boom")
}

func TestExecute_ConfigFileBootstrap(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	executor := newTestExecutor(t)
	env := provision.NewEnviron(nil)

	step := provision.Step{
		Name:       "user-config",
		Kind:       provision.KindConfigFile,
		ConfigPath: "~/.lazyflow/config",
		ConfigSections: []provision.ConfigSection{
			{
				Name:    "verbosity",
				Entries: []provision.ConfigEntry{{Key: "deprecation_warnings", Value: "false"}},
			},
		},
	}

	_, err := executor.Execute(context.Background(), step, env)
	require.NoError(t, err)

	configPath := filepath.Join(home, ".lazyflow", "config")
	file, err := ini.Load(configPath)
	require.NoError(t, err)

	section, err := file.GetSection("verbosity")
	require.NoError(t, err)
	assert.Equal(t, "false", section.Key("deprecation_warnings").String())

	// Re-running the step is idempotent.
	_, err = executor.Execute(context.Background(), step, env)
	require.NoError(t, err)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	expanded, err := ExpandHome("~/.lazyflow/config")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".lazyflow", "config"), expanded)

	passthrough, err := ExpandHome("/etc/lazyflow/config")
	require.NoError(t, err)
	assert.Equal(t, "/etc/lazyflow/config", passthrough)
}

func TestNewExecutor_RequiresLogger(t *testing.T) {
	_, err := NewExecutor(Options{}, nil)
	require.Error(t, err)
}
