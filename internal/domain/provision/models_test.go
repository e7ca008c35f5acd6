//go:build unit
// +build unit

package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlan() *Plan {
	return &Plan{
		Name:   "lazyflow-development",
		Branch: "master",
		Steps: []Step{
			{
				Name:     "system-packages",
				Kind:     KindPackages,
				Packages: []string{"libhdf5-serial-dev", "libfftw3-dev"},
			},
			{
				Name:        "library-path",
				Kind:        KindExport,
				EnvName:     "LD_LIBRARY_PATH",
				EnvValue:    "/usr/local/lib",
				PrependPath: true,
			},
			{
				Name:             "python-requirements",
				Kind:             KindPip,
				RequirementsFile: "requirements/development-stage1.txt",
			},
			{
				Name:       "build-drtile",
				Kind:       KindScript,
				ScriptPath: "requirements/build_drtile.sh",
				ScriptArgs: []string{"$VIRTUAL_ENV"},
			},
			{
				Name:       "user-config",
				Kind:       KindConfigFile,
				ConfigPath: "~/.lazyflow/config",
				ConfigSections: []ConfigSection{
					{
						Name:    "verbosity",
						Entries: []ConfigEntry{{Key: "deprecation_warnings", Value: "false"}},
					},
				},
			},
			{
				Name:    "test-suite",
				Kind:    KindTest,
				Command: []string{"nosetests", "--nologcapture", "tests"},
			},
		},
	}
}

func TestPlanValidation_Valid(t *testing.T) {
	plan := validPlan()
	require.NoError(t, plan.Validate())
}

func TestPlanValidation_StructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Plan)
	}{
		{"missing name", func(p *Plan) { p.Name = "" }},
		{"no steps", func(p *Plan) { p.Steps = nil }},
		{"unknown kind", func(p *Plan) { p.Steps[0].Kind = "compile" }},
		{"missing step name", func(p *Plan) { p.Steps[0].Name = "" }},
		{"duplicate step names", func(p *Plan) { p.Steps[1].Name = p.Steps[0].Name }},
		{"negative timeout", func(p *Plan) { p.Steps[0].TimeoutSeconds = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(plan)
			assert.Error(t, plan.Validate())
		})
	}
}

func TestPlanValidation_KindSpecificErrors(t *testing.T) {
	tests := []struct {
		name   string
		step   Step
		errMsg string
	}{
		{
			"packages without packages",
			Step{Name: "s", Kind: KindPackages},
			"at least one package",
		},
		{
			"packages with empty name",
			Step{Name: "s", Kind: KindPackages, Packages: []string{"cmake", ""}},
			"empty package name",
		},
		{
			"pip without requirements file",
			Step{Name: "s", Kind: KindPip},
			"requirements file",
		},
		{
			"script without path",
			Step{Name: "s", Kind: KindScript},
			"script path",
		},
		{
			"export without variable name",
			Step{Name: "s", Kind: KindExport, EnvValue: "/usr/local/lib"},
			"variable name",
		},
		{
			"export without value",
			Step{Name: "s", Kind: KindExport, EnvName: "LD_LIBRARY_PATH"},
			"value",
		},
		{
			"configfile without path",
			Step{Name: "s", Kind: KindConfigFile, ConfigSections: []ConfigSection{{Name: "verbosity", Entries: []ConfigEntry{{Key: "k", Value: "v"}}}}},
			"target path",
		},
		{
			"configfile without sections",
			Step{Name: "s", Kind: KindConfigFile, ConfigPath: "~/.lazyflow/config"},
			"at least one section",
		},
		{
			"test without command",
			Step{Name: "s", Kind: KindTest},
			"command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &Plan{Name: "p", Steps: []Step{tt.step}}
			err := plan.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
