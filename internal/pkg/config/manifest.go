package config

import (
	"fmt"

	"github.com/kemaleren/lazyflow/internal/domain/provision"

	"github.com/spf13/viper"
)

// BootstrapManifest is the on-disk (YAML) form of a bootstrap plan.
type BootstrapManifest struct {
	Name   string         `mapstructure:"name"`
	Branch string         `mapstructure:"branch"`
	Steps  []StepManifest `mapstructure:"steps"`
}

// StepManifest is the on-disk form of a single plan step.
type StepManifest struct {
	Name             string            `mapstructure:"name"`
	Kind             string            `mapstructure:"kind"`
	Packages         []string          `mapstructure:"packages"`
	RequirementsFile string            `mapstructure:"requirements_file"`
	ScriptPath       string            `mapstructure:"script_path"`
	ScriptArgs       []string          `mapstructure:"script_args"`
	EnvName          string            `mapstructure:"env_name"`
	EnvValue         string            `mapstructure:"env_value"`
	PrependPath      bool              `mapstructure:"prepend_path"`
	ConfigPath       string            `mapstructure:"config_path"`
	Sections         []SectionManifest `mapstructure:"sections"`
	Command          []string          `mapstructure:"command"`
	TimeoutSeconds   int               `mapstructure:"timeout_seconds"`
}

// SectionManifest is the on-disk form of an INI-like config file section.
type SectionManifest struct {
	Name    string            `mapstructure:"name"`
	Entries map[string]string `mapstructure:"entries"`
}

// ToPlan converts the manifest into a validated domain plan.
func (m *BootstrapManifest) ToPlan() (*provision.Plan, error) {
	plan := &provision.Plan{
		Name:   m.Name,
		Branch: m.Branch,
		Steps:  make([]provision.Step, 0, len(m.Steps)),
	}

	for _, sm := range m.Steps {
		step := provision.Step{
			Name:             sm.Name,
			Kind:             provision.StepKind(sm.Kind),
			Packages:         sm.Packages,
			RequirementsFile: sm.RequirementsFile,
			ScriptPath:       sm.ScriptPath,
			ScriptArgs:       sm.ScriptArgs,
			EnvName:          sm.EnvName,
			EnvValue:         sm.EnvValue,
			PrependPath:      sm.PrependPath,
			ConfigPath:       sm.ConfigPath,
			Command:          sm.Command,
			TimeoutSeconds:   sm.TimeoutSeconds,
		}
		for _, section := range sm.Sections {
			converted := provision.ConfigSection{Name: section.Name}
			for key, value := range section.Entries {
				converted.Entries = append(converted.Entries, provision.ConfigEntry{Key: key, Value: value})
			}
			step.ConfigSections = append(step.ConfigSections, converted)
		}
		plan.Steps = append(plan.Steps, step)
	}

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bootstrap plan: %w", err)
	}

	return plan, nil
}

// LoadManifest reads a bootstrap plan manifest from a YAML file.
func LoadManifest(manifestPath string) (*BootstrapManifest, error) {
	v := viper.New()
	v.SetConfigFile(manifestPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}

	var manifest BootstrapManifest
	if err := v.Unmarshal(&manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}

// LoadPlan reads a manifest and converts it into a validated plan. An
// empty path yields the built-in lazyflow development plan.
func LoadPlan(manifestPath string) (*provision.Plan, error) {
	if manifestPath == "" {
		return DefaultManifest().ToPlan()
	}

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	return manifest.ToPlan()
}

// DefaultManifest returns the built-in plan provisioning the lazyflow
// development environment: the native library stack, the stage-1 Python
// requirements, the h5py/vigra/drtile build scripts, the user config
// bootstrap and the nose test suite, restricted to the master branch.
func DefaultManifest() *BootstrapManifest {
	return &BootstrapManifest{
		Name:   "lazyflow-development",
		Branch: provision.DefaultBranch,
		Steps: []StepManifest{
			{
				Name: "system-packages",
				Kind: string(provision.KindPackages),
				Packages: []string{
					"build-essential",
					"cmake",
					"libhdf5-serial-dev",
					"libfftw3-dev",
					"libboost-python-dev",
					"libjpeg-dev",
					"libpng-dev",
					"libtiff-dev",
					"python-dev",
					"python-numpy",
					"python-pip",
				},
			},
			{
				Name:        "library-path",
				Kind:        string(provision.KindExport),
				EnvName:     "LD_LIBRARY_PATH",
				EnvValue:    "/usr/local/lib",
				PrependPath: true,
			},
			{
				Name:             "python-requirements",
				Kind:             string(provision.KindPip),
				RequirementsFile: "requirements/development-stage1.txt",
			},
			{
				Name:       "install-h5py",
				Kind:       string(provision.KindScript),
				ScriptPath: "requirements/install_h5py.sh",
			},
			{
				Name:       "install-vigra",
				Kind:       string(provision.KindScript),
				ScriptPath: "requirements/install_vigra.sh",
			},
			{
				Name:       "build-drtile",
				Kind:       string(provision.KindScript),
				ScriptPath: "requirements/build_drtile.sh",
				ScriptArgs: []string{"$VIRTUAL_ENV"},
			},
			{
				Name:       "user-config",
				Kind:       string(provision.KindConfigFile),
				ConfigPath: "~/.lazyflow/config",
				Sections: []SectionManifest{
					{
						Name:    "verbosity",
						Entries: map[string]string{"deprecation_warnings": "false"},
					},
				},
			},
			{
				Name:    "test-suite",
				Kind:    string(provision.KindTest),
				Command: []string{"nosetests", "--nologcapture", "tests"},
			},
		},
	}
}
