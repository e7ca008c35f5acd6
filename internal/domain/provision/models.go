package provision

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StepKind identifies what a bootstrap step does.
type StepKind string

// Supported step kinds.
const (
	KindPackages   StepKind = "packages"
	KindPip        StepKind = "pip"
	KindScript     StepKind = "script"
	KindExport     StepKind = "export"
	KindConfigFile StepKind = "configfile"
	KindTest       StepKind = "test"
)

// DefaultBranch is the branch automated bootstrap runs are restricted to
// unless the plan says otherwise.
const DefaultBranch = "master"

// ConfigEntry is a single key/value pair inside a config file section.
type ConfigEntry struct {
	Key   string `validate:"required,min=1,max=255"`
	Value string `validate:"required"`
}

// ConfigSection is a named section of an INI-like config file.
type ConfigSection struct {
	Name    string        `validate:"required,min=1,max=255"`
	Entries []ConfigEntry `validate:"required,min=1,dive"`
}

// Step is one action of a bootstrap plan. Kind decides which of the
// kind-specific field groups is meaningful.
type Step struct {
	Name string   `validate:"required,min=1,max=255"`
	Kind StepKind `validate:"required,oneof=packages pip script export configfile test"`

	// KindPackages
	Packages []string

	// KindPip
	RequirementsFile string

	// KindScript
	ScriptPath string
	ScriptArgs []string

	// KindExport
	EnvName     string
	EnvValue    string
	PrependPath bool

	// KindConfigFile; Path is home-relative when it starts with "~/".
	ConfigPath     string
	ConfigSections []ConfigSection

	// KindTest
	Command []string

	// TimeoutSeconds bounds the step's execution; zero means no limit.
	TimeoutSeconds int `validate:"min=0"`
}

// Plan is an ordered bootstrap sequence. Branch restricts automated runs
// to a single git branch; an empty Branch means unrestricted.
type Plan struct {
	Name   string `validate:"required,min=1,max=255"`
	Branch string
	Steps  []Step `validate:"required,min=1,dive"`
}

// Validate checks the plan structure and every step's kind-specific fields.
func (p *Plan) Validate() error {
	validate := validator.New()

	if err := validate.Struct(p); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	seen := make(map[string]struct{}, len(p.Steps))
	for i := range p.Steps {
		step := &p.Steps[i]
		if _, ok := seen[step.Name]; ok {
			return fmt.Errorf("duplicate step name %q", step.Name)
		}
		seen[step.Name] = struct{}{}

		if err := step.validateKind(); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}

	return nil
}

// validateKind checks the fields the step's kind requires.
func (s *Step) validateKind() error {
	switch s.Kind {
	case KindPackages:
		if len(s.Packages) == 0 {
			return fmt.Errorf("packages step requires at least one package name")
		}
		for _, pkg := range s.Packages {
			if pkg == "" {
				return fmt.Errorf("packages step contains an empty package name")
			}
		}
	case KindPip:
		if s.RequirementsFile == "" {
			return fmt.Errorf("pip step requires a requirements file path")
		}
	case KindScript:
		if s.ScriptPath == "" {
			return fmt.Errorf("script step requires a script path")
		}
	case KindExport:
		if s.EnvName == "" {
			return fmt.Errorf("export step requires a variable name")
		}
		if s.EnvValue == "" {
			return fmt.Errorf("export step requires a value")
		}
	case KindConfigFile:
		if s.ConfigPath == "" {
			return fmt.Errorf("configfile step requires a target path")
		}
		if len(s.ConfigSections) == 0 {
			return fmt.Errorf("configfile step requires at least one section")
		}
		validate := validator.New()
		for _, section := range s.ConfigSections {
			if err := validate.Struct(&section); err != nil {
				return fmt.Errorf("configfile section %q: %w", section.Name, err)
			}
		}
	case KindTest:
		if len(s.Command) == 0 {
			return fmt.Errorf("test step requires a command")
		}
	default:
		return fmt.Errorf("unsupported step kind: %s", s.Kind)
	}

	return nil
}
