package execution

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kemaleren/lazyflow/internal/domain/provision"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"
)

// Default commands the executor renders steps into. Overridable through
// Options for environments without apt or with a venv-local pip.
var (
	defaultPackageCommand = []string{"apt-get", "install", "-y"}
	defaultPipCommand     = []string{"pip", "install", "-r"}
	defaultShell          = "bash"
)

const defaultOutputTailBytes = 16 * 1024

// Options tune how the executor turns steps into processes.
type Options struct {
	// PackageCommand installs system packages; package names are appended.
	PackageCommand []string
	// PipCommand installs Python requirements; the file path is appended.
	PipCommand []string
	// Shell interprets script steps.
	Shell string
	// WorkDir is the working directory for all spawned commands.
	WorkDir string
	// OutputTailBytes bounds captured output per step.
	OutputTailBytes int
}

// Executor implements provision.StepExecutor.
type Executor struct {
	opts   Options
	logger logger.Logger
}

// NewExecutor creates a step executor with defaults filled in.
func NewExecutor(opts Options, logger logger.Logger) (*Executor, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if len(opts.PackageCommand) == 0 {
		opts.PackageCommand = defaultPackageCommand
	}
	if len(opts.PipCommand) == 0 {
		opts.PipCommand = defaultPipCommand
	}
	if opts.Shell == "" {
		opts.Shell = defaultShell
	}
	if opts.OutputTailBytes <= 0 {
		opts.OutputTailBytes = defaultOutputTailBytes
	}

	return &Executor{opts: opts, logger: logger}, nil
}

// Render returns the command line a step would execute.
func (e *Executor) Render(step provision.Step) (string, error) {
	switch step.Kind {
	case provision.KindExport:
		if step.PrependPath {
			return fmt.Sprintf("export %s=%s:$%s", step.EnvName, step.EnvValue, step.EnvName), nil
		}
		return fmt.Sprintf("export %s=%s", step.EnvName, step.EnvValue), nil
	case provision.KindConfigFile:
		return fmt.Sprintf("write %s", step.ConfigPath), nil
	default:
		argv, err := e.argv(step, nil)
		if err != nil {
			return "", err
		}
		return strings.Join(argv, " "), nil
	}
}

// Execute runs a single step against the run-local environment overlay.
func (e *Executor) Execute(ctx context.Context, step provision.Step, env *provision.Environ) (*provision.StepOutcome, error) {
	if step.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(step.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	switch step.Kind {
	case provision.KindExport:
		return e.applyExport(step, env)
	case provision.KindConfigFile:
		return e.writeConfigFile(step)
	default:
		return e.runStepCommand(ctx, step, env)
	}
}

// applyExport mutates the overlay; later steps of the run observe it.
func (e *Executor) applyExport(step provision.Step, env *provision.Environ) (*provision.StepOutcome, error) {
	command, err := e.Render(step)
	if err != nil {
		return nil, err
	}

	if step.PrependPath {
		env.PrependPath(step.EnvName, step.EnvValue)
	} else {
		env.Set(step.EnvName, step.EnvValue)
	}

	value, _ := env.Get(step.EnvName)
	e.logger.Info("Exported ", step.EnvName, "=", value)

	return &provision.StepOutcome{
		Command: command,
		Output:  fmt.Sprintf("%s=%s", step.EnvName, value),
	}, nil
}

func (e *Executor) runStepCommand(ctx context.Context, step provision.Step, env *provision.Environ) (*provision.StepOutcome, error) {
	argv, err := e.argv(step, env)
	if err != nil {
		return nil, err
	}

	command := strings.Join(argv, " ")
	e.logger.Info("Running ", command)

	result, runErr := runCommand(ctx, argv, env.Environ(), e.opts.WorkDir, e.opts.OutputTailBytes)
	outcome := &provision.StepOutcome{Command: command}
	if result != nil {
		outcome.ExitCode = result.ExitCode
		outcome.Output = result.Output
		outcome.Duration = result.Duration
	}
	return outcome, runErr
}

// argv renders a command-producing step. Script arguments may reference
// overlay variables ($VIRTUAL_ENV); references to unset variables expand
// to the empty string, matching shell behavior.
func (e *Executor) argv(step provision.Step, env *provision.Environ) ([]string, error) {
	switch step.Kind {
	case provision.KindPackages:
		return append(append([]string{}, e.opts.PackageCommand...), step.Packages...), nil
	case provision.KindPip:
		return append(append([]string{}, e.opts.PipCommand...), step.RequirementsFile), nil
	case provision.KindScript:
		argv := []string{e.opts.Shell, step.ScriptPath}
		for _, arg := range step.ScriptArgs {
			argv = append(argv, expandEnvRefs(arg, env))
		}
		return argv, nil
	case provision.KindTest:
		return append([]string{}, step.Command...), nil
	default:
		return nil, fmt.Errorf("step kind %s does not produce a command", step.Kind)
	}
}

// expandEnvRefs substitutes $VAR and ${VAR} from the overlay. A nil
// overlay (dry-run rendering) leaves references untouched.
func expandEnvRefs(s string, env *provision.Environ) string {
	if env == nil {
		return s
	}
	return os.Expand(s, func(name string) string {
		value, _ := env.Get(name)
		return value
	})
}
