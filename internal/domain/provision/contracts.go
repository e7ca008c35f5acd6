package provision

import (
	"context"
	"time"
)

// StepOutcome is what executing one step produced.
type StepOutcome struct {
	// Command is the rendered command line, or a description for steps
	// executed natively (export, configfile).
	Command string
	// ExitCode is the process exit code; zero for native steps.
	ExitCode int
	// Output is the captured combined output, bounded to a tail.
	Output string
	// Duration is the wall-clock execution time.
	Duration time.Duration
}

// StepExecutor executes a single plan step against a run-local
// environment overlay.
type StepExecutor interface {
	// Render returns the command line a step would execute, without
	// executing it. Used by dry runs and plan inspection.
	Render(step Step) (string, error)

	// Execute runs the step. Export steps mutate env; command steps read
	// it. A non-zero exit code is reported through the returned error and
	// the outcome carries the captured output either way.
	Execute(ctx context.Context, step Step, env *Environ) (*StepOutcome, error)
}

// BranchResolver reports the currently checked-out git branch of a
// working tree.
type BranchResolver interface {
	// CurrentBranch returns the branch name, or an empty string with a
	// nil error for a detached HEAD.
	CurrentBranch(dir string) (string, error)
}
