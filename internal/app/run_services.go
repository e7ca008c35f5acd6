package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kemaleren/lazyflow/internal/domain/provision"
	"github.com/kemaleren/lazyflow/internal/domain/runs"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"

	"github.com/google/uuid"
)

// bootstrapRunService implements the BootstrapRunService interface for executing bootstrap plans
type bootstrapRunService struct {
	executor provision.StepExecutor
	branches provision.BranchResolver
	runRepo  runs.RunRepository
	logger   logger.Logger
}

// NewBootstrapRunService creates a new instance of BootstrapRunService
func NewBootstrapRunService(
	executor provision.StepExecutor,
	branches provision.BranchResolver,
	runRepo runs.RunRepository,
	logger logger.Logger,
) (runs.BootstrapRunService, error) {
	if executor == nil {
		return nil, fmt.Errorf("step executor is required")
	}
	if branches == nil {
		return nil, fmt.Errorf("branch resolver is required")
	}
	if runRepo == nil {
		return nil, fmt.Errorf("run repository is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &bootstrapRunService{
		executor: executor,
		branches: branches,
		runRepo:  runRepo,
		logger:   logger,
	}, nil
}

// Run executes the plan strictly sequentially, stopping at the first
// failing step. The returned record is always non-nil once the plan
// validated; when a step fails the record is persisted and the failure is
// also reported through the error.
func (s *bootstrapRunService) Run(ctx context.Context, plan *provision.Plan, opts runs.RunOptions) (*runs.Run, error) {
	if plan == nil {
		return nil, fmt.Errorf("no plan provided")
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	branch, err := s.resolveBranch(opts)
	if err != nil {
		return nil, err
	}

	run := &runs.Run{
		ID:        uuid.NewString(),
		PlanName:  plan.Name,
		Branch:    branch,
		Status:    runs.StatusRunning,
		StartedAt: time.Now(),
	}

	// Branch gate: automated bootstrap runs only on the restricted branch.
	if gateVerdict := s.branchGateVerdict(plan, branch, opts); gateVerdict != "" {
		finished := time.Now()
		run.Status = runs.StatusSkipped
		run.FinishedAt = &finished
		run.SkipReason = gateVerdict
		s.logger.Warn("Skipping run: ", gateVerdict)

		if !opts.DryRun {
			if err := s.runRepo.Create(ctx, run); err != nil {
				return nil, fmt.Errorf("failed to record skipped run: %w", err)
			}
		}
		return run, nil
	}

	if opts.DryRun {
		return s.dryRun(run, plan)
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	env := provision.NewEnviron(os.Environ())
	var stepErr error

	for i := range plan.Steps {
		step := plan.Steps[i]
		s.logger.Info("Step ", i+1, "/", len(plan.Steps), ": ", step.Name)

		outcome, err := s.executor.Execute(ctx, step, env)
		if outcome == nil {
			outcome = &provision.StepOutcome{Command: step.Name}
		}

		result := runs.StepResult{
			Position:   i,
			Name:       step.Name,
			Kind:       string(step.Kind),
			Command:    outcome.Command,
			ExitCode:   outcome.ExitCode,
			DurationMS: outcome.Duration.Milliseconds(),
			OutputTail: outcome.Output,
		}

		if err != nil {
			result.Status = runs.StepFailed
			result.Message = err.Error()
			run.Steps = append(run.Steps, result)
			stepErr = fmt.Errorf("step %q failed: %w", step.Name, err)
			break
		}

		result.Status = runs.StepSucceeded
		run.Steps = append(run.Steps, result)
	}

	finished := time.Now()
	run.FinishedAt = &finished
	if stepErr != nil {
		run.Status = runs.StatusFailed
	} else {
		run.Status = runs.StatusSucceeded
	}

	if err := s.runRepo.UpdateByID(ctx, run); err != nil {
		return run, fmt.Errorf("failed to record run outcome: %w", err)
	}

	if stepErr != nil {
		return run, stepErr
	}

	s.logger.Info("Run ", run.ID, " succeeded with ", len(run.Steps), " steps")
	return run, nil
}

// resolveBranch picks the override when given, otherwise asks git.
func (s *bootstrapRunService) resolveBranch(opts runs.RunOptions) (string, error) {
	if opts.BranchOverride != "" {
		return opts.BranchOverride, nil
	}

	branch, err := s.branches.CurrentBranch(opts.RepoDir)
	if err != nil {
		if opts.IgnoreBranchGate {
			// No gate to apply, so a missing repo is not fatal.
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}
	return branch, nil
}

// branchGateVerdict returns a non-empty reason when the gate rejects the
// run.
func (s *bootstrapRunService) branchGateVerdict(plan *provision.Plan, branch string, opts runs.RunOptions) string {
	if opts.IgnoreBranchGate || plan.Branch == "" {
		return ""
	}
	if branch == plan.Branch {
		return ""
	}
	if branch == "" {
		return fmt.Sprintf("branch gate: detached HEAD, plan requires branch %s", plan.Branch)
	}
	return fmt.Sprintf("branch gate: checked-out branch %s does not match %s", branch, plan.Branch)
}

// dryRun renders every command without executing or persisting anything.
func (s *bootstrapRunService) dryRun(run *runs.Run, plan *provision.Plan) (*runs.Run, error) {
	for i := range plan.Steps {
		step := plan.Steps[i]
		command, err := s.executor.Render(step)
		if err != nil {
			return nil, fmt.Errorf("failed to render step %q: %w", step.Name, err)
		}
		run.Steps = append(run.Steps, runs.StepResult{
			Position: i,
			Name:     step.Name,
			Kind:     string(step.Kind),
			Command:  command,
			Status:   runs.StepSucceeded,
			Message:  "dry-run",
		})
	}

	finished := time.Now()
	run.Status = runs.StatusSucceeded
	run.FinishedAt = &finished
	return run, nil
}
