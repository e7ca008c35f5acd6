package commands

import (
	"fmt"

	"github.com/kemaleren/lazyflow/internal/app"
	"github.com/kemaleren/lazyflow/internal/domain/runs"
	"github.com/kemaleren/lazyflow/internal/infrastructure/execution"
	"github.com/kemaleren/lazyflow/internal/infrastructure/gitinfo"
	"github.com/kemaleren/lazyflow/internal/pkg/config"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// RunCommandHandler encapsulates logic for executing bootstrap plans via CLI.
type RunCommandHandler struct {
	logger logger.Logger
}

// NewRunCommandHandler initializes and returns a RunCommandHandler instance with
// a configured logger.
func NewRunCommandHandler() (*RunCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &RunCommandHandler{
		logger: loggerInstance,
	}, nil
}

// RunPlanCmd executes a bootstrap plan end to end and records the run.
func (commandHandler *RunCommandHandler) RunPlanCmd(cmd *cobra.Command, _ []string) error {
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("invalid manifest flag: %w", err)
	}
	branch, err := cmd.Flags().GetString("branch")
	if err != nil {
		return fmt.Errorf("invalid branch flag: %w", err)
	}
	repoDir, err := cmd.Flags().GetString("repo-dir")
	if err != nil {
		return fmt.Errorf("invalid repo-dir flag: %w", err)
	}
	workDir, err := cmd.Flags().GetString("work-dir")
	if err != nil {
		return fmt.Errorf("invalid work-dir flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("invalid dry-run flag: %w", err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("invalid force flag: %w", err)
	}

	plan, err := config.LoadPlan(manifestPath)
	if err != nil {
		return err
	}

	executor, err := execution.NewExecutor(execution.Options{WorkDir: workDir}, commandHandler.logger)
	if err != nil {
		return err
	}

	runRepo, err := openRunRepository(cmd, commandHandler.logger)
	if err != nil {
		return err
	}

	runService, err := app.NewBootstrapRunService(executor, gitinfo.NewResolver(), runRepo, commandHandler.logger)
	if err != nil {
		return err
	}

	run, err := runService.Run(cmd.Context(), plan, runs.RunOptions{
		BranchOverride:   branch,
		RepoDir:          repoDir,
		DryRun:           dryRun,
		IgnoreBranchGate: force,
	})
	if err != nil {
		return err
	}

	switch run.Status {
	case runs.StatusSkipped:
		commandHandler.logger.Warn("Run ", run.ID, " skipped: ", run.SkipReason)
	default:
		commandHandler.logger.Info("Run ", run.ID, " finished with status ", run.Status)
	}

	return nil
}

// InitRunCommands registers the run command group with the root command.
func InitRunCommands(rootCmd *cobra.Command) error {
	handler, err := NewRunCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create run command handler: %w", err)
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a bootstrap plan and record the run",
		RunE:  handler.RunPlanCmd,
	}
	runCmd.Flags().String("manifest", "", "Plan manifest path (YAML); empty uses the built-in lazyflow plan")
	runCmd.Flags().String("branch", "", "Gate against this branch name instead of detecting it from git")
	runCmd.Flags().String("repo-dir", ".", "Working tree the branch gate inspects")
	runCmd.Flags().String("work-dir", "", "Working directory for spawned commands")
	runCmd.Flags().Bool("dry-run", false, "Render commands without executing or recording anything")
	runCmd.Flags().Bool("force", false, "Run regardless of the checked-out branch")
	registerDatabaseFlags(runCmd)

	rootCmd.AddCommand(runCmd)
	return nil
}
