package commands

import (
	"fmt"
	"time"

	"github.com/kemaleren/lazyflow/internal/app"
	"github.com/kemaleren/lazyflow/internal/domain/runs"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// HistoryCommandHandler encapsulates logic for inspecting recorded runs via CLI.
type HistoryCommandHandler struct {
	logger logger.Logger
}

// NewHistoryCommandHandler initializes and returns a HistoryCommandHandler instance with
// a configured logger.
func NewHistoryCommandHandler() (*HistoryCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &HistoryCommandHandler{
		logger: loggerInstance,
	}, nil
}

func (commandHandler *HistoryCommandHandler) historyService(cmd *cobra.Command) (runs.RunHistoryService, error) {
	runRepo, err := openRunRepository(cmd, commandHandler.logger)
	if err != nil {
		return nil, err
	}
	return app.NewRunHistoryService(runRepo, commandHandler.logger)
}

// ListRunsCmd prints recorded runs, newest first.
func (commandHandler *HistoryCommandHandler) ListRunsCmd(cmd *cobra.Command, _ []string) error {
	planName, err := cmd.Flags().GetString("plan")
	if err != nil {
		return fmt.Errorf("invalid plan flag: %w", err)
	}
	status, err := cmd.Flags().GetString("status")
	if err != nil {
		return fmt.Errorf("invalid status flag: %w", err)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}

	service, err := commandHandler.historyService(cmd)
	if err != nil {
		return err
	}

	query := runs.NewRunQuery()
	query.PlanName = planName
	query.Status = runs.RunStatus(status)
	if limit > 0 {
		query.Limit = limit
	}

	runList, err := service.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	if len(runList) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, run := range runList {
		fmt.Printf("%s  %-9s  %-24s  %s\n", run.ID, run.Status, run.PlanName, run.StartedAt.Format(time.RFC3339))
	}

	return nil
}

// ShowRunCmd prints one run with its step results.
func (commandHandler *HistoryCommandHandler) ShowRunCmd(cmd *cobra.Command, args []string) error {
	service, err := commandHandler.historyService(cmd)
	if err != nil {
		return err
	}

	run, err := service.GetByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run:     %s\n", run.ID)
	fmt.Printf("Plan:    %s\n", run.PlanName)
	fmt.Printf("Branch:  %s\n", run.Branch)
	fmt.Printf("Status:  %s\n", run.Status)
	fmt.Printf("Started: %s\n", run.StartedAt.Format(time.RFC3339))
	if run.FinishedAt != nil {
		fmt.Printf("Finished: %s\n", run.FinishedAt.Format(time.RFC3339))
	}
	if run.SkipReason != "" {
		fmt.Printf("Skipped: %s\n", run.SkipReason)
	}

	for _, step := range run.Steps {
		fmt.Printf("\n%2d. [%s] %s (%s, %d ms, exit %d)\n", step.Position+1, step.Kind, step.Name, step.Status, step.DurationMS, step.ExitCode)
		fmt.Printf("      %s\n", step.Command)
		if step.Message != "" {
			fmt.Printf("      %s\n", step.Message)
		}
	}

	return nil
}

// DeleteRunCmd removes one recorded run.
func (commandHandler *HistoryCommandHandler) DeleteRunCmd(cmd *cobra.Command, args []string) error {
	service, err := commandHandler.historyService(cmd)
	if err != nil {
		return err
	}

	return service.DeleteByID(cmd.Context(), args[0])
}

// InitHistoryCommands registers the history command group with the root command.
func InitHistoryCommands(rootCmd *cobra.Command) error {
	handler, err := NewHistoryCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create history command handler: %w", err)
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded bootstrap runs",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		RunE:  handler.ListRunsCmd,
	}
	listCmd.Flags().String("plan", "", "Filter by plan name")
	listCmd.Flags().String("status", "", "Filter by run status")
	listCmd.Flags().Int("limit", 0, "Maximum number of runs to list")
	registerDatabaseFlags(listCmd)

	showCmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with its step results",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.ShowRunCmd,
	}
	registerDatabaseFlags(showCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.DeleteRunCmd,
	}
	registerDatabaseFlags(deleteCmd)

	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(showCmd)
	historyCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
	return nil
}
