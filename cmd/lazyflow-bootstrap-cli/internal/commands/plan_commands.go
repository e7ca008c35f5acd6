package commands

import (
	"fmt"

	"github.com/kemaleren/lazyflow/internal/infrastructure/execution"
	"github.com/kemaleren/lazyflow/internal/pkg/config"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// PlanCommandHandler encapsulates logic for inspecting bootstrap plans via CLI.
type PlanCommandHandler struct {
	logger logger.Logger
}

// NewPlanCommandHandler initializes and returns a PlanCommandHandler instance with
// a configured logger.
func NewPlanCommandHandler() (*PlanCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &PlanCommandHandler{
		logger: loggerInstance,
	}, nil
}

// ValidatePlanCmd loads and validates a plan manifest.
func (commandHandler *PlanCommandHandler) ValidatePlanCmd(cmd *cobra.Command, _ []string) error {
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("invalid manifest flag: %w", err)
	}

	plan, err := config.LoadPlan(manifestPath)
	if err != nil {
		return err
	}

	commandHandler.logger.Info("Plan ", plan.Name, " is valid: ", len(plan.Steps), " steps, branch restriction ", planBranch(plan.Branch))
	return nil
}

// ShowPlanCmd prints every step with the command it would execute.
func (commandHandler *PlanCommandHandler) ShowPlanCmd(cmd *cobra.Command, _ []string) error {
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("invalid manifest flag: %w", err)
	}

	plan, err := config.LoadPlan(manifestPath)
	if err != nil {
		return err
	}

	executor, err := execution.NewExecutor(execution.Options{}, commandHandler.logger)
	if err != nil {
		return err
	}

	fmt.Printf("Plan: %s (branch: %s)\n", plan.Name, planBranch(plan.Branch))
	for i, step := range plan.Steps {
		command, err := executor.Render(step)
		if err != nil {
			return fmt.Errorf("failed to render step %q: %w", step.Name, err)
		}
		fmt.Printf("%2d. [%s] %s\n      %s\n", i+1, step.Kind, step.Name, command)
	}

	return nil
}

func planBranch(branch string) string {
	if branch == "" {
		return "unrestricted"
	}
	return branch
}

// InitPlanCommands registers the plan command group with the root command.
func InitPlanCommands(rootCmd *cobra.Command) error {
	handler, err := NewPlanCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create plan command handler: %w", err)
	}

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect and validate bootstrap plans",
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a plan manifest",
		RunE:  handler.ValidatePlanCmd,
	}
	validateCmd.Flags().String("manifest", "", "Plan manifest path (YAML); empty uses the built-in lazyflow plan")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the commands a plan would execute",
		RunE:  handler.ShowPlanCmd,
	}
	showCmd.Flags().String("manifest", "", "Plan manifest path (YAML); empty uses the built-in lazyflow plan")

	planCmd.AddCommand(validateCmd)
	planCmd.AddCommand(showCmd)
	rootCmd.AddCommand(planCmd)
	return nil
}
