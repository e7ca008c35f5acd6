package commands

import (
	"fmt"
	"os"

	"github.com/kemaleren/lazyflow/internal/domain/provision"
	"github.com/kemaleren/lazyflow/internal/infrastructure/execution"
	"github.com/kemaleren/lazyflow/internal/pkg/config"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ConfigCommandHandler encapsulates logic for the config bootstrap steps via CLI.
type ConfigCommandHandler struct {
	logger logger.Logger
}

// NewConfigCommandHandler initializes and returns a ConfigCommandHandler instance with
// a configured logger.
func NewConfigCommandHandler() (*ConfigCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &ConfigCommandHandler{
		logger: loggerInstance,
	}, nil
}

// BootstrapConfigCmd writes the config files a plan declares, without
// running any other step. Rewriting an existing file is idempotent.
func (commandHandler *ConfigCommandHandler) BootstrapConfigCmd(cmd *cobra.Command, _ []string) error {
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

	env := provision.NewEnviron(os.Environ())
	wrote := 0
	for _, step := range plan.Steps {
		if step.Kind != provision.KindConfigFile {
			continue
		}
		if _, err := executor.Execute(cmd.Context(), step, env); err != nil {
			return fmt.Errorf("step %q failed: %w", step.Name, err)
		}
		wrote++
	}

	if wrote == 0 {
		commandHandler.logger.Warn("Plan ", plan.Name, " declares no config files")
		return nil
	}

	commandHandler.logger.Info("Bootstrapped ", wrote, " config file(s)")
	return nil
}

// ShowEnvCmd prints the export lines a plan declares, in shell syntax
// suitable for eval.
func (commandHandler *ConfigCommandHandler) ShowEnvCmd(cmd *cobra.Command, _ []string) error {
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

	for _, step := range plan.Steps {
		if step.Kind != provision.KindExport {
			continue
		}
		line, err := executor.Render(step)
		if err != nil {
			return fmt.Errorf("failed to render step %q: %w", step.Name, err)
		}
		fmt.Println(line)
	}

	return nil
}

// InitConfigCommands registers the config command group with the root command.
func InitConfigCommands(rootCmd *cobra.Command) error {
	handler, err := NewConfigCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create config command handler: %w", err)
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Bootstrap config files and environment exports",
	}

	bootstrapCmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Write the config files the plan declares",
		RunE:  handler.BootstrapConfigCmd,
	}
	bootstrapCmd.Flags().String("manifest", "", "Plan manifest path (YAML); empty uses the built-in lazyflow plan")

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Print the plan's environment exports in shell syntax",
		RunE:  handler.ShowEnvCmd,
	}
	envCmd.Flags().String("manifest", "", "Plan manifest path (YAML); empty uses the built-in lazyflow plan")

	configCmd.AddCommand(bootstrapCmd)
	configCmd.AddCommand(envCmd)
	rootCmd.AddCommand(configCmd)
	return nil
}
