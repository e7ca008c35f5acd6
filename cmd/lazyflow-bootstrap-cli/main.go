// Package main is the entry point for the lazyflow-bootstrap-cli application.
// It initializes the root command and registers the run, plan, config and
// history sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/kemaleren/lazyflow/cmd/lazyflow-bootstrap-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "lazyflow-bootstrap-cli",
		Short: "lazyflow environment bootstrap tool",
		Long: `lazyflow-bootstrap-cli provisions a lazyflow development environment.
It installs the native library stack (hdf5, fftw, vigra), the Python
requirements and the drtile extension, writes the ~/.lazyflow/config file,
and runs the test suite — strictly in order, recording every run.

Automated runs are restricted to the plan's branch (master by default);
use --force to override the gate.`,
		SilenceUsage: true,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitRunCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize run commands: %w", err)
	}

	if err := commands.InitPlanCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize plan commands: %w", err)
	}

	if err := commands.InitConfigCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize config commands: %w", err)
	}

	if err := commands.InitHistoryCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize history commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
