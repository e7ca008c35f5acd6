package commands

import (
	"fmt"

	"github.com/kemaleren/lazyflow/internal/domain/runs"
	"github.com/kemaleren/lazyflow/internal/infrastructure/execution"
	"github.com/kemaleren/lazyflow/internal/infrastructure/persistence"
	"github.com/kemaleren/lazyflow/internal/infrastructure/persistence/models"
	"github.com/kemaleren/lazyflow/internal/pkg/config"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// defaultDBPath is the sqlite file run records land in when no database
// flags are given. It lives next to the bootstrapped lazyflow config.
const defaultDBPath = "~/.lazyflow/bootstrap.db"

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// registerDatabaseFlags adds the run-store flags shared by the commands
// that read or write run records.
func registerDatabaseFlags(cmd *cobra.Command) {
	cmd.Flags().String("db-type", config.SqliteDbType, "Run store type: sqlite or postgres")
	cmd.Flags().String("db-dsn", defaultDBPath, "Run store DSN (sqlite file path or postgres DSN)")
}

// openRunRepository connects to the run store selected by the database
// flags and migrates the schema.
func openRunRepository(cmd *cobra.Command, log logger.Logger) (runs.RunRepository, error) {
	dbType, err := cmd.Flags().GetString("db-type")
	if err != nil {
		return nil, fmt.Errorf("invalid db-type flag: %w", err)
	}
	dsn, err := cmd.Flags().GetString("db-dsn")
	if err != nil {
		return nil, fmt.Errorf("invalid db-dsn flag: %w", err)
	}

	if dbType == config.SqliteDbType && dsn != ":memory:" {
		dsn, err = execution.ExpandHome(dsn)
		if err != nil {
			return nil, err
		}
	}

	settings := config.DatabaseSettings{Type: dbType, DSN: dsn}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnection(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}

	if err := db.AutoMigrate(&models.RunModel{}, &models.StepResultModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate run store schema: %w", err)
	}

	return persistence.NewGormRunRepository(db, log)
}
