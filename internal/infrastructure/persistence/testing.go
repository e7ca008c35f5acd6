//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/kemaleren/lazyflow/internal/domain/runs"
	"github.com/kemaleren/lazyflow/internal/infrastructure/persistence/models"
	"github.com/kemaleren/lazyflow/internal/pkg/config"
	"github.com/kemaleren/lazyflow/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB      *gorm.DB
	RunRepo runs.RunRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	err = db.AutoMigrate(&models.RunModel{}, &models.StepResultModel{})
	require.NoError(t, err, "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)

	runRepo, err := NewGormRunRepository(db, log)
	require.NoError(t, err, "Failed to create run repository")

	return &TestContext{
		DB:      db,
		RunRepo: runRepo,
	}
}

// CreateTestRun creates a succeeded run record with one step result
func CreateTestRun(t *testing.T, planName string) *runs.Run {
	t.Helper()

	finished := time.Now()
	return &runs.Run{
		ID:         uuid.NewString(),
		PlanName:   planName,
		Branch:     "master",
		Status:     runs.StatusSucceeded,
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: &finished,
		Steps: []runs.StepResult{
			{
				Position:   0,
				Name:       "system-packages",
				Kind:       "packages",
				Command:    "apt-get install -y libhdf5-serial-dev",
				Status:     runs.StepSucceeded,
				DurationMS: 1500,
			},
		},
	}
}

// CreateTestSkippedRun creates a run rejected by the branch gate
func CreateTestSkippedRun(t *testing.T, planName, branch string) *runs.Run {
	t.Helper()

	finished := time.Now()
	return &runs.Run{
		ID:         uuid.NewString(),
		PlanName:   planName,
		Branch:     branch,
		Status:     runs.StatusSkipped,
		StartedAt:  finished,
		FinishedAt: &finished,
		SkipReason: "branch gate: checked-out branch " + branch + " does not match master",
	}
}
