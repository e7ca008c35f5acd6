//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/kemaleren/lazyflow/internal/domain/runs"
	"github.com/kemaleren/lazyflow/internal/infrastructure/persistence/models"
	"github.com/kemaleren/lazyflow/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRunPostgresRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	run := CreateTestRun(t, "lazyflow-development")

	err := ctx.RunRepo.Create(context.Background(), run)
	require.NoError(t, err)

	// Verify by fetching
	fetched, err := ctx.RunRepo.GetByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, fetched.ID)
	assert.Equal(t, run.PlanName, fetched.PlanName)
	require.Len(t, fetched.Steps, 1)
}

func TestRunPostgresRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	require.NoError(t, ctx.RunRepo.Create(context.Background(), CreateTestRun(t, "lazyflow-development")))
	require.NoError(t, ctx.RunRepo.Create(context.Background(), CreateTestSkippedRun(t, "lazyflow-development", "feature/new-operator")))

	list, err := ctx.RunRepo.List(context.Background(), runs.NewRunQuery())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRunPostgresRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	run := CreateTestRun(t, "lazyflow-development")
	require.NoError(t, ctx.RunRepo.Create(context.Background(), run))

	finished := time.Now()
	run.Status = runs.StatusFailed
	run.FinishedAt = &finished
	run.Steps[0].Status = runs.StepFailed
	run.Steps[0].ExitCode = 1
	require.NoError(t, ctx.RunRepo.UpdateByID(context.Background(), run))

	fetched, err := ctx.RunRepo.GetByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, runs.StatusFailed, fetched.Status)
	require.Len(t, fetched.Steps, 1)
	assert.Equal(t, 1, fetched.Steps[0].ExitCode)
}

func TestRunPostgresRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	run := CreateTestRun(t, "lazyflow-development")
	require.NoError(t, ctx.RunRepo.Create(context.Background(), run))
	require.NoError(t, ctx.RunRepo.DeleteByID(context.Background(), run.ID))

	// Verify deletion
	var deletedRunModel models.RunModel
	err := ctx.DB.First(&deletedRunModel, "id = ?", run.ID).Error
	assert.Error(t, err)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestRunPostgresRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	_, err := ctx.RunRepo.GetByID(context.Background(), "non-existent-id")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
