package app

import (
	"context"
	"fmt"

	"github.com/kemaleren/lazyflow/internal/domain/runs"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"
)

// runHistoryService implements the RunHistoryService interface over the run repository
type runHistoryService struct {
	runRepo runs.RunRepository
	logger  logger.Logger
}

// NewRunHistoryService creates a new instance of RunHistoryService
func NewRunHistoryService(runRepo runs.RunRepository, logger logger.Logger) (runs.RunHistoryService, error) {
	if runRepo == nil {
		return nil, fmt.Errorf("run repository is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &runHistoryService{
		runRepo: runRepo,
		logger:  logger,
	}, nil
}

// List retrieves run records considering a query filter when set.
func (s *runHistoryService) List(ctx context.Context, query *runs.RunQuery) ([]*runs.Run, error) {
	if query == nil {
		query = runs.NewRunQuery()
	}

	runList, err := s.runRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runList, nil
}

// GetByID retrieves a run record with its step results by ID.
func (s *runHistoryService) GetByID(ctx context.Context, runID string) (*runs.Run, error) {
	if runID == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}
	return run, nil
}

// DeleteByID deletes a run record and its step results by ID.
func (s *runHistoryService) DeleteByID(ctx context.Context, runID string) error {
	if runID == "" {
		return fmt.Errorf("run ID is required")
	}

	if err := s.runRepo.DeleteByID(ctx, runID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	s.logger.Info("Deleted run ", runID)
	return nil
}
