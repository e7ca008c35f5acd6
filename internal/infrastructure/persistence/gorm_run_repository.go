package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/kemaleren/lazyflow/internal/domain/runs"
	"github.com/kemaleren/lazyflow/internal/infrastructure/persistence/models"
	"github.com/kemaleren/lazyflow/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRunRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRunRepository creates a new GORM-based RunRepository implementation
func NewGormRunRepository(db *gorm.DB, logger logger.Logger) (runs.RunRepository, error) {
	return &gormRunRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRunRepository) Create(ctx context.Context, run *runs.Run) error {
	// Validate domain entity (business rules)
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RunModel{}
	model.FromDomain(run)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	r.logger.Info("Created run record with id ", run.ID)
	return nil
}

func (r *gormRunRepository) List(ctx context.Context, query *runs.RunQuery) ([]*runs.Run, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.RunModel
	dbQuery := r.db.WithContext(ctx).Model(&models.RunModel{}).Preload("Steps")

	// Apply filters
	if query.PlanName != "" {
		dbQuery = dbQuery.Where("plan_name = ?", query.PlanName)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", string(query.Status))
	}
	if !query.StartedAfter.IsZero() {
		dbQuery = dbQuery.Where("started_at >= ?", query.StartedAfter)
	}

	// Sorting
	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	domainList := make([]*runs.Run, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormRunRepository) GetByID(ctx context.Context, runID string) (*runs.Run, error) {
	var model models.RunModel
	err := r.db.WithContext(ctx).Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Where("id = ?", runID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run with ID %s not found", runID)
		}
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRunRepository) UpdateByID(ctx context.Context, run *runs.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RunModel{}
	model.FromDomain(run)

	// Step results are append-only; replace them wholesale on update.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", run.ID).Delete(&models.StepResultModel{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	r.logger.Info("Updated run record with id ", run.ID)
	return nil
}

func (r *gormRunRepository) DeleteByID(ctx context.Context, runID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", runID).Delete(&models.StepResultModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", runID).Delete(&models.RunModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	r.logger.Info("Deleted run record with id ", runID)
	return nil
}
