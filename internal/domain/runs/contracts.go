package runs

import (
	"context"

	"github.com/kemaleren/lazyflow/internal/domain/provision"
)

// RunOptions tune a single bootstrap invocation.
type RunOptions struct {
	// BranchOverride bypasses git detection and gates against the given
	// branch name instead. Empty means detect.
	BranchOverride string
	// RepoDir is the working tree the branch gate inspects. Defaults to
	// the current directory.
	RepoDir string
	// DryRun renders every command without executing or persisting
	// anything.
	DryRun bool
	// IgnoreBranchGate forces execution regardless of the checked-out
	// branch.
	IgnoreBranchGate bool
}

// BootstrapRunService executes bootstrap plans.
type BootstrapRunService interface {
	// Run executes the plan strictly sequentially, stopping at the first
	// failing step. It returns the persisted run record; for dry runs the
	// record is synthesized and not persisted.
	Run(ctx context.Context, plan *provision.Plan, opts RunOptions) (*Run, error)
}

// RunHistoryService exposes recorded bootstrap runs.
type RunHistoryService interface {
	// List retrieves run records considering a query filter when set.
	List(ctx context.Context, query *RunQuery) ([]*Run, error)

	// GetByID retrieves a run record with its step results by ID.
	GetByID(ctx context.Context, runID string) (*Run, error)

	// DeleteByID deletes a run record and its step results by ID.
	DeleteByID(ctx context.Context, runID string) error
}

// RunRepository defines the persistence interface for run records.
type RunRepository interface {
	// Create adds a new Run with its step results to the database
	Create(ctx context.Context, run *Run) error
	// List lists Runs in the database with optional filter
	List(ctx context.Context, query *RunQuery) ([]*Run, error)
	// GetByID retrieves a Run from the database by ID
	GetByID(ctx context.Context, runID string) (*Run, error)
	// UpdateByID updates a Run in the database by ID
	UpdateByID(ctx context.Context, run *Run) error
	// DeleteByID deletes a Run in the database by ID
	DeleteByID(ctx context.Context, runID string) error
}
