package runs

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RunStatus is the lifecycle state of a bootstrap run.
type RunStatus string

// Run lifecycle states. A run is Skipped when the branch gate rejected it
// before any step executed.
const (
	StatusPending   RunStatus = "pending"
	StatusRunning   RunStatus = "running"
	StatusSucceeded RunStatus = "succeeded"
	StatusFailed    RunStatus = "failed"
	StatusSkipped   RunStatus = "skipped"
)

// StepStatus is the terminal state of a single executed step.
type StepStatus string

// Step terminal states.
const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
)

// Run is the record of one bootstrap invocation.
type Run struct {
	ID         string    `validate:"required,uuid4"`
	PlanName   string    `validate:"required,min=1,max=255"`
	Branch     string    `validate:"max=255"`
	Status     RunStatus `validate:"required,oneof=pending running succeeded failed skipped"`
	StartedAt  time.Time `validate:"required"`
	FinishedAt *time.Time
	// SkipReason explains a skipped run, e.g. the branch gate verdict.
	SkipReason string
	Steps      []StepResult
}

// StepResult is the record of one executed plan step.
type StepResult struct {
	Position   int        `validate:"min=0"`
	Name       string     `validate:"required,min=1,max=255"`
	Kind       string     `validate:"required,min=1,max=50"`
	Command    string     `validate:"required"`
	ExitCode   int
	Status     StepStatus `validate:"required,oneof=succeeded failed"`
	DurationMS int64      `validate:"min=0"`
	OutputTail string
	Message    string
}

// Validate checks the run record and its step results.
func (r *Run) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	for i := range r.Steps {
		if err := validate.Struct(&r.Steps[i]); err != nil {
			return fmt.Errorf("step result %d: %w", i, err)
		}
	}

	if r.Status == StatusSkipped && len(r.Steps) > 0 {
		return fmt.Errorf("skipped run must not carry step results")
	}

	return nil
}

// RunQuery filters and pages run listings.
type RunQuery struct {
	PlanName     string
	Status       RunStatus
	StartedAfter time.Time
	SortBy       string `validate:"omitempty,oneof=started_at finished_at plan_name status"`
	SortOrder    string `validate:"omitempty,oneof=asc desc"`
	Limit        int    `validate:"min=0,max=1000"`
	Offset       int    `validate:"min=0"`
}

// NewRunQuery returns a query with the default sorting and paging.
func NewRunQuery() *RunQuery {
	return &RunQuery{
		SortBy:    "started_at",
		SortOrder: "desc",
		Limit:     100,
		Offset:    0,
	}
}

// Validate checks the query parameters.
func (q *RunQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for RunQuery: %w", err)
	}
	return nil
}
