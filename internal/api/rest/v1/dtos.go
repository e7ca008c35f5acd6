package v1

import (
	"time"

	"github.com/kemaleren/lazyflow/internal/domain/runs"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Message *string `json:"message,omitempty"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// StepResultResponse is the JSON form of one executed plan step.
type StepResultResponse struct {
	Position   int    `json:"position"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Command    string `json:"command"`
	ExitCode   int    `json:"exit_code"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	OutputTail string `json:"output_tail,omitempty"`
	Message    string `json:"message,omitempty"`
}

// RunResponse is the JSON form of a bootstrap run record.
type RunResponse struct {
	ID         string               `json:"id"`
	PlanName   string               `json:"plan_name"`
	Branch     string               `json:"branch,omitempty"`
	Status     string               `json:"status"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt *time.Time           `json:"finished_at,omitempty"`
	SkipReason string               `json:"skip_reason,omitempty"`
	Steps      []StepResultResponse `json:"steps,omitempty"`
}

// NewRunResponse maps a domain run record onto the wire form.
func NewRunResponse(run *runs.Run) RunResponse {
	response := RunResponse{
		ID:         run.ID,
		PlanName:   run.PlanName,
		Branch:     run.Branch,
		Status:     string(run.Status),
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		SkipReason: run.SkipReason,
	}
	for i := range run.Steps {
		step := &run.Steps[i]
		response.Steps = append(response.Steps, StepResultResponse{
			Position:   step.Position,
			Name:       step.Name,
			Kind:       step.Kind,
			Command:    step.Command,
			ExitCode:   step.ExitCode,
			Status:     string(step.Status),
			DurationMS: step.DurationMS,
			OutputTail: step.OutputTail,
			Message:    step.Message,
		})
	}
	return response
}
