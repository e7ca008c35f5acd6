package models

import (
	"time"

	"github.com/kemaleren/lazyflow/internal/domain/runs"
)

// RunModel is the GORM database model for bootstrap runs (infrastructure concern)
type RunModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	PlanName   string     `gorm:"not null;index;type:varchar(255)"`
	Branch     string     `gorm:"type:varchar(255)"`
	Status     string     `gorm:"not null;index;type:varchar(20)"`
	StartedAt  time.Time  `gorm:"not null;index"`
	FinishedAt *time.Time
	SkipReason string     `gorm:"type:text"`

	Steps []StepResultModel `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string {
	return "bootstrap_runs"
}

// StepResultModel is the GORM database model for executed plan steps
type StepResultModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	RunID      string `gorm:"not null;index;type:uuid"`
	Position   int    `gorm:"not null"`
	Name       string `gorm:"not null;type:varchar(255)"`
	Kind       string `gorm:"not null;type:varchar(50)"`
	Command    string `gorm:"not null;type:text"`
	ExitCode   int
	Status     string `gorm:"not null;type:varchar(20)"`
	DurationMS int64
	OutputTail string `gorm:"type:text"`
	Message    string `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (StepResultModel) TableName() string {
	return "bootstrap_step_results"
}

// ToDomain converts GORM model to domain entity
func (m *RunModel) ToDomain() *runs.Run {
	run := &runs.Run{
		ID:         m.ID,
		PlanName:   m.PlanName,
		Branch:     m.Branch,
		Status:     runs.RunStatus(m.Status),
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
		SkipReason: m.SkipReason,
	}
	for i := range m.Steps {
		run.Steps = append(run.Steps, *m.Steps[i].ToDomain())
	}
	return run
}

// FromDomain converts domain entity to GORM model
func (m *RunModel) FromDomain(r *runs.Run) {
	m.ID = r.ID
	m.PlanName = r.PlanName
	m.Branch = r.Branch
	m.Status = string(r.Status)
	m.StartedAt = r.StartedAt
	m.FinishedAt = r.FinishedAt
	m.SkipReason = r.SkipReason

	m.Steps = m.Steps[:0]
	for i := range r.Steps {
		var step StepResultModel
		step.FromDomain(r.ID, &r.Steps[i])
		m.Steps = append(m.Steps, step)
	}
}

// ToDomain converts GORM model to domain entity
func (m *StepResultModel) ToDomain() *runs.StepResult {
	return &runs.StepResult{
		Position:   m.Position,
		Name:       m.Name,
		Kind:       m.Kind,
		Command:    m.Command,
		ExitCode:   m.ExitCode,
		Status:     runs.StepStatus(m.Status),
		DurationMS: m.DurationMS,
		OutputTail: m.OutputTail,
		Message:    m.Message,
	}
}

// FromDomain converts domain entity to GORM model
func (m *StepResultModel) FromDomain(runID string, s *runs.StepResult) {
	m.RunID = runID
	m.Position = s.Position
	m.Name = s.Name
	m.Kind = s.Kind
	m.Command = s.Command
	m.ExitCode = s.ExitCode
	m.Status = string(s.Status)
	m.DurationMS = s.DurationMS
	m.OutputTail = s.OutputTail
	m.Message = s.Message
}
