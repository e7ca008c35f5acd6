//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/kemaleren/lazyflow/internal/domain/provision"
	"github.com/kemaleren/lazyflow/internal/domain/runs"

	"github.com/stretchr/testify/mock"
)

// MockStepExecutor is a mock implementation of StepExecutor
type MockStepExecutor struct {
	mock.Mock
}

func (m *MockStepExecutor) Render(step provision.Step) (string, error) {
	args := m.Called(step)
	return args.String(0), args.Error(1)
}

func (m *MockStepExecutor) Execute(ctx context.Context, step provision.Step, env *provision.Environ) (*provision.StepOutcome, error) {
	args := m.Called(ctx, step, env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provision.StepOutcome), args.Error(1)
}

// MockBranchResolver is a mock implementation of BranchResolver
type MockBranchResolver struct {
	mock.Mock
}

func (m *MockBranchResolver) CurrentBranch(dir string) (string, error) {
	args := m.Called(dir)
	return args.String(0), args.Error(1)
}

// MockRunRepository is a mock implementation of RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Create(ctx context.Context, run *runs.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) List(ctx context.Context, query *runs.RunQuery) ([]*runs.Run, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*runs.Run), args.Error(1)
}

func (m *MockRunRepository) GetByID(ctx context.Context, runID string) (*runs.Run, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runs.Run), args.Error(1)
}

func (m *MockRunRepository) UpdateByID(ctx context.Context, run *runs.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) DeleteByID(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}
