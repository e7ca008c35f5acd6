//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/kemaleren/lazyflow/internal/domain/runs"

	"github.com/stretchr/testify/mock"
)

// MockRunHistoryService is a mock implementation of RunHistoryService
type MockRunHistoryService struct {
	mock.Mock
}

func (m *MockRunHistoryService) List(ctx context.Context, query *runs.RunQuery) ([]*runs.Run, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*runs.Run), args.Error(1)
}

func (m *MockRunHistoryService) GetByID(ctx context.Context, runID string) (*runs.Run, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runs.Run), args.Error(1)
}

func (m *MockRunHistoryService) DeleteByID(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}
