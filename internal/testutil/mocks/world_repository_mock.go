package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/killstats/internal/models"
)

// MockWorldRepository is a mock implementation of repository.WorldRepository
type MockWorldRepository struct {
	mock.Mock
}

func (m *MockWorldRepository) GetByName(ctx context.Context, name string) (*models.World, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.World), args.Error(1)
}

func (m *MockWorldRepository) Create(ctx context.Context, name string) (*models.World, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.World), args.Error(1)
}

func (m *MockWorldRepository) List(ctx context.Context) ([]models.World, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.World), args.Error(1)
}
