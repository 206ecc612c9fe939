package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/killstats/internal/models"
)

// MockBossRepository is a mock implementation of repository.BossRepository
type MockBossRepository struct {
	mock.Mock
}

func (m *MockBossRepository) GetByName(ctx context.Context, name string) (*models.Boss, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Boss), args.Error(1)
}

func (m *MockBossRepository) Create(ctx context.Context, name string) (*models.Boss, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Boss), args.Error(1)
}

func (m *MockBossRepository) List(ctx context.Context) ([]models.Boss, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Boss), args.Error(1)
}

func (m *MockBossRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
