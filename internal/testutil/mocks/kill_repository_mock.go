package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/killstats/internal/models"
)

// MockKillRepository is a mock implementation of repository.KillRepository
type MockKillRepository struct {
	mock.Mock
}

func (m *MockKillRepository) Upsert(ctx context.Context, bossID, worldID int64, day string, kills int) error {
	args := m.Called(ctx, bossID, worldID, day, kills)
	return args.Error(0)
}

func (m *MockKillRepository) List(ctx context.Context, filter models.KillFilter) ([]models.DailyKillRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyKillRecord), args.Error(1)
}
