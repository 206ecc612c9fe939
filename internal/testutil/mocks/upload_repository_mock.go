package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/killstats/internal/models"
)

// MockUploadRepository is a mock implementation of repository.UploadRepository
type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Insert(ctx context.Context, worldID *int64, text string, at time.Time) (int64, error) {
	args := m.Called(ctx, worldID, text, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUploadRepository) Latest(ctx context.Context, worldID *int64) (*models.RawUpload, error) {
	args := m.Called(ctx, worldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RawUpload), args.Error(1)
}

func (m *MockUploadRepository) PruneKeepLatest(ctx context.Context, keep int) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}
