package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/killstats/internal/models"
)

// MockIngester is a mock implementation of worker.Ingester
type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) Ingest(ctx context.Context, text string) (*models.IngestResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IngestResult), args.Error(1)
}
