package worker

import (
	"context"

	"github.com/vytor/killstats/internal/models"
)

// Ingester stores a raw dump. It is declared here so the worker package does not
// import services.
type Ingester interface {
	Ingest(ctx context.Context, text string) (*models.IngestResult, error)
}

// UploadPruner trims the raw upload audit log.
type UploadPruner interface {
	PruneKeepLatest(ctx context.Context, keep int) (int64, error)
}
