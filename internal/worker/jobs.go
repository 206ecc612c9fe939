package worker

import (
	"context"
	"fmt"

	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/source"
)

// FetchDumpJob downloads the remote dump and ingests it.
type FetchDumpJob struct {
	Fetcher  source.Fetcher
	Ingester Ingester
}

func (j *FetchDumpJob) Name() string { return "fetch_dump" }

func (j *FetchDumpJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	text, err := j.Fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch dump: %w", err)
	}

	res, err := j.Ingester.Ingest(ctx, text)
	if err != nil {
		return fmt.Errorf("ingest fetched dump: %w", err)
	}
	for _, msg := range res.Errors {
		log.Warn("ingest item error: %s", msg)
	}
	log.Info("fetched dump ingested: world=%s, inserted=%d, total=%d", res.World, res.Inserted, res.Total)
	return nil
}

// PruneUploadsJob keeps only the Keep newest raw uploads.
type PruneUploadsJob struct {
	Pruner UploadPruner
	Keep   int
}

func (j *PruneUploadsJob) Name() string { return "prune_uploads" }

func (j *PruneUploadsJob) Run(ctx context.Context) error {
	if j.Keep <= 0 {
		return nil
	}
	deleted, err := j.Pruner.PruneKeepLatest(ctx, j.Keep)
	if err != nil {
		return fmt.Errorf("prune uploads: %w", err)
	}
	logger.FromContext(ctx).Info("pruned %d raw uploads", deleted)
	return nil
}
