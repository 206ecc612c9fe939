package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/killstats/internal/dump"
	"github.com/vytor/killstats/internal/errors"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
)

// IngestService turns raw dumps into stored kill records
type IngestService interface {
	Ingest(ctx context.Context, text string) (*models.IngestResult, error)
	Preview(ctx context.Context, text string) (*dump.Result, error)
}

type ingestService struct {
	worldRepo  repository.WorldRepository
	bossRepo   repository.BossRepository
	killRepo   repository.KillRepository
	uploadRepo repository.UploadRepository
	now        func() time.Time
}

// NewIngestService creates a new IngestService. now defaults to time.Now.
func NewIngestService(
	worldRepo repository.WorldRepository,
	bossRepo repository.BossRepository,
	killRepo repository.KillRepository,
	uploadRepo repository.UploadRepository,
	now func() time.Time,
) IngestService {
	if now == nil {
		now = time.Now
	}
	return &ingestService{
		worldRepo:  worldRepo,
		bossRepo:   bossRepo,
		killRepo:   killRepo,
		uploadRepo: uploadRepo,
		now:        now,
	}
}

func (s *ingestService) Ingest(ctx context.Context, text string) (*models.IngestResult, error) {
	log := logger.FromContext(ctx).WithPrefix("ingest")

	if strings.TrimSpace(text) == "" {
		return nil, errors.NewBadRequestError("missing or invalid text field")
	}

	parsed := dump.Parse(text)
	if len(parsed.Records) == 0 {
		log.Warn("dump contained no kill records: world=%s, bosses=%d", parsed.World, len(parsed.Bosses))
		return nil, errors.NewNoValidDataError()
	}
	log = log.WithField("world", parsed.World)
	log.Info("ingesting dump: records=%d, bosses=%d", len(parsed.Records), len(parsed.Bosses))

	world, err := ensureWorld(ctx, s.worldRepo, parsed.World)
	if err != nil {
		log.Error("failed to ensure world: %v", err)
		return nil, errors.NewStorageError("failed to store world", err)
	}

	result := &models.IngestResult{World: parsed.World, Total: len(parsed.Records)}

	bossIDs := make(map[string]int64, len(parsed.Bosses))
	failed := make(map[string]bool)
	for _, name := range parsed.Bosses {
		if _, ok := bossIDs[name]; ok || failed[name] {
			continue
		}
		boss, err := ensureBoss(ctx, s.bossRepo, name)
		if err != nil {
			log.Warn("failed to register boss %s: %v", name, err)
			result.AddErrorf("Boss %s: %v", name, err)
			failed[name] = true
			continue
		}
		bossIDs[name] = boss.ID
	}

	for _, r := range parsed.Records {
		bossID, ok := bossIDs[r.Boss]
		if !ok {
			continue
		}
		if err := s.killRepo.Upsert(ctx, bossID, world.ID, r.Date, r.Kills); err != nil {
			result.AddErrorf("Kill data for %s on %s: %v", r.Boss, r.Date, err)
			continue
		}
		result.Inserted++
	}

	if _, err := s.uploadRepo.Insert(ctx, &world.ID, text, s.now()); err != nil {
		log.Warn("failed to record raw upload: %v", err)
		result.AddErrorf("Raw upload: %v", err)
	}

	if result.Inserted == 0 {
		log.Error("no kill records could be stored: errors=%d", len(result.Errors))
		return nil, errors.NewStorageError("no kill records could be stored", nil)
	}

	result.OK = true
	log.Info("dump ingested: inserted=%d, total=%d, errors=%d", result.Inserted, result.Total, len(result.Errors))
	return result, nil
}

func (s *ingestService) Preview(ctx context.Context, text string) (*dump.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewBadRequestError("missing or invalid text field")
	}
	parsed := dump.Parse(text)
	logger.FromContext(ctx).WithPrefix("ingest").Debug("previewed dump: world=%s, records=%d", parsed.World, len(parsed.Records))
	return &parsed, nil
}

// ensureWorld returns the named world, creating it when missing.
func ensureWorld(ctx context.Context, repo repository.WorldRepository, name string) (*models.World, error) {
	w, err := repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}
	return repo.Create(ctx, name)
}

func ensureBoss(ctx context.Context, repo repository.BossRepository, name string) (*models.Boss, error) {
	b, err := repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}
	return repo.Create(ctx, name)
}
