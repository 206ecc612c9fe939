package services

import (
	"context"
	"time"

	"github.com/vytor/killstats/internal/dump"
	"github.com/vytor/killstats/internal/errors"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
)

// DumpService serves the most recently uploaded raw dump
type DumpService interface {
	Latest(ctx context.Context) (*models.RawUpload, error)
}

type dumpService struct {
	worldRepo    repository.WorldRepository
	uploadRepo   repository.UploadRepository
	defaultWorld string
	now          func() time.Time
}

// NewDumpService creates a new DumpService
func NewDumpService(worldRepo repository.WorldRepository, uploadRepo repository.UploadRepository, defaultWorld string, now func() time.Time) DumpService {
	if now == nil {
		now = time.Now
	}
	return &dumpService{
		worldRepo:    worldRepo,
		uploadRepo:   uploadRepo,
		defaultWorld: defaultWorld,
		now:          now,
	}
}

// Latest returns the newest raw upload. On first use, when nothing has been
// uploaded yet, it stores and returns an empty dump for the default world.
func (s *dumpService) Latest(ctx context.Context) (*models.RawUpload, error) {
	log := logger.FromContext(ctx).WithPrefix("dump")

	latest, err := s.uploadRepo.Latest(ctx, nil)
	if err != nil {
		log.Error("failed to load latest dump: %v", err)
		return nil, errors.NewStorageError("failed to load boss data", err)
	}
	if latest != nil {
		return latest, nil
	}

	log.Info("no dump stored yet, creating default for world %s", s.defaultWorld)
	world, err := ensureWorld(ctx, s.worldRepo, s.defaultWorld)
	if err != nil {
		log.Error("failed to ensure default world: %v", err)
		return nil, errors.NewStorageError("failed to store world", err)
	}

	at := s.now()
	text := dump.Default(world.Name, at)
	id, err := s.uploadRepo.Insert(ctx, &world.ID, text, at)
	if err != nil {
		log.Error("failed to store default dump: %v", err)
		return nil, errors.NewStorageError("failed to store boss data", err)
	}

	return &models.RawUpload{
		ID:         id,
		WorldID:    &world.ID,
		World:      world.Name,
		RawText:    text,
		UploadedAt: at,
	}, nil
}
