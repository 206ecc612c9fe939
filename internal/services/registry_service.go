package services

import (
	"context"
	"strings"

	"github.com/vytor/killstats/internal/errors"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
)

// RegistryService manages the boss and world registries
type RegistryService interface {
	Seed(ctx context.Context, names []string) (int, error)
	ListBosses(ctx context.Context) ([]models.Boss, error)
	ListWorlds(ctx context.Context) ([]models.World, error)
}

type registryService struct {
	bossRepo  repository.BossRepository
	worldRepo repository.WorldRepository
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(bossRepo repository.BossRepository, worldRepo repository.WorldRepository) RegistryService {
	return &registryService{bossRepo: bossRepo, worldRepo: worldRepo}
}

// Seed registers every name not yet known and returns how many were added.
func (s *registryService) Seed(ctx context.Context, names []string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("registry")

	added := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		existing, err := s.bossRepo.GetByName(ctx, name)
		if err != nil {
			log.Error("failed to look up boss %s: %v", name, err)
			return added, errors.NewStorageError("failed to seed boss registry", err)
		}
		if existing != nil {
			continue
		}
		if _, err := s.bossRepo.Create(ctx, name); err != nil {
			log.Error("failed to create boss %s: %v", name, err)
			return added, errors.NewStorageError("failed to seed boss registry", err)
		}
		added++
	}
	log.Info("boss registry seeded: added=%d, listed=%d", added, len(names))
	return added, nil
}

func (s *registryService) ListBosses(ctx context.Context) ([]models.Boss, error) {
	bosses, err := s.bossRepo.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list bosses: %v", err)
		return nil, errors.NewStorageError("failed to load bosses", err)
	}
	return bosses, nil
}

func (s *registryService) ListWorlds(ctx context.Context) ([]models.World, error) {
	worlds, err := s.worldRepo.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list worlds: %v", err)
		return nil, errors.NewStorageError("failed to load worlds", err)
	}
	return worlds, nil
}
