package repository

import (
	"context"
	"time"

	"github.com/vytor/killstats/internal/models"
)

// WorldRepository handles world registry access
type WorldRepository interface {
	GetByName(ctx context.Context, name string) (*models.World, error)
	Create(ctx context.Context, name string) (*models.World, error)
	List(ctx context.Context) ([]models.World, error)
}

// BossRepository handles boss registry access
type BossRepository interface {
	GetByName(ctx context.Context, name string) (*models.Boss, error)
	Create(ctx context.Context, name string) (*models.Boss, error)
	List(ctx context.Context) ([]models.Boss, error)
	Count(ctx context.Context) (int, error)
}

// KillRepository handles per-day kill counts. Upsert overwrites the count stored
// for the same (boss, world, day).
type KillRepository interface {
	Upsert(ctx context.Context, bossID, worldID int64, day string, kills int) error
	List(ctx context.Context, filter models.KillFilter) ([]models.DailyKillRecord, error)
}

// UploadRepository is the append-only audit log of raw dumps
type UploadRepository interface {
	Insert(ctx context.Context, worldID *int64, text string, at time.Time) (int64, error)
	Latest(ctx context.Context, worldID *int64) (*models.RawUpload, error)
	PruneKeepLatest(ctx context.Context, keep int) (int64, error)
}
