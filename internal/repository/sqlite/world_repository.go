package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
)

type worldRepository struct {
	db *sql.DB
}

// NewWorldRepository creates a new WorldRepository implementation
func NewWorldRepository(db *sql.DB) repository.WorldRepository {
	return &worldRepository{db: db}
}

func (r *worldRepository) GetByName(ctx context.Context, name string) (*models.World, error) {
	log := logger.FromContext(ctx).WithPrefix("world_repo")
	log.Debug("getting world: name=%s", name)

	var w models.World
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at
FROM worlds
WHERE name = ?
`, name).Scan(&w.ID, &w.Name, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("world not found: name=%s", name)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get world: %v", err)
		return nil, err
	}
	return &w, nil
}

// Create inserts the world, or returns the existing row when the name is taken.
func (r *worldRepository) Create(ctx context.Context, name string) (*models.World, error) {
	log := logger.FromContext(ctx).WithPrefix("world_repo")
	log.Debug("creating world: name=%s", name)

	var w models.World
	err := r.db.QueryRowContext(ctx, `
INSERT INTO worlds (name)
VALUES (?)
ON CONFLICT(name) DO UPDATE SET name = excluded.name
RETURNING id, name, created_at
`, name).Scan(&w.ID, &w.Name, &w.CreatedAt)
	if err != nil {
		log.Error("failed to create world: %v", err)
		return nil, err
	}
	log.Debug("world ready: id=%d", w.ID)
	return &w, nil
}

func (r *worldRepository) List(ctx context.Context) ([]models.World, error) {
	log := logger.FromContext(ctx).WithPrefix("world_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_at
FROM worlds
ORDER BY name ASC
`)
	if err != nil {
		log.Error("failed to list worlds: %v", err)
		return nil, err
	}
	defer rows.Close()

	worlds := []models.World{}
	for rows.Next() {
		var w models.World
		if err := rows.Scan(&w.ID, &w.Name, &w.CreatedAt); err != nil {
			log.Error("failed to scan world row: %v", err)
			return nil, err
		}
		worlds = append(worlds, w)
	}
	log.Debug("found %d worlds", len(worlds))
	return worlds, rows.Err()
}
