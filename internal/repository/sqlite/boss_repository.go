package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
)

type bossRepository struct {
	db *sql.DB
}

// NewBossRepository creates a new BossRepository implementation
func NewBossRepository(db *sql.DB) repository.BossRepository {
	return &bossRepository{db: db}
}

func (r *bossRepository) GetByName(ctx context.Context, name string) (*models.Boss, error) {
	log := logger.FromContext(ctx).WithPrefix("boss_repo")
	log.Debug("getting boss: name=%s", name)

	var b models.Boss
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at
FROM bosses
WHERE name = ?
`, name).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get boss: %v", err)
		return nil, err
	}
	return &b, nil
}

// Create inserts the boss, or returns the existing row when the name is taken.
func (r *bossRepository) Create(ctx context.Context, name string) (*models.Boss, error) {
	log := logger.FromContext(ctx).WithPrefix("boss_repo")
	log.Debug("creating boss: name=%s", name)

	var b models.Boss
	err := r.db.QueryRowContext(ctx, `
INSERT INTO bosses (name)
VALUES (?)
ON CONFLICT(name) DO UPDATE SET name = excluded.name
RETURNING id, name, created_at
`, name).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		log.Error("failed to create boss: %v", err)
		return nil, err
	}
	return &b, nil
}

func (r *bossRepository) List(ctx context.Context) ([]models.Boss, error) {
	log := logger.FromContext(ctx).WithPrefix("boss_repo")

	query, args, err := sqlBuilder.Select("id", "name", "created_at").
		From("bosses").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list bosses: %v", err)
		return nil, err
	}
	defer rows.Close()

	bosses := []models.Boss{}
	for rows.Next() {
		var b models.Boss
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			log.Error("failed to scan boss row: %v", err)
			return nil, err
		}
		bosses = append(bosses, b)
	}
	log.Debug("found %d bosses", len(bosses))
	return bosses, rows.Err()
}

func (r *bossRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bosses`).Scan(&count); err != nil {
		logger.FromContext(ctx).WithPrefix("boss_repo").Error("failed to count bosses: %v", err)
		return 0, err
	}
	return count, nil
}
