package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
)

type killRepository struct {
	db *sql.DB
}

// NewKillRepository creates a new KillRepository implementation
func NewKillRepository(db *sql.DB) repository.KillRepository {
	return &killRepository{db: db}
}

// Upsert stores the kill count for (boss, world, day); a second write for the same
// key replaces the count instead of adding to it.
func (r *killRepository) Upsert(ctx context.Context, bossID, worldID int64, day string, kills int) error {
	log := logger.FromContext(ctx).WithPrefix("kill_repo")
	log.Debug("upserting kills: boss_id=%d, world_id=%d, day=%s, kills=%d", bossID, worldID, day, kills)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO boss_daily_kills (boss_id, world_id, day, kills)
VALUES (?, ?, ?, ?)
ON CONFLICT(boss_id, world_id, day) DO UPDATE SET
    kills = excluded.kills,
    updated_at = CURRENT_TIMESTAMP
`, bossID, worldID, day, kills)
	if err != nil {
		log.Error("failed to upsert kills: %v", err)
	}
	return err
}

func (r *killRepository) List(ctx context.Context, filter models.KillFilter) ([]models.DailyKillRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("kill_repo")
	log.Debug("listing kills with filter: world=%s, boss=%s, from=%s, to=%s",
		filter.World, filter.Boss, filter.From, filter.To)

	query := sqlBuilder.Select("b.name", "k.day", "k.kills", "w.name").
		From("boss_daily_kills k").
		Join("bosses b ON b.id = k.boss_id").
		Join("worlds w ON w.id = k.world_id")

	if filter.World != "" {
		query = query.Where(squirrel.Eq{"w.name": filter.World})
	}
	if filter.Boss != "" {
		query = query.Where(squirrel.Eq{"b.name": filter.Boss})
	}
	if filter.From != "" {
		query = query.Where(squirrel.GtOrEq{"k.day": filter.From})
	}
	if filter.To != "" {
		query = query.Where(squirrel.LtOrEq{"k.day": filter.To})
	}
	query = query.OrderBy("b.name ASC", "k.day ASC", "w.name ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list kills: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := []models.DailyKillRecord{}
	for rows.Next() {
		var rec models.DailyKillRecord
		if err := rows.Scan(&rec.Boss, &rec.Date, &rec.Kills, &rec.World); err != nil {
			log.Error("failed to scan kill row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debug("found %d kill records", len(records))
	return records, rows.Err()
}
