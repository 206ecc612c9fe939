package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
)

type uploadRepository struct {
	db *sql.DB
}

// NewUploadRepository creates a new UploadRepository implementation
func NewUploadRepository(db *sql.DB) repository.UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Insert(ctx context.Context, worldID *int64, text string, at time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("upload_repo")
	log.Debug("recording raw upload: bytes=%d", len(text))

	res, err := r.db.ExecContext(ctx, `
INSERT INTO raw_uploads (world_id, raw_text, uploaded_at)
VALUES (?, ?, ?)
`, worldID, text, at.UTC())
	if err != nil {
		log.Error("failed to insert raw upload: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

// Latest returns the newest upload, optionally restricted to one world.
// It returns nil, nil when there is none.
func (r *uploadRepository) Latest(ctx context.Context, worldID *int64) (*models.RawUpload, error) {
	log := logger.FromContext(ctx).WithPrefix("upload_repo")

	query := sqlBuilder.Select("u.id", "u.world_id", "COALESCE(w.name, '')", "u.raw_text", "u.uploaded_at").
		From("raw_uploads u").
		LeftJoin("worlds w ON w.id = u.world_id").
		OrderBy("u.uploaded_at DESC", "u.id DESC").
		Limit(1)
	if worldID != nil {
		query = query.Where(squirrel.Eq{"u.world_id": *worldID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var (
		u   models.RawUpload
		wid sql.NullInt64
	)
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&u.ID, &wid, &u.World, &u.RawText, &u.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no raw uploads stored")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get latest upload: %v", err)
		return nil, err
	}
	if wid.Valid {
		u.WorldID = &wid.Int64
	}
	return &u, nil
}

// PruneKeepLatest deletes all but the keep newest uploads. keep <= 0 is a no-op.
func (r *uploadRepository) PruneKeepLatest(ctx context.Context, keep int) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("upload_repo")
	if keep <= 0 {
		return 0, nil
	}

	var deleted int64
	err := inTx(ctx, r.db, "prune_uploads", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM raw_uploads
WHERE id NOT IN (
    SELECT id FROM raw_uploads
    ORDER BY uploaded_at DESC, id DESC
    LIMIT ?
)
`, keep)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Error("failed to prune raw uploads: %v", err)
		return 0, err
	}
	log.Info("pruned %d raw uploads, kept newest %d", deleted, keep)
	return deleted, nil
}
