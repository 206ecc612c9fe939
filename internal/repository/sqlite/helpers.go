package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/killstats/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// inTx runs fn in a transaction named op, rolling back when fn fails.
func inTx(ctx context.Context, db *sql.DB, op string, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo").WithField("op", op)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin failed: %v", err)
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Warn("rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("commit failed: %v", err)
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	log.Debug("committed")
	return nil
}
