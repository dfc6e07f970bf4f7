package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/artikelfinder/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// singletonID is the pinned primary key of the one-row tables.
const singletonID = 1

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}

// parseInt reads an INTEGER column scanned as text. SQLite does not enforce
// column types, so a stored value may not be a number at all.
func parseInt(column string, v sql.NullString) (int, error) {
	if !v.Valid {
		return 0, fmt.Errorf("%s is NULL", column)
	}
	n, err := strconv.Atoi(v.String)
	if err != nil {
		return 0, fmt.Errorf("%s is not an integer: %q", column, v.String)
	}
	return n, nil
}
