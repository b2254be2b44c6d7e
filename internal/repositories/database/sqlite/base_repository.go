package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories. Writes go
// through WriteDB, which holds a single connection and begins immediate
// transactions; reads use the ReadDB pool.
type BaseRepository struct {
	WriteDB *sql.DB
	ReadDB  *sql.DB
}

// Begin starts a new write transaction
func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.WriteDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
