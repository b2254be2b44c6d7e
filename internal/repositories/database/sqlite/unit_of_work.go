package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_workflow_app/internal/utils/mapping"
)

type sqliteUnitOfWork struct {
	base *BaseRepository
	tx   *sql.Tx
}

var _ portsrepo.UnitOfWork = (*sqliteUnitOfWork)(nil)

// GetExpenseForUpdate reads inside the immediate transaction; SQLite has no row
// locks, the transaction already owns the database write lock.
func (u *sqliteUnitOfWork) GetExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = ?;`
	m, err := scanExpense(u.tx.QueryRowContext(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load expense %s: %w", expenseID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

func (u *sqliteUnitOfWork) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses SET
			title = ?,
			description = ?,
			amount = ?,
			status = ?,
			rejection_reason = ?,
			last_updated_at = ?,
			last_updated_by = ?,
			version = ?
		WHERE expense_id = ? AND version = ?;
	`
	res, err := u.tx.ExecContext(ctx, query,
		m.Title,
		m.Description,
		m.Amount.StringFixed(2),
		string(m.Status),
		m.RejectionReason,
		m.LastUpdatedAt.UTC(),
		m.LastUpdatedBy,
		m.Version,
		m.ExpenseID,
		m.Version-1,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for expense %s: %w", m.ExpenseID, err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s at version %d: %w", m.ExpenseID, m.Version-1, apperrors.ErrConflict)
	}
	return nil
}

func (u *sqliteUnitOfWork) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	_, err := u.tx.ExecContext(ctx, `
		INSERT INTO audit_entries (audit_entry_id, expense_id, from_status, to_status, action, actor_id, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		m.AuditEntryID,
		m.ExpenseID,
		string(m.FromStatus),
		string(m.ToStatus),
		m.Action,
		m.ActorID,
		m.Reason,
		m.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry for expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

func (u *sqliteUnitOfWork) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := u.tx.ExecContext(ctx, `DELETE FROM expenses WHERE expense_id = ?;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for expense %s: %w", expenseID, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (u *sqliteUnitOfWork) Commit(ctx context.Context) error {
	return u.base.Commit(ctx, u.tx)
}

func (u *sqliteUnitOfWork) Rollback(ctx context.Context) error {
	return u.base.Rollback(ctx, u.tx)
}
