package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_workflow_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// pgxUnitOfWork runs every operation on one pgx.Tx. Row locks taken by
// GetExpenseForUpdate are held until Commit or Rollback.
type pgxUnitOfWork struct {
	base *BaseRepository
	tx   pgx.Tx
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

func (u *pgxUnitOfWork) GetExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 FOR UPDATE;`
	m, err := scanExpense(u.tx.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock expense %s: %w", expenseID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

func (u *pgxUnitOfWork) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses SET
			title = $2,
			description = $3,
			amount = $4,
			status = $5,
			rejection_reason = $6,
			last_updated_at = $7,
			last_updated_by = $8,
			version = $9
		WHERE expense_id = $1 AND version = $10;
	`
	tag, err := u.tx.Exec(ctx, query,
		m.ExpenseID,
		m.Title,
		m.Description,
		m.Amount,
		m.Status,
		m.RejectionReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
		m.Version-1,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s at version %d: %w", m.ExpenseID, m.Version-1, apperrors.ErrConflict)
	}
	return nil
}

func (u *pgxUnitOfWork) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	query := `
		INSERT INTO audit_entries (audit_entry_id, expense_id, from_status, to_status, action, actor_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := u.tx.Exec(ctx, query,
		m.AuditEntryID,
		m.ExpenseID,
		m.FromStatus,
		m.ToStatus,
		m.Action,
		m.ActorID,
		m.Reason,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry for expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

func (u *pgxUnitOfWork) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := u.tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (u *pgxUnitOfWork) Commit(ctx context.Context) error {
	return u.base.Commit(ctx, u.tx)
}

func (u *pgxUnitOfWork) Rollback(ctx context.Context) error {
	return u.base.Rollback(ctx, u.tx)
}
