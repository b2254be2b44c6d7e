package repositories

import (
	"context"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
)

// UnitOfWork is one atomic read-modify-write scope against the store. Nothing
// written through it is visible to others until Commit succeeds.
type UnitOfWork interface {
	// GetExpenseForUpdate loads an expense and holds its lock until the unit ends.
	// Returns apperrors.ErrNotFound if the expense does not exist.
	GetExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error)

	// SaveExpense persists a snapshot whose Version is exactly one more than the
	// stored one. Returns apperrors.ErrConflict when the stored version moved.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// AppendAuditEntry adds an immutable audit record.
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// DeleteExpense removes the expense and, by cascade, its audit trail.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Commit makes every write visible.
	Commit(ctx context.Context) error

	// Rollback discards every write. It is a no-op after Commit.
	Rollback(ctx context.Context) error
}

// TransitionStore opens units of work.
type TransitionStore interface {
	BeginUnitOfWork(ctx context.Context) (UnitOfWork, error)
}
