package repositories

import (
	"context"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a page of expenses, newest first, using token-based pagination.
	// It returns the expenses, a token for the next page, and an error.
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations that do not need a unit of work
type ExpenseWriter interface {
	// CreateExpense persists a new expense.
	CreateExpense(ctx context.Context, expense domain.Expense) error
}

// AuditReader defines read operations for the audit trail
type AuditReader interface {
	// ListAuditEntriesByExpense returns the trail of one expense in append order.
	ListAuditEntriesByExpense(ctx context.Context, expenseID string) ([]domain.AuditEntry, error)

	// ListAuditEntries returns a page of the global trail in append order.
	ListAuditEntries(ctx context.Context, limit int, nextToken *string) ([]domain.AuditEntry, *string, error)
}

// RoleResolver answers group membership questions for an actor.
type RoleResolver interface {
	HasRole(ctx context.Context, userID string, role domain.Role) (bool, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	AuditReader
	TransitionStore
}

// RoleWriter manages group memberships.
type RoleWriter interface {
	GrantRole(ctx context.Context, userID string, role domain.Role) error
}

// RoleRepositoryFacade combines role lookups and role administration
type RoleRepositoryFacade interface {
	RoleResolver
	RoleWriter
}
