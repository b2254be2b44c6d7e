package services

import (
	"context"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/SscSPs/expense_workflow_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpense retrieves a specific expense by its unique identifier.
	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a page of expenses. Mine limits the page to the caller's own.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams, userID string) ([]domain.Expense, *string, error)
}

// ExpenseWriterSvc defines direct edits that do not change workflow status
type ExpenseWriterSvc interface {
	// CreateExpense persists a new Draft expense submitted by userID.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)

	// UpdateExpense edits title, description or amount while the expense is editable.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)

	// DeleteExpense removes a Draft expense.
	DeleteExpense(ctx context.Context, expenseID string, userID string) error
}

// AuditReaderSvc defines read operations for the audit trail
type AuditReaderSvc interface {
	// ListExpenseAuditEntries returns the trail of one expense in append order.
	ListExpenseAuditEntries(ctx context.Context, expenseID string) ([]domain.AuditEntry, error)

	// ListAuditEntries returns a page of the global trail.
	ListAuditEntries(ctx context.Context, params dto.ListAuditEntriesParams) ([]domain.AuditEntry, *string, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	AuditReaderSvc
}

// TransitionSvc moves expenses through the approval workflow.
type TransitionSvc interface {
	// ApplyTransition validates, authorizes and applies one status change and
	// records it in the audit trail, all in one unit of work. Refusals are
	// returned as *workflow.TransitionError.
	ApplyTransition(ctx context.Context, expenseID string, target domain.ExpenseStatus, actor domain.Actor, reason string) (*domain.Expense, error)
}
