package dto

import (
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/SscSPs/expense_workflow_app/internal/core/workflow"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to create a new expense.
// The submitter is always the authenticated user.
type CreateExpenseRequest struct {
	Title       string          `json:"title" binding:"required,max=255"`
	Description string          `json:"description" binding:"max=5000"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"string" example:"125.50"`
}

// UpdateExpenseRequest defines the fields that may be edited directly.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateExpenseRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gt=0" swaggertype:"string" example:"99.99"`
}

// TransitionRequest asks the workflow to move an expense to a new status.
type TransitionRequest struct {
	TargetStatus string `json:"targetStatus" binding:"required,expense_status" example:"submitted"`
	Reason       string `json:"reason" binding:"max=2000"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken string `form:"nextToken"`
	Status    string `form:"status" binding:"omitempty,expense_status"`
	Mine      bool   `form:"mine"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID          string          `json:"expenseID"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount" swaggertype:"string"`
	Status             string          `json:"status"`
	RejectionReason    string          `json:"rejectionReason"`
	SubmitterID        string          `json:"submitterID"`
	AllowedTransitions []string        `json:"allowedTransitions"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
	Version            int64           `json:"version"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	targets := workflow.AllowedTargets(e.Status)
	allowed := make([]string, len(targets))
	for i, t := range targets {
		allowed[i] = string(t)
	}
	return ExpenseResponse{
		ExpenseID:          e.ExpenseID,
		Title:              e.Title,
		Description:        e.Description,
		Amount:             e.Amount,
		Status:             string(e.Status),
		RejectionReason:    e.RejectionReason,
		SubmitterID:        e.SubmitterID,
		AllowedTransitions: allowed,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
		LastUpdatedAt:      e.LastUpdatedAt,
		LastUpdatedBy:      e.LastUpdatedBy,
		Version:            e.Version,
	}
}

// ToListExpensesResponse converts a page of domain expenses to its DTO
func ToListExpensesResponse(expenses []domain.Expense, nextToken *string) ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: res, NextToken: nextToken}
}
