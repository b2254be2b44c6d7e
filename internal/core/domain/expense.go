package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the workflow position of an expense.
type ExpenseStatus string

const (
	StatusDraft           ExpenseStatus = "draft"
	StatusSubmitted       ExpenseStatus = "submitted"
	StatusManagerApproved ExpenseStatus = "manager_approved"
	StatusFinanceApproved ExpenseStatus = "finance_approved"
	StatusRejected        ExpenseStatus = "rejected"
)

// AllExpenseStatuses lists every status in workflow order.
var AllExpenseStatuses = []ExpenseStatus{
	StatusDraft,
	StatusSubmitted,
	StatusManagerApproved,
	StatusFinanceApproved,
	StatusRejected,
}

func (s ExpenseStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusManagerApproved, StatusFinanceApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no transition can leave s.
func (s ExpenseStatus) IsTerminal() bool {
	return s == StatusFinanceApproved
}

// ParseExpenseStatus converts a wire value into an ExpenseStatus.
func ParseExpenseStatus(raw string) (ExpenseStatus, error) {
	s := ExpenseStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown expense status %q", raw)
	}
	return s, nil
}

// Expense is a claim for reimbursement moving through the approval workflow.
type Expense struct {
	ExpenseID       string          `json:"expenseID"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Status          ExpenseStatus   `json:"status"`
	RejectionReason string          `json:"rejectionReason"`
	SubmitterID     string          `json:"submitterID"`
	AuditFields
}

// Validate checks the field level rules that hold for every persisted expense.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("invalid status %q", e.Status)
	}
	if e.SubmitterID == "" {
		return fmt.Errorf("submitter is required")
	}
	return nil
}

// IsEditable reports whether title, description and amount may still be changed
// directly. Approved and rejected expenses only move through transitions.
func (e Expense) IsEditable() bool {
	return e.Status == StatusDraft || e.Status == StatusSubmitted
}

// EditBlockedReason explains why IsEditable is false, or returns "".
func (e Expense) EditBlockedReason() string {
	switch e.Status {
	case StatusManagerApproved, StatusFinanceApproved:
		return "Approved expenses cannot be modified."
	case StatusRejected:
		return "Rejected expenses must be resubmitted."
	}
	return ""
}

// ExpenseFilter narrows an expense listing. Zero values match everything.
type ExpenseFilter struct {
	Status      ExpenseStatus
	SubmitterID string
}

// Matches reports whether e passes the filter.
func (f ExpenseFilter) Matches(e Expense) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.SubmitterID != "" && e.SubmitterID != f.SubmitterID {
		return false
	}
	return true
}
