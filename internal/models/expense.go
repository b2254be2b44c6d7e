package models

import (
	"github.com/shopspring/decimal"
)

// ExpenseStatus is the stored status value.
type ExpenseStatus string

// Expense is the row shape of the expenses table.
type Expense struct {
	ExpenseID       string          `db:"expense_id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	Status          ExpenseStatus   `db:"status"`
	RejectionReason string          `db:"rejection_reason"`
	SubmitterID     string          `db:"submitter_id"`
	AuditFields
}
