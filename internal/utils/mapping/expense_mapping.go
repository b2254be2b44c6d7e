package mapping

import (
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/SscSPs/expense_workflow_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:       d.ExpenseID,
		Title:           d.Title,
		Description:     d.Description,
		Amount:          d.Amount,
		Status:          models.ExpenseStatus(d.Status),
		RejectionReason: d.RejectionReason,
		SubmitterID:     d.SubmitterID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:       m.ExpenseID,
		Title:           m.Title,
		Description:     m.Description,
		Amount:          m.Amount,
		Status:          domain.ExpenseStatus(m.Status),
		RejectionReason: m.RejectionReason,
		SubmitterID:     m.SubmitterID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditEntryID: d.AuditEntryID,
		SequenceNo:   d.SequenceNo,
		ExpenseID:    d.ExpenseID,
		FromStatus:   models.ExpenseStatus(d.FromStatus),
		ToStatus:     models.ExpenseStatus(d.ToStatus),
		Action:       d.Action,
		ActorID:      d.ActorID,
		Reason:       d.Reason,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditEntryID: m.AuditEntryID,
		SequenceNo:   m.SequenceNo,
		ExpenseID:    m.ExpenseID,
		FromStatus:   domain.ExpenseStatus(m.FromStatus),
		ToStatus:     domain.ExpenseStatus(m.ToStatus),
		Action:       m.Action,
		ActorID:      m.ActorID,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainAuditEntrySlice converts a slice of model AuditEntries to domain AuditEntries
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}
