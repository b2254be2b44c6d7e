package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpenseStatus(t *testing.T) {
	s, err := ParseExpenseStatus(" Manager_Approved ")
	require.NoError(t, err)
	assert.Equal(t, StatusManagerApproved, s)

	_, err = ParseExpenseStatus("approved")
	assert.Error(t, err)
	_, err = ParseExpenseStatus("")
	assert.Error(t, err)
}

func TestExpenseStatus_IsTerminal(t *testing.T) {
	for _, s := range AllExpenseStatuses {
		assert.Equal(t, s == StatusFinanceApproved, s.IsTerminal(), s.String())
	}
}

func TestExpense_Validate(t *testing.T) {
	valid := Expense{
		Title:       "Taxi",
		Amount:      decimal.RequireFromString("12.50"),
		Status:      StatusDraft,
		SubmitterID: "alice",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(e *Expense)
	}{
		{"blank title", func(e *Expense) { e.Title = "  " }},
		{"zero amount", func(e *Expense) { e.Amount = decimal.Zero }},
		{"negative amount", func(e *Expense) { e.Amount = decimal.RequireFromString("-1") }},
		{"unknown status", func(e *Expense) { e.Status = "paid" }},
		{"no submitter", func(e *Expense) { e.SubmitterID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			assert.Error(t, e.Validate())
		})
	}
}

func TestExpense_IsEditable(t *testing.T) {
	tests := []struct {
		status   ExpenseStatus
		editable bool
		reason   string
	}{
		{StatusDraft, true, ""},
		{StatusSubmitted, true, ""},
		{StatusManagerApproved, false, "Approved expenses cannot be modified."},
		{StatusFinanceApproved, false, "Approved expenses cannot be modified."},
		{StatusRejected, false, "Rejected expenses must be resubmitted."},
	}
	for _, tt := range tests {
		e := Expense{Status: tt.status}
		assert.Equal(t, tt.editable, e.IsEditable(), tt.status.String())
		assert.Equal(t, tt.reason, e.EditBlockedReason(), tt.status.String())
	}
}

func TestExpenseFilter_Matches(t *testing.T) {
	e := Expense{Status: StatusSubmitted, SubmitterID: "alice"}

	assert.True(t, ExpenseFilter{}.Matches(e))
	assert.True(t, ExpenseFilter{Status: StatusSubmitted, SubmitterID: "alice"}.Matches(e))
	assert.False(t, ExpenseFilter{Status: StatusDraft}.Matches(e))
	assert.False(t, ExpenseFilter{SubmitterID: "bob"}.Matches(e))
}
