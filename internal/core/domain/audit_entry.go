package domain

import "time"

// ActionTransition is the action label recorded for every status change.
const ActionTransition = "transition"

// AuditEntry records one executed transition. Entries are never updated; they
// are removed only together with their expense.
type AuditEntry struct {
	AuditEntryID string        `json:"auditEntryID"`
	SequenceNo   int64         `json:"sequenceNo"` // Assigned by the store on append
	ExpenseID    string        `json:"expenseID"`
	FromStatus   ExpenseStatus `json:"fromStatus"`
	ToStatus     ExpenseStatus `json:"toStatus"`
	Action       string        `json:"action"`
	ActorID      string        `json:"actorID"`
	Reason       string        `json:"reason"`
	CreatedAt    time.Time     `json:"createdAt"`
}
