package models

import "time"

// AuditEntry is the row shape of the append-only audit_entries table.
type AuditEntry struct {
	AuditEntryID string        `db:"audit_entry_id"`
	SequenceNo   int64         `db:"sequence_no"`
	ExpenseID    string        `db:"expense_id"`
	FromStatus   ExpenseStatus `db:"from_status"`
	ToStatus     ExpenseStatus `db:"to_status"`
	Action       string        `db:"action"`
	ActorID      string        `db:"actor_id"`
	Reason       string        `db:"reason"`
	CreatedAt    time.Time     `db:"created_at"`
}
