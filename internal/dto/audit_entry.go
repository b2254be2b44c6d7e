package dto

import (
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
)

// ListAuditEntriesParams defines query parameters for the global audit listing.
type ListAuditEntriesParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=0,max=100"`
	NextToken string `form:"nextToken"`
}

// AuditEntryResponse defines the data returned for one audit record.
type AuditEntryResponse struct {
	AuditEntryID string    `json:"auditEntryID"`
	ExpenseID    string    `json:"expenseID"`
	FromStatus   string    `json:"fromStatus"`
	ToStatus     string    `json:"toStatus"`
	Action       string    `json:"action"`
	ActorID      string    `json:"actorID"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListAuditEntriesResponse wraps a page of audit entries.
type ListAuditEntriesResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToAuditEntryResponse converts a domain.AuditEntry to its DTO
func ToAuditEntryResponse(a domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		AuditEntryID: a.AuditEntryID,
		ExpenseID:    a.ExpenseID,
		FromStatus:   string(a.FromStatus),
		ToStatus:     string(a.ToStatus),
		Action:       a.Action,
		ActorID:      a.ActorID,
		Reason:       a.Reason,
		CreatedAt:    a.CreatedAt,
	}
}

// ToListAuditEntriesResponse converts audit entries to the list DTO
func ToListAuditEntriesResponse(entries []domain.AuditEntry, nextToken *string) ListAuditEntriesResponse {
	res := make([]AuditEntryResponse, len(entries))
	for i, a := range entries {
		res[i] = ToAuditEntryResponse(a)
	}
	return ListAuditEntriesResponse{Entries: res, NextToken: nextToken}
}
