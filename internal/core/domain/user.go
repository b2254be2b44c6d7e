package domain

// Role is a group membership that gates workflow transitions.
type Role string

const (
	RoleManager Role = "manager"
	RoleFinance Role = "finance"
)

// Actor identifies whoever is requesting a change. Role memberships are not
// carried here; they are resolved on demand so a stale token cannot grant them.
type Actor struct {
	UserID string `json:"userID"`
}
