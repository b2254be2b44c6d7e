package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// DefaultFinanceApprovalThreshold is the smallest amount that needs a finance sign-off.
var DefaultFinanceApprovalThreshold = decimal.RequireFromString("1000.00")

var legalTransitions = map[domain.ExpenseStatus][]domain.ExpenseStatus{
	domain.StatusDraft:           {domain.StatusSubmitted},
	domain.StatusSubmitted:       {domain.StatusManagerApproved, domain.StatusRejected},
	domain.StatusManagerApproved: {domain.StatusFinanceApproved, domain.StatusRejected},
	domain.StatusRejected:        {domain.StatusSubmitted},
	domain.StatusFinanceApproved: {},
}

// AllowedTargets returns the statuses reachable from current in one step.
func AllowedTargets(current domain.ExpenseStatus) []domain.ExpenseStatus {
	targets := legalTransitions[current]
	out := make([]domain.ExpenseStatus, len(targets))
	copy(out, targets)
	return out
}

// IsLegal reports whether the pair appears in the transition table.
func IsLegal(from, to domain.ExpenseStatus) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CheckTransition validates a requested move independent of who asks for it.
// Checks run in order: table membership, finance threshold, rejection reason.
func CheckTransition(current, target domain.ExpenseStatus, amount decimal.Decimal, reason string, threshold decimal.Decimal) error {
	if !IsLegal(current, target) {
		return &TransitionError{
			Kind:    KindInvalidTransition,
			Field:   "target_status",
			Message: fmt.Sprintf("cannot transition from %s to %s", current, target),
		}
	}

	if target == domain.StatusFinanceApproved && amount.LessThan(threshold) {
		return &TransitionError{
			Kind:    KindApprovalNotRequired,
			Field:   "amount",
			Message: fmt.Sprintf("finance approval is only required for amounts of %s or more", threshold.StringFixed(2)),
		}
	}

	if target == domain.StatusRejected && strings.TrimSpace(reason) == "" {
		return &TransitionError{
			Kind:    KindMissingReason,
			Field:   "reason",
			Message: "A rejection reason is required.",
		}
	}

	return nil
}

// Authorize checks that actor may move expense to target. It must be called
// only after CheckTransition has accepted the move.
func Authorize(ctx context.Context, expense domain.Expense, target domain.ExpenseStatus, actor domain.Actor, roles portsrepo.RoleResolver) error {
	switch target {
	case domain.StatusSubmitted:
		if actor.UserID == "" || actor.UserID != expense.SubmitterID {
			return unauthorized(GateSubmitter, "Only the submitter can submit an expense.")
		}
		return nil

	case domain.StatusManagerApproved:
		ok, err := hasAnyRole(ctx, roles, actor, domain.RoleManager)
		if err != nil {
			return err
		}
		if !ok {
			return unauthorized(GateManager, "Only managers can approve at this step.")
		}
		return nil

	case domain.StatusFinanceApproved:
		ok, err := hasAnyRole(ctx, roles, actor, domain.RoleFinance)
		if err != nil {
			return err
		}
		if !ok {
			return unauthorized(GateFinance, "Only finance can approve at this step.")
		}
		return nil

	case domain.StatusRejected:
		ok, err := hasAnyRole(ctx, roles, actor, domain.RoleManager, domain.RoleFinance)
		if err != nil {
			return err
		}
		if !ok {
			return unauthorized(GateManagerOrFinance, "Only managers or finance can reject expenses.")
		}
		return nil
	}

	return &TransitionError{
		Kind:    KindInvalidTransition,
		Field:   "target_status",
		Message: fmt.Sprintf("no authorization rule for target %s", target),
	}
}

func hasAnyRole(ctx context.Context, roles portsrepo.RoleResolver, actor domain.Actor, wanted ...domain.Role) (bool, error) {
	if actor.UserID == "" {
		return false, nil
	}
	for _, role := range wanted {
		ok, err := roles.HasRole(ctx, actor.UserID, role)
		if err != nil {
			return false, fmt.Errorf("failed to resolve role %s for user %s: %w", role, actor.UserID, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func unauthorized(gate Gate, msg string) *TransitionError {
	return &TransitionError{
		Kind:    KindUnauthorized,
		Field:   "actor",
		Gate:    gate,
		Message: msg,
	}
}
