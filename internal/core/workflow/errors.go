package workflow

import (
	"errors"
	"fmt"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
)

// Kind classifies why a transition was refused.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindInvalidTransition   Kind = "INVALID_TRANSITION"
	KindApprovalNotRequired Kind = "APPROVAL_NOT_REQUIRED"
	KindMissingReason       Kind = "MISSING_REASON"
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindConflict            Kind = "CONFLICT"
)

// Sentinels matched by errors.Is against a *TransitionError of the same kind.
var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrApprovalNotRequired = errors.New("finance approval not required")
	ErrMissingReason       = errors.New("rejection reason required")
	ErrUnauthorized        = errors.New("actor not authorized for transition")
	ErrConflict            = errors.New("expense changed concurrently")
)

// Gate names the authorization check an actor failed.
type Gate string

const (
	GateSubmitter        Gate = "submitter"
	GateManager          Gate = "manager"
	GateFinance          Gate = "finance"
	GateManagerOrFinance Gate = "manager_or_finance"
)

// TransitionError is returned for every refused transition. It unwraps to the
// kind sentinel above and to the matching apperrors sentinel, so callers can
// test at either granularity.
type TransitionError struct {
	Kind    Kind
	Field   string // Offending input field
	Gate    Gate   // Set only for KindUnauthorized
	Message string
	Err     error // Underlying store error, if any
}

func (e *TransitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *TransitionError) Unwrap() []error {
	errs := make([]error, 0, 3)
	switch e.Kind {
	case KindNotFound:
		errs = append(errs, ErrExpenseNotFound, apperrors.ErrNotFound)
	case KindInvalidTransition:
		errs = append(errs, ErrInvalidTransition, apperrors.ErrValidation)
	case KindApprovalNotRequired:
		errs = append(errs, ErrApprovalNotRequired, apperrors.ErrValidation)
	case KindMissingReason:
		errs = append(errs, ErrMissingReason, apperrors.ErrValidation)
	case KindUnauthorized:
		errs = append(errs, ErrUnauthorized, apperrors.ErrForbidden)
	case KindConflict:
		errs = append(errs, ErrConflict, apperrors.ErrConflict)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// AsTransitionError extracts a *TransitionError from err's chain.
func AsTransitionError(err error) (*TransitionError, bool) {
	var te *TransitionError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// NewNotFound reports a missing expense.
func NewNotFound(expenseID string, cause error) *TransitionError {
	return &TransitionError{
		Kind:    KindNotFound,
		Field:   "expense_id",
		Message: fmt.Sprintf("expense %s not found", expenseID),
		Err:     cause,
	}
}

// NewConflict reports that the expense changed between load and commit.
func NewConflict(expenseID string, cause error) *TransitionError {
	return &TransitionError{
		Kind:    KindConflict,
		Field:   "status",
		Message: fmt.Sprintf("expense %s was modified by another request", expenseID),
		Err:     cause,
	}
}
