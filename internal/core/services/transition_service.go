package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/expense_workflow_app/internal/core/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transitionService is the transition engine. It keeps no state between calls.
type transitionService struct {
	BaseService
	store     portsrepo.TransitionStore
	roles     portsrepo.RoleResolver
	threshold decimal.Decimal
	timeout   time.Duration
}

// TransitionOption is a functional option for configuring the transition service
type TransitionOption func(*transitionService)

// WithFinanceApprovalThreshold overrides the amount from which finance approval applies
func WithFinanceApprovalThreshold(threshold decimal.Decimal) TransitionOption {
	return func(s *transitionService) {
		s.threshold = threshold
	}
}

// WithTransitionTimeout bounds calls that arrive without a deadline. Zero disables it.
func WithTransitionTimeout(timeout time.Duration) TransitionOption {
	return func(s *transitionService) {
		s.timeout = timeout
	}
}

// WithTransitionClock replaces the clock used for timestamps
func WithTransitionClock(now func() time.Time) TransitionOption {
	return func(s *transitionService) {
		s.Now = now
	}
}

// NewTransitionService creates the transition engine over a store and a role resolver.
func NewTransitionService(store portsrepo.TransitionStore, roles portsrepo.RoleResolver, options ...TransitionOption) portssvc.TransitionSvc {
	svc := &transitionService{
		store:     store,
		roles:     roles,
		threshold: workflow.DefaultFinanceApprovalThreshold,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransitionSvc = (*transitionService)(nil)

func (s *transitionService) ApplyTransition(ctx context.Context, expenseID string, target domain.ExpenseStatus, actor domain.Actor, reason string) (*domain.Expense, error) {
	logAttrs := []any{
		slog.String("expense_id", expenseID),
		slog.String("target_status", string(target)),
		slog.String("actor_id", actor.UserID),
	}

	if _, err := uuid.Parse(expenseID); err != nil {
		return nil, workflow.NewNotFound(expenseID, apperrors.ErrNotFound)
	}
	if !target.IsValid() {
		return nil, &workflow.TransitionError{
			Kind:    workflow.KindInvalidTransition,
			Field:   "target_status",
			Message: fmt.Sprintf("unknown target status %q", target),
		}
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	uow, err := s.store.BeginUnitOfWork(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin unit of work", logAttrs...)
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer func() {
		// Rollback must run even when ctx has expired.
		if rbErr := uow.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back unit of work", logAttrs...)
		}
	}()

	current, err := uow.GetExpenseForUpdate(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, workflow.NewNotFound(expenseID, err)
		}
		s.LogError(ctx, err, "Failed to load expense for transition", logAttrs...)
		return nil, fmt.Errorf("failed to load expense %s: %w", expenseID, err)
	}
	logAttrs = append(logAttrs, slog.String("from_status", string(current.Status)))

	if err := workflow.CheckTransition(current.Status, target, current.Amount, reason, s.threshold); err != nil {
		s.LogWarn(ctx, "Transition refused", append(logAttrs, slog.String("error", err.Error()))...)
		return nil, err
	}
	if err := workflow.Authorize(ctx, *current, target, actor, s.roles); err != nil {
		if _, ok := workflow.AsTransitionError(err); ok {
			s.LogWarn(ctx, "Transition not authorized", append(logAttrs, slog.String("error", err.Error()))...)
		} else {
			s.LogError(ctx, err, "Failed to authorize transition", logAttrs...)
		}
		return nil, err
	}

	now := s.CurrentTime()
	next := *current
	next.Status = target
	switch target {
	case domain.StatusRejected:
		next.RejectionReason = reason
	case domain.StatusSubmitted:
		next.RejectionReason = ""
	}
	next.LastUpdatedAt = now
	next.LastUpdatedBy = actor.UserID
	next.Version = current.Version + 1

	if err := uow.SaveExpense(ctx, next); err != nil {
		return nil, s.storeFailure(ctx, expenseID, "Failed to save expense", err, logAttrs)
	}

	entry := domain.AuditEntry{
		AuditEntryID: uuid.NewString(),
		ExpenseID:    expenseID,
		FromStatus:   current.Status,
		ToStatus:     target,
		Action:       domain.ActionTransition,
		ActorID:      actor.UserID,
		Reason:       reason,
		CreatedAt:    now,
	}
	if err := uow.AppendAuditEntry(ctx, entry); err != nil {
		return nil, s.storeFailure(ctx, expenseID, "Failed to append audit entry", err, logAttrs)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, s.storeFailure(ctx, expenseID, "Failed to commit transition", err, logAttrs)
	}

	s.LogInfo(ctx, "Expense transitioned", logAttrs...)
	return &next, nil
}

// storeFailure maps store errors raised after validation to the error contract.
func (s *transitionService) storeFailure(ctx context.Context, expenseID, msg string, err error, logAttrs []any) error {
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		s.LogWarn(ctx, "Transition lost a concurrent update", append(logAttrs, slog.String("error", err.Error()))...)
		return workflow.NewConflict(expenseID, err)
	case errors.Is(err, apperrors.ErrNotFound):
		return workflow.NewNotFound(expenseID, err)
	}
	s.LogError(ctx, err, msg, logAttrs...)
	return fmt.Errorf("transition of expense %s failed: %w", expenseID, err)
}
