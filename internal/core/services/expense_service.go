package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/expense_workflow_app/internal/dto"
	"github.com/SscSPs/expense_workflow_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// ExpenseOption is a functional option for configuring the expense service
type ExpenseOption func(*expenseService)

// WithExpenseClock replaces the clock used for timestamps
func WithExpenseClock(now func() time.Time) ExpenseOption {
	return func(s *expenseService) {
		s.Now = now
	}
}

// NewExpenseService creates the service handling expense CRUD and audit reads.
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade, options ...ExpenseOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{expenseRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("Amount must be greater than zero.")
	}
	if !amount.Equal(amount.Round(2)) {
		return apperrors.NewValidationError("Amount must have at most two decimal places.")
	}
	return nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Amount:      req.Amount,
		Status:      domain.StatusDraft,
		SubmitterID: userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}
	if err := expense.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.expenseRepo.CreateExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", expense.Amount.StringFixed(2)))
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if err := requireExpenseID(expenseID); err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get expense", slog.String("expense_id", expenseID))
		}
		return nil, fmt.Errorf("failed to get expense %s: %w", expenseID, err)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams, userID string) ([]domain.Expense, *string, error) {
	filter := domain.ExpenseFilter{}
	if params.Status != "" {
		status, err := domain.ParseExpenseStatus(params.Status)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		filter.Status = status
	}
	if params.Mine {
		filter.SubmitterID = userID
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	expenses, next, err := s.expenseRepo.ListExpenses(ctx, filter, pagination.NormalizeLimit(params.Limit), nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list expenses")
		}
		return nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, next, nil
}

// UpdateExpense edits an expense under its lock. Only the submitter may edit,
// and only while the expense is Draft or Submitted.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	if err := requireExpenseID(expenseID); err != nil {
		return nil, err
	}

	uow, err := s.expenseRepo.BeginUnitOfWork(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(context.WithoutCancel(ctx)) }()

	current, err := uow.GetExpenseForUpdate(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense %s: %w", expenseID, err)
	}
	if current.SubmitterID != userID {
		return nil, apperrors.NewAppError(403, "Only the submitter can modify an expense.", apperrors.ErrForbidden)
	}
	if !current.IsEditable() {
		return nil, apperrors.NewValidationError(current.EditBlockedReason())
	}

	next := *current
	if req.Title != nil {
		next.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			return nil, err
		}
		next.Amount = *req.Amount
	}
	if err := next.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	next.LastUpdatedAt = s.CurrentTime()
	next.LastUpdatedBy = userID
	next.Version = current.Version + 1

	if err := uow.SaveExpense(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	if err := uow.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to commit expense update", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return &next, nil
}

// DeleteExpense removes a Draft expense. Its audit trail goes with it.
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, userID string) error {
	if err := requireExpenseID(expenseID); err != nil {
		return err
	}

	uow, err := s.expenseRepo.BeginUnitOfWork(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer func() { _ = uow.Rollback(context.WithoutCancel(ctx)) }()

	current, err := uow.GetExpenseForUpdate(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("failed to load expense %s: %w", expenseID, err)
	}
	if current.SubmitterID != userID {
		return apperrors.NewAppError(403, "Only the submitter can delete an expense.", apperrors.ErrForbidden)
	}
	if current.Status != domain.StatusDraft {
		return apperrors.NewValidationError("Only draft expenses can be deleted.")
	}

	if err := uow.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if err := uow.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to commit expense delete", slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}

	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) ListExpenseAuditEntries(ctx context.Context, expenseID string) ([]domain.AuditEntry, error) {
	if _, err := s.GetExpense(ctx, expenseID); err != nil {
		return nil, err
	}
	entries, err := s.expenseRepo.ListAuditEntriesByExpense(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to list audit entries for expense %s: %w", expenseID, err)
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, nil
}

func (s *expenseService) ListAuditEntries(ctx context.Context, params dto.ListAuditEntriesParams) ([]domain.AuditEntry, *string, error) {
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}
	entries, next, err := s.expenseRepo.ListAuditEntries(ctx, pagination.NormalizeLimit(params.Limit), nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list audit entries")
		}
		return nil, nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, next, nil
}
