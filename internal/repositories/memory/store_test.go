package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func seedExpense(t *testing.T, s *Store, createdAt time.Time) domain.Expense {
	t.Helper()
	e := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Title:       "Train",
		Amount:      decimal.RequireFromString("42.00"),
		Status:      domain.StatusDraft,
		SubmitterID: "alice",
		AuditFields: domain.AuditFields{CreatedAt: createdAt, LastUpdatedAt: createdAt, Version: 1},
	}
	require.NoError(t, s.CreateExpense(context.Background(), e))
	return e
}

func TestStore_CreateDuplicate(t *testing.T) {
	s := NewStore(nil)
	e := seedExpense(t, s, base)
	assert.ErrorIs(t, s.CreateExpense(context.Background(), e), apperrors.ErrDuplicate)
}

func TestUnitOfWork_CommitAppliesWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	e := seedExpense(t, s, base)

	uow, err := s.BeginUnitOfWork(ctx)
	require.NoError(t, err)
	current, err := uow.GetExpenseForUpdate(ctx, e.ExpenseID)
	require.NoError(t, err)

	next := *current
	next.Status = domain.StatusSubmitted
	next.Version = 2
	require.NoError(t, uow.SaveExpense(ctx, next))
	require.NoError(t, uow.AppendAuditEntry(ctx, domain.AuditEntry{ExpenseID: e.ExpenseID, FromStatus: domain.StatusDraft, ToStatus: domain.StatusSubmitted}))

	before, err := s.FindExpenseByID(ctx, e.ExpenseID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, before.Status, "staged writes must stay invisible")

	require.NoError(t, uow.Commit(ctx))
	require.NoError(t, uow.Rollback(ctx))

	after, err := s.FindExpenseByID(ctx, e.ExpenseID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, after.Status)

	trail, err := s.ListAuditEntriesByExpense(ctx, e.ExpenseID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, int64(1), trail[0].SequenceNo)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	e := seedExpense(t, s, base)

	uow, err := s.BeginUnitOfWork(ctx)
	require.NoError(t, err)
	current, err := uow.GetExpenseForUpdate(ctx, e.ExpenseID)
	require.NoError(t, err)
	next := *current
	next.Status = domain.StatusSubmitted
	next.Version = 2
	require.NoError(t, uow.SaveExpense(ctx, next))
	require.NoError(t, uow.AppendAuditEntry(ctx, domain.AuditEntry{ExpenseID: e.ExpenseID}))
	require.NoError(t, uow.Rollback(ctx))

	after, err := s.FindExpenseByID(ctx, e.ExpenseID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, after.Status)
	trail, err := s.ListAuditEntriesByExpense(ctx, e.ExpenseID)
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestUnitOfWork_SaveRequiresNextVersion(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	e := seedExpense(t, s, base)

	uow, err := s.BeginUnitOfWork(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	current, err := uow.GetExpenseForUpdate(ctx, e.ExpenseID)
	require.NoError(t, err)
	stale := *current
	stale.Version = 5
	assert.ErrorIs(t, uow.SaveExpense(ctx, stale), apperrors.ErrConflict)
}

func TestUnitOfWork_LockWaitHonoursDeadline(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	e := seedExpense(t, s, base)

	holder, err := s.BeginUnitOfWork(ctx)
	require.NoError(t, err)
	_, err = holder.GetExpenseForUpdate(ctx, e.ExpenseID)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	waiter, err := s.BeginUnitOfWork(waitCtx)
	require.NoError(t, err)
	_, err = waiter.GetExpenseForUpdate(waitCtx, e.ExpenseID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.NoError(t, waiter.Rollback(ctx))

	// A different expense is not blocked by the held lock.
	other := seedExpense(t, s, base)
	independent, err := s.BeginUnitOfWork(ctx)
	require.NoError(t, err)
	_, err = independent.GetExpenseForUpdate(ctx, other.ExpenseID)
	assert.NoError(t, err)
	require.NoError(t, independent.Rollback(ctx))

	require.NoError(t, holder.Rollback(ctx))

	again, err := s.BeginUnitOfWork(ctx)
	require.NoError(t, err)
	_, err = again.GetExpenseForUpdate(ctx, e.ExpenseID)
	assert.NoError(t, err, "lock must be released by rollback")
	require.NoError(t, again.Rollback(ctx))
}

func TestUnitOfWork_DeleteCascadesAudit(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	e := seedExpense(t, s, base)
	keep := seedExpense(t, s, base.Add(time.Minute))

	for _, id := range []string{e.ExpenseID, keep.ExpenseID} {
		uow, err := s.BeginUnitOfWork(ctx)
		require.NoError(t, err)
		_, err = uow.GetExpenseForUpdate(ctx, id)
		require.NoError(t, err)
		require.NoError(t, uow.AppendAuditEntry(ctx, domain.AuditEntry{ExpenseID: id}))
		require.NoError(t, uow.Commit(ctx))
	}

	uow, err := s.BeginUnitOfWork(ctx)
	require.NoError(t, err)
	_, err = uow.GetExpenseForUpdate(ctx, e.ExpenseID)
	require.NoError(t, err)
	require.NoError(t, uow.DeleteExpense(ctx, e.ExpenseID))
	require.NoError(t, uow.Commit(ctx))

	_, err = s.FindExpenseByID(ctx, e.ExpenseID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, _, err := s.ListAuditEntries(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ExpenseID, all[0].ExpenseID)
}

func TestStore_ListExpensesPaginates(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, seedExpense(t, s, base.Add(time.Duration(i)*time.Minute)).ExpenseID)
	}

	var seen []string
	var token *string
	for page := 0; page < 3; page++ {
		got, next, err := s.ListExpenses(ctx, domain.ExpenseFilter{}, 2, token)
		require.NoError(t, err)
		for _, e := range got {
			seen = append(seen, e.ExpenseID)
		}
		token = next
		if next == nil {
			break
		}
	}

	require.Len(t, seen, 5)
	for i, id := range seen {
		assert.Equal(t, ids[len(ids)-1-i], id, fmt.Sprintf("position %d", i))
	}

	bad := "not-base64!"
	_, _, err := s.ListExpenses(ctx, domain.ExpenseFilter{}, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStore_Roles(t *testing.T) {
	ctx := context.Background()
	s := NewStore(map[string][]domain.Role{"mallory": {domain.RoleManager}})

	ok, err := s.HasRole(ctx, "mallory", domain.RoleManager)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.HasRole(ctx, "mallory", domain.RoleFinance)
	assert.False(t, ok)

	require.NoError(t, s.GrantRole(ctx, "mallory", domain.RoleFinance))
	ok, _ = s.HasRole(ctx, "mallory", domain.RoleFinance)
	assert.True(t, ok)
}
