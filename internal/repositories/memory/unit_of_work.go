package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
)

// unitOfWork stages writes locally and applies them to the store on Commit.
// Expense locks acquired by GetExpenseForUpdate are released when the unit ends.
type unitOfWork struct {
	store   *Store
	held    map[string]chan struct{}
	saves   map[string]domain.Expense
	deletes map[string]struct{}
	entries []domain.AuditEntry
	done    bool
}

func (u *unitOfWork) GetExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if u.done {
		return nil, fmt.Errorf("unit of work already finished")
	}
	if _, ok := u.held[expenseID]; !ok {
		lock := u.store.lockFor(expenseID)
		select {
		case lock <- struct{}{}:
			u.held[expenseID] = lock
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock on expense %s: %w", expenseID, ctx.Err())
		}
	}

	if staged, ok := u.saves[expenseID]; ok {
		return &staged, nil
	}
	return u.store.FindExpenseByID(ctx, expenseID)
}

func (u *unitOfWork) SaveExpense(ctx context.Context, expense domain.Expense) error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	current, err := u.current(expense.ExpenseID)
	if err != nil {
		return err
	}
	if current.Version != expense.Version-1 {
		return fmt.Errorf("expense %s at version %d: %w", expense.ExpenseID, expense.Version-1, apperrors.ErrConflict)
	}
	u.saves[expense.ExpenseID] = expense
	return nil
}

func (u *unitOfWork) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	if _, err := u.current(entry.ExpenseID); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	u.entries = append(u.entries, entry)
	return nil
}

func (u *unitOfWork) DeleteExpense(ctx context.Context, expenseID string) error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	if _, err := u.current(expenseID); err != nil {
		return err
	}
	delete(u.saves, expenseID)
	u.deletes[expenseID] = struct{}{}
	return nil
}

// current returns the expense as this unit sees it, staged writes included.
func (u *unitOfWork) current(expenseID string) (domain.Expense, error) {
	if _, gone := u.deletes[expenseID]; gone {
		return domain.Expense{}, apperrors.ErrNotFound
	}
	if staged, ok := u.saves[expenseID]; ok {
		return staged, nil
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	e, ok := u.store.expenses[expenseID]
	if !ok {
		return domain.Expense{}, apperrors.ErrNotFound
	}
	return e, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	defer u.release()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit aborted: %w", err)
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range u.saves {
		stored, ok := s.expenses[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		if stored.Version != e.Version-1 {
			return fmt.Errorf("expense %s at version %d: %w", id, e.Version-1, apperrors.ErrConflict)
		}
	}

	for id, e := range u.saves {
		s.expenses[id] = e
	}
	for _, entry := range u.entries {
		if _, gone := u.deletes[entry.ExpenseID]; gone {
			continue
		}
		s.seq++
		entry.SequenceNo = s.seq
		s.audit = append(s.audit, entry)
	}
	if len(u.deletes) > 0 {
		kept := s.audit[:0]
		for _, a := range s.audit {
			if _, gone := u.deletes[a.ExpenseID]; !gone {
				kept = append(kept, a)
			}
		}
		s.audit = kept
		for id := range u.deletes {
			delete(s.expenses, id)
		}
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.release()
	return nil
}

func (u *unitOfWork) release() {
	u.done = true
	for id, lock := range u.held {
		<-lock
		delete(u.held, id)
	}
}
