// Package memory provides an in-process store for development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_workflow_app/internal/utils/pagination"
)

// Store keeps expenses, the audit trail and role memberships in memory. Each
// expense has its own lock, so units of work on different expenses never
// wait for each other.
type Store struct {
	mu       sync.Mutex
	expenses map[string]domain.Expense
	audit    []domain.AuditEntry
	seq      int64
	locks    map[string]chan struct{}
	roles    map[string]map[domain.Role]struct{}
}

var (
	_ portsrepo.ExpenseRepositoryFacade = (*Store)(nil)
	_ portsrepo.RoleRepositoryFacade    = (*Store)(nil)
)

// NewStore creates an empty store seeded with the given role memberships.
func NewStore(roles map[string][]domain.Role) *Store {
	s := &Store{
		expenses: make(map[string]domain.Expense),
		locks:    make(map[string]chan struct{}),
		roles:    make(map[string]map[domain.Role]struct{}),
	}
	for userID, rs := range roles {
		for _, r := range rs {
			s.grant(userID, r)
		}
	}
	return s
}

// NewRepositoryProvider wires one Store into every repository slot.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExpenseRepo: store,
		RoleRepo:    store,
	}
}

func (s *Store) lockFor(expenseID string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.locks[expenseID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[expenseID] = ch
	}
	return ch
}

func (s *Store) CreateExpense(ctx context.Context, expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.expenses[expense.ExpenseID]; exists {
		return fmt.Errorf("expense %s: %w", expense.ExpenseID, apperrors.ErrDuplicate)
	}
	s.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *Store) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	var (
		hasCursor bool
		cursorAt  time.Time
		cursorID  string
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		hasCursor, cursorAt, cursorID = true, at, id
	}

	s.mu.Lock()
	all := make([]domain.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if filter.Matches(e) {
			all = append(all, e)
		}
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ExpenseID > all[j].ExpenseID
	})

	out := make([]domain.Expense, 0, limit)
	for _, e := range all {
		if hasCursor && !pastCursor(e, cursorAt, cursorID) {
			continue
		}
		out = append(out, e)
		if len(out) > limit {
			break
		}
	}

	var next *string
	if len(out) > limit {
		out = out[:limit]
		last := out[len(out)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExpenseID)
		next = &token
	}
	return out, next, nil
}

// pastCursor reports whether e comes after the cursor in newest-first order.
func pastCursor(e domain.Expense, at time.Time, id string) bool {
	if e.CreatedAt.Equal(at) {
		return e.ExpenseID < id
	}
	return e.CreatedAt.Before(at)
}

func (s *Store) ListAuditEntriesByExpense(ctx context.Context, expenseID string) ([]domain.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEntry, 0)
	for _, a := range s.audit {
		if a.ExpenseID == expenseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) ListAuditEntries(ctx context.Context, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	var after int64
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = seq
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEntry, 0, limit)
	for _, a := range s.audit {
		if a.SequenceNo <= after {
			continue
		}
		out = append(out, a)
		if len(out) > limit {
			break
		}
	}

	var next *string
	if len(out) > limit {
		out = out[:limit]
		token := pagination.EncodeSequenceToken(out[len(out)-1].SequenceNo)
		next = &token
	}
	return out, next, nil
}

func (s *Store) HasRole(ctx context.Context, userID string, role domain.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.roles[userID][role]
	return ok, nil
}

func (s *Store) GrantRole(ctx context.Context, userID string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grant(userID, role)
	return nil
}

func (s *Store) grant(userID string, role domain.Role) {
	if s.roles[userID] == nil {
		s.roles[userID] = make(map[domain.Role]struct{})
	}
	s.roles[userID][role] = struct{}{}
}

// BeginUnitOfWork starts a unit whose writes are staged until Commit.
func (s *Store) BeginUnitOfWork(ctx context.Context) (portsrepo.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &unitOfWork{
		store:   s,
		held:    make(map[string]chan struct{}),
		saves:   make(map[string]domain.Expense),
		deletes: make(map[string]struct{}),
	}, nil
}
