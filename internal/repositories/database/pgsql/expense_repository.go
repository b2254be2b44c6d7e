package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_workflow_app/internal/models"
	"github.com/SscSPs/expense_workflow_app/internal/utils/mapping"
	"github.com/SscSPs/expense_workflow_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, title, description, amount, status, rejection_reason, submitter_id,
	created_at, created_by, last_updated_at, last_updated_by, version`

const auditEntryColumns = `audit_entry_id, sequence_no, expense_id, from_status, to_status, action, actor_id, reason, created_at`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row rowScanner) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Title,
		&m.Description,
		&m.Amount,
		&m.Status,
		&m.RejectionReason,
		&m.SubmitterID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func scanAuditEntry(row rowScanner) (models.AuditEntry, error) {
	var m models.AuditEntry
	err := row.Scan(
		&m.AuditEntryID,
		&m.SequenceNo,
		&m.ExpenseID,
		&m.FromStatus,
		&m.ToStatus,
		&m.Action,
		&m.ActorID,
		&m.Reason,
		&m.CreatedAt,
	)
	return m, err
}

// CreateExpense inserts a new expense row.
func (r *PgxExpenseRepository) CreateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.Title,
		m.Description,
		m.Amount,
		m.Status,
		m.RejectionReason,
		m.SubmitterID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("expense %s: %w", m.ExpenseID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense without taking a lock.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// ListExpenses returns expenses newest first, keyed on (created_at, expense_id).
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := make([]any, 0, 5)

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SubmitterID != "" {
		args = append(args, filter.SubmitterID)
		query += fmt.Sprintf(" AND submitter_id = $%d", len(args))
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, createdAt, id)
		query += fmt.Sprintf(" AND (created_at, expense_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, expense_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan expenses: %w", err)
	}

	var next *string
	if len(modelExpenses) > limit {
		modelExpenses = modelExpenses[:limit]
		last := modelExpenses[len(modelExpenses)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExpenseID)
		next = &token
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), next, nil
}

// ListAuditEntriesByExpense returns the trail of one expense in append order.
func (r *PgxExpenseRepository) ListAuditEntriesByExpense(ctx context.Context, expenseID string) ([]domain.AuditEntry, error) {
	query := `SELECT ` + auditEntryColumns + ` FROM audit_entries WHERE expense_id = $1 ORDER BY sequence_no ASC;`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditEntry, error) {
		return scanAuditEntry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit entries: %w", err)
	}
	return mapping.ToDomainAuditEntrySlice(entries), nil
}

// ListAuditEntries returns a page of the global trail in append order.
func (r *PgxExpenseRepository) ListAuditEntries(ctx context.Context, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	var after int64
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = seq
	}

	query := `SELECT ` + auditEntryColumns + ` FROM audit_entries WHERE sequence_no > $1 ORDER BY sequence_no ASC LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, after, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditEntry, error) {
		return scanAuditEntry(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan audit entries: %w", err)
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeSequenceToken(entries[len(entries)-1].SequenceNo)
		next = &token
	}
	return mapping.ToDomainAuditEntrySlice(entries), next, nil
}

// BeginUnitOfWork opens a transaction scoped unit of work.
func (r *PgxExpenseRepository) BeginUnitOfWork(ctx context.Context) (portsrepo.UnitOfWork, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxUnitOfWork{base: &r.BaseRepository, tx: tx}, nil
}
