package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_workflow_app/internal/models"
	"github.com/SscSPs/expense_workflow_app/internal/utils/mapping"
	"github.com/SscSPs/expense_workflow_app/internal/utils/pagination"
	sqlite3 "github.com/mattn/go-sqlite3"
)

const expenseColumns = `expense_id, title, description, amount, status, rejection_reason, submitter_id,
	created_at, created_by, last_updated_at, last_updated_by, version`

const auditEntryColumns = `audit_entry_id, sequence_no, expense_id, from_status, to_status, action, actor_id, reason, created_at`

// SQLiteExpenseRepository stores expenses and their audit trail in SQLite.
type SQLiteExpenseRepository struct {
	BaseRepository
}

var _ portsrepo.ExpenseRepositoryFacade = (*SQLiteExpenseRepository)(nil)

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

func (r *SQLiteExpenseRepository) CreateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.WriteDB.ExecContext(ctx, query,
		m.ExpenseID,
		m.Title,
		m.Description,
		m.Amount.StringFixed(2),
		string(m.Status),
		m.RejectionReason,
		m.SubmitterID,
		m.CreatedAt.UTC(),
		m.CreatedBy,
		m.LastUpdatedAt.UTC(),
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("expense %s: %w", m.ExpenseID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

func (r *SQLiteExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = ?;`
	m, err := scanExpense(r.ReadDB.QueryRowContext(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

func (r *SQLiteExpenseRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	var (
		conds = []string{"1=1"}
		args  []any
	)
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.SubmitterID != "" {
		conds = append(conds, "submitter_id = ?")
		args = append(args, filter.SubmitterID)
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		conds = append(conds, "(created_at, expense_id) < (?, ?)")
		args = append(args, createdAt.UTC(), id)
	}
	args = append(args, limit+1)

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC, expense_id DESC LIMIT ?;`

	rows, err := r.ReadDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var out []models.Expense
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	var next *string
	if len(out) > limit {
		out = out[:limit]
		last := out[len(out)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExpenseID)
		next = &token
	}
	return mapping.ToDomainExpenseSlice(out), next, nil
}

func (r *SQLiteExpenseRepository) ListAuditEntriesByExpense(ctx context.Context, expenseID string) ([]domain.AuditEntry, error) {
	query := `SELECT ` + auditEntryColumns + ` FROM audit_entries WHERE expense_id = ? ORDER BY sequence_no ASC;`
	return r.queryAuditEntries(ctx, query, expenseID)
}

func (r *SQLiteExpenseRepository) ListAuditEntries(ctx context.Context, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	var after int64
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = seq
	}

	query := `SELECT ` + auditEntryColumns + ` FROM audit_entries WHERE sequence_no > ? ORDER BY sequence_no ASC LIMIT ?;`
	entries, err := r.queryAuditEntries(ctx, query, after, limit+1)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeSequenceToken(entries[len(entries)-1].SequenceNo)
		next = &token
	}
	return entries, next, nil
}

func (r *SQLiteExpenseRepository) queryAuditEntries(ctx context.Context, query string, args ...any) ([]domain.AuditEntry, error) {
	rows, err := r.ReadDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var out []models.AuditEntry
	for rows.Next() {
		m, err := scanAuditEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}
	return mapping.ToDomainAuditEntrySlice(out), nil
}

// BeginUnitOfWork opens an immediate transaction on the write connection. The
// write lock it takes serializes every unit of work in the store.
func (r *SQLiteExpenseRepository) BeginUnitOfWork(ctx context.Context) (portsrepo.UnitOfWork, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &sqliteUnitOfWork{base: &r.BaseRepository, tx: tx}, nil
}
