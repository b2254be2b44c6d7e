package pgsql

import (
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	expenseRepo := newPgxExpenseRepository(dbPool)
	roleRepo := newPgxRoleRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ExpenseRepo: expenseRepo,
		RoleRepo:    roleRepo,
	}
}
