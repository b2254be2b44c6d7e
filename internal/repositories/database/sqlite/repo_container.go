package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(writeDB, readDB *sql.DB) portsrepo.RepositoryProvider {
	base := BaseRepository{WriteDB: writeDB, ReadDB: readDB}

	return portsrepo.RepositoryProvider{
		ExpenseRepo: &SQLiteExpenseRepository{BaseRepository: base},
		RoleRepo:    &SQLiteRoleRepository{BaseRepository: base},
	}
}
