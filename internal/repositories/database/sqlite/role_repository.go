package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
)

// SQLiteRoleRepository reads and writes the user_roles table.
type SQLiteRoleRepository struct {
	BaseRepository
}

var _ portsrepo.RoleRepositoryFacade = (*SQLiteRoleRepository)(nil)

func (r *SQLiteRoleRepository) HasRole(ctx context.Context, userID string, role domain.Role) (bool, error) {
	var exists bool
	err := r.ReadDB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = ? AND role = ?);`,
		userID, string(role),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check role %s for user %s: %w", role, userID, err)
	}
	return exists, nil
}

func (r *SQLiteRoleRepository) GrantRole(ctx context.Context, userID string, role domain.Role) error {
	_, err := r.WriteDB.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES (?, ?) ON CONFLICT (user_id, role) DO NOTHING;`,
		userID, string(role),
	)
	if err != nil {
		return fmt.Errorf("failed to grant role %s to user %s: %w", role, userID, err)
	}
	return nil
}
