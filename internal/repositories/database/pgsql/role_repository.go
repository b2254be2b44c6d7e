package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRoleRepository reads group memberships from the user_roles table.
type PgxRoleRepository struct {
	BaseRepository
}

func newPgxRoleRepository(pool *pgxpool.Pool) *PgxRoleRepository {
	return &PgxRoleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

// HasRole reports whether userID belongs to role.
func (r *PgxRoleRepository) HasRole(ctx context.Context, userID string, role domain.Role) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, string(role)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role %s for user %s: %w", role, userID, err)
	}
	return exists, nil
}

// GrantRole adds userID to role. Granting an existing membership is a no-op.
func (r *PgxRoleRepository) GrantRole(ctx context.Context, userID string, role domain.Role) error {
	query := `INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT (user_id, role) DO NOTHING;`
	if _, err := r.Pool.Exec(ctx, query, userID, string(role)); err != nil {
		return fmt.Errorf("failed to grant role %s to user %s: %w", role, userID, err)
	}
	return nil
}
