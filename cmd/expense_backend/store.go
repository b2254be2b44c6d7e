package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_workflow_app/internal/platform/config"
	"github.com/SscSPs/expense_workflow_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_workflow_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/expense_workflow_app/internal/repositories/memory"
	"github.com/SscSPs/expense_workflow_app/pkg/database"
)

// openStore builds the repositories for the configured driver, running
// migrations first when enabled. The returned func releases connections.
func (a *app) openStore(ctx context.Context, runMigrations bool) (portsrepo.RepositoryProvider, func(), error) {
	switch a.cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if runMigrations {
			a.logger.Info("Running database migrations...")
			if err := database.RunPostgresMigrations(a.cfg.DatabaseURL, a.logger); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, a.cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.StoreDriverSQLite:
		writeDB, readDB, err := database.OpenSQLitePair(a.cfg.SQLitePath, 0)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		closeAll := func() {
			_ = readDB.Close()
			_ = writeDB.Close()
		}
		if runMigrations {
			a.logger.Info("Running database migrations...", slog.String("path", a.cfg.SQLitePath))
			if err := database.RunSQLiteMigrations(writeDB); err != nil {
				closeAll()
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		return sqlite.NewRepositoryProvider(writeDB, readDB), closeAll, nil

	default:
		a.logger.Warn("Using in-memory store; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore(a.cfg.StaticRoles)), func() {}, nil
	}
}

// seedStaticRoles grants STATIC_ROLES memberships in database-backed stores.
func (a *app) seedStaticRoles(ctx context.Context, roles portsrepo.RoleWriter) error {
	if a.cfg.StoreDriver == config.StoreDriverMemory {
		return nil
	}
	for userID, userRoles := range a.cfg.StaticRoles {
		for _, role := range userRoles {
			if err := roles.GrantRole(ctx, userID, role); err != nil {
				return fmt.Errorf("failed to seed role %s for %s: %w", role, userID, err)
			}
		}
	}
	return nil
}

func (a *app) migrate(ctx context.Context) error {
	if a.cfg.StoreDriver == config.StoreDriverMemory {
		a.logger.Info("Memory store has no migrations")
		return nil
	}
	_, closeStore, err := a.openStore(ctx, true)
	if err != nil {
		return err
	}
	closeStore()
	return nil
}
