package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/SscSPs/expense_workflow_app/internal/platform/config"
	"github.com/spf13/cobra"
)

func newGrantRoleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "grant-role <user-id> <manager|finance>",
		Short: "Add a user to the manager or finance group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.grantRole(cmd.Context(), args[0], args[1])
		},
	}
}

func (a *app) grantRole(ctx context.Context, userID, rawRole string) error {
	role := domain.Role(strings.ToLower(strings.TrimSpace(rawRole)))
	if role != domain.RoleManager && role != domain.RoleFinance {
		return fmt.Errorf("unknown role %q (want %s or %s)", rawRole, domain.RoleManager, domain.RoleFinance)
	}
	if a.cfg.StoreDriver == config.StoreDriverMemory {
		return fmt.Errorf("grant-role needs a persistent store; use STATIC_ROLES with the memory store")
	}

	repos, closeStore, err := a.openStore(ctx, a.cfg.RunMigrations)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := repos.RoleRepo.GrantRole(ctx, userID, role); err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}
	a.logger.Info("Role granted", slog.String("user_id", userID), slog.String("role", string(role)))
	return nil
}
