package services

import (
	portsrepo "github.com/SscSPs/expense_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/expense_workflow_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Expense: NewExpenseService(repos.ExpenseRepo),
		Transition: NewTransitionService(
			repos.ExpenseRepo,
			repos.RoleRepo,
			WithFinanceApprovalThreshold(cfg.FinanceApprovalThreshold),
			WithTransitionTimeout(cfg.TransitionTimeout),
		),
	}
}
