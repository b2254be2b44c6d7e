package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/expense_workflow_app/internal/core/services"
	"github.com/SscSPs/expense_workflow_app/internal/core/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransitionServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockExpenseRepository
	mockUoW   *MockUnitOfWork
	mockRoles *MockRoleResolver
	service   portssvc.TransitionSvc
	now       time.Time
	expense   domain.Expense
}

func (suite *TransitionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExpenseRepository)
	suite.mockUoW = new(MockUnitOfWork)
	suite.mockRoles = new(MockRoleResolver)
	suite.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewTransitionService(suite.mockRepo, suite.mockRoles,
		services.WithTransitionClock(func() time.Time { return suite.now }),
		services.WithTransitionTimeout(time.Second))

	created := suite.now.Add(-time.Hour)
	suite.expense = domain.Expense{
		ExpenseID:   uuid.NewString(),
		Title:       "Conference ticket",
		Amount:      decimal.RequireFromString("2500.00"),
		Status:      domain.StatusSubmitted,
		SubmitterID: "alice",
		AuditFields: domain.AuditFields{
			CreatedAt: created, CreatedBy: "alice",
			LastUpdatedAt: created, LastUpdatedBy: "alice",
			Version: 2,
		},
	}
}

func (suite *TransitionServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockUoW.AssertExpectations(suite.T())
	suite.mockRoles.AssertExpectations(suite.T())
}

func TestTransitionService(t *testing.T) {
	suite.Run(t, new(TransitionServiceTestSuite))
}

func (suite *TransitionServiceTestSuite) openUnit() {
	suite.mockRepo.On("BeginUnitOfWork", mock.Anything).Return(suite.mockUoW, nil).Once()
	suite.mockUoW.On("Rollback", mock.Anything).Return(nil).Once()
}

func (suite *TransitionServiceTestSuite) loadExpense() {
	current := suite.expense
	suite.mockUoW.On("GetExpenseForUpdate", mock.Anything, suite.expense.ExpenseID).Return(&current, nil).Once()
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_ManagerApproves() {
	suite.openUnit()
	suite.loadExpense()
	suite.mockRoles.On("HasRole", mock.Anything, "mallory", domain.RoleManager).Return(true, nil).Once()
	suite.mockUoW.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusManagerApproved &&
			e.Version == 3 &&
			e.LastUpdatedBy == "mallory" &&
			e.LastUpdatedAt.Equal(suite.now)
	})).Return(nil).Once()
	suite.mockUoW.On("AppendAuditEntry", mock.Anything, mock.MatchedBy(func(a domain.AuditEntry) bool {
		return a.ExpenseID == suite.expense.ExpenseID &&
			a.FromStatus == domain.StatusSubmitted &&
			a.ToStatus == domain.StatusManagerApproved &&
			a.Action == domain.ActionTransition &&
			a.ActorID == "mallory" &&
			a.AuditEntryID != ""
	})).Return(nil).Once()
	suite.mockUoW.On("Commit", mock.Anything).Return(nil).Once()

	got, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusManagerApproved, domain.Actor{UserID: "mallory"}, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusManagerApproved, got.Status)
	suite.Equal(int64(3), got.Version)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_RejectStoresReasonVerbatim() {
	suite.openUnit()
	suite.loadExpense()
	suite.mockRoles.On("HasRole", mock.Anything, "frank", domain.RoleManager).Return(false, nil).Once()
	suite.mockRoles.On("HasRole", mock.Anything, "frank", domain.RoleFinance).Return(true, nil).Once()
	suite.mockUoW.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusRejected && e.RejectionReason == "Missing receipt"
	})).Return(nil).Once()
	suite.mockUoW.On("AppendAuditEntry", mock.Anything, mock.MatchedBy(func(a domain.AuditEntry) bool {
		return a.Reason == "Missing receipt"
	})).Return(nil).Once()
	suite.mockUoW.On("Commit", mock.Anything).Return(nil).Once()

	got, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusRejected, domain.Actor{UserID: "frank"}, "Missing receipt")

	suite.Require().NoError(err)
	suite.Equal("Missing receipt", got.RejectionReason)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_ResubmitClearsReason() {
	suite.expense.Status = domain.StatusRejected
	suite.expense.RejectionReason = "Missing receipt"
	suite.openUnit()
	suite.loadExpense()
	suite.mockUoW.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusSubmitted && e.RejectionReason == ""
	})).Return(nil).Once()
	suite.mockUoW.On("AppendAuditEntry", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockUoW.On("Commit", mock.Anything).Return(nil).Once()

	got, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusSubmitted, domain.Actor{UserID: "alice"}, "")

	suite.Require().NoError(err)
	suite.Empty(got.RejectionReason)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_IllegalPairMutatesNothing() {
	suite.openUnit()
	suite.loadExpense()

	_, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusFinanceApproved, domain.Actor{UserID: "frank"}, "")

	suite.ErrorIs(err, workflow.ErrInvalidTransition)
	suite.mockUoW.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
	suite.mockUoW.AssertNotCalled(suite.T(), "Commit", mock.Anything)
	suite.mockRoles.AssertNotCalled(suite.T(), "HasRole", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_Unauthorized() {
	suite.openUnit()
	suite.loadExpense()
	suite.mockRoles.On("HasRole", mock.Anything, "alice", domain.RoleManager).Return(false, nil).Once()

	_, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusManagerApproved, domain.Actor{UserID: "alice"}, "")

	suite.ErrorIs(err, workflow.ErrUnauthorized)
	te, ok := workflow.AsTransitionError(err)
	suite.Require().True(ok)
	suite.Equal(workflow.GateManager, te.Gate)
	suite.mockUoW.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_NotFound() {
	suite.openUnit()
	suite.mockUoW.On("GetExpenseForUpdate", mock.Anything, suite.expense.ExpenseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusSubmitted, domain.Actor{UserID: "alice"}, "")

	suite.ErrorIs(err, workflow.ErrExpenseNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_MalformedIDIsNotFound() {
	_, err := suite.service.ApplyTransition(context.Background(), "not-a-uuid", domain.StatusSubmitted, domain.Actor{UserID: "alice"}, "")

	suite.ErrorIs(err, workflow.ErrExpenseNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "BeginUnitOfWork", mock.Anything)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_UnknownTarget() {
	_, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.ExpenseStatus("paid"), domain.Actor{UserID: "alice"}, "")

	suite.ErrorIs(err, workflow.ErrInvalidTransition)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_StaleVersionIsConflict() {
	suite.openUnit()
	suite.loadExpense()
	suite.mockRoles.On("HasRole", mock.Anything, "mallory", domain.RoleManager).Return(true, nil).Once()
	suite.mockUoW.On("SaveExpense", mock.Anything, mock.Anything).
		Return(fmt.Errorf("expense changed: %w", apperrors.ErrConflict)).Once()

	_, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusManagerApproved, domain.Actor{UserID: "mallory"}, "")

	suite.ErrorIs(err, workflow.ErrConflict)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockUoW.AssertNotCalled(suite.T(), "Commit", mock.Anything)
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_CommitFailureIsNotATransitionError() {
	suite.openUnit()
	suite.loadExpense()
	suite.mockRoles.On("HasRole", mock.Anything, "mallory", domain.RoleManager).Return(true, nil).Once()
	suite.mockUoW.On("SaveExpense", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockUoW.On("AppendAuditEntry", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockUoW.On("Commit", mock.Anything).Return(errors.New("disk full")).Once()

	_, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusManagerApproved, domain.Actor{UserID: "mallory"}, "")

	suite.Require().Error(err)
	_, ok := workflow.AsTransitionError(err)
	suite.False(ok)
	suite.ErrorContains(err, "disk full")
}

func (suite *TransitionServiceTestSuite) TestApplyTransition_AppliesTimeoutWithoutDeadline() {
	suite.mockRepo.On("BeginUnitOfWork", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(nil, errors.New("stop here")).Once()

	_, err := suite.service.ApplyTransition(context.Background(), suite.expense.ExpenseID, domain.StatusSubmitted, domain.Actor{UserID: "alice"}, "")

	suite.ErrorContains(err, "stop here")
}
