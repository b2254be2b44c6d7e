package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/expense_workflow_app/internal/core/services"
	"github.com/SscSPs/expense_workflow_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExpenseRepository
	mockUoW  *MockUnitOfWork
	service  portssvc.ExpenseSvcFacade
	now      time.Time
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExpenseRepository)
	suite.mockUoW = new(MockUnitOfWork)
	suite.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewExpenseService(suite.mockRepo,
		services.WithExpenseClock(func() time.Time { return suite.now }))
}

func (suite *ExpenseServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockUoW.AssertExpectations(suite.T())
}

func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (suite *ExpenseServiceTestSuite) storedExpense(status domain.ExpenseStatus) *domain.Expense {
	return &domain.Expense{
		ExpenseID:   uuid.NewString(),
		Title:       "Hotel",
		Amount:      decimal.RequireFromString("300.00"),
		Status:      status,
		SubmitterID: "alice",
		AuditFields: domain.AuditFields{Version: 4},
	}
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	req := dto.CreateExpenseRequest{Title: "  Hotel  ", Amount: decimal.RequireFromString("300.50")}
	suite.mockRepo.On("CreateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		_, err := uuid.Parse(e.ExpenseID)
		return err == nil &&
			e.Title == "Hotel" &&
			e.Status == domain.StatusDraft &&
			e.SubmitterID == "alice" &&
			e.CreatedBy == "alice" &&
			e.Version == 1 &&
			e.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()

	got, err := suite.service.CreateExpense(context.Background(), req, "alice")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, got.Status)
	suite.True(got.Amount.Equal(req.Amount))
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RejectsBadAmounts() {
	for _, amount := range []string{"0", "-5.00", "10.005"} {
		_, err := suite.service.CreateExpense(context.Background(), dto.CreateExpenseRequest{
			Title:  "Hotel",
			Amount: decimal.RequireFromString(amount),
		}, "alice")
		suite.ErrorIs(err, apperrors.ErrValidation, amount)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestGetExpense_NotFound() {
	id := uuid.NewString()
	suite.mockRepo.On("FindExpenseByID", mock.Anything, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetExpense(context.Background(), id)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetExpense(context.Background(), "42")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_MineAndStatus() {
	token := "abc"
	next := "def"
	expected := domain.ExpenseFilter{Status: domain.StatusSubmitted, SubmitterID: "alice"}
	suite.mockRepo.On("ListExpenses", mock.Anything, expected, 20, &token).
		Return([]domain.Expense{*suite.storedExpense(domain.StatusSubmitted)}, &next, nil).Once()

	got, nextToken, err := suite.service.ListExpenses(context.Background(), dto.ListExpensesParams{
		Limit: 20, NextToken: token, Status: "Submitted", Mine: true,
	}, "alice")

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Equal(&next, nextToken)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_EmptyIsNotNil() {
	suite.mockRepo.On("ListExpenses", mock.Anything, domain.ExpenseFilter{}, 100, (*string)(nil)).Return(nil, nil, nil).Once()

	got, next, err := suite.service.ListExpenses(context.Background(), dto.ListExpensesParams{Limit: 500}, "alice")

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
	suite.Nil(next)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_Success() {
	current := suite.storedExpense(domain.StatusSubmitted)
	title := "Hotel, two nights"
	amount := decimal.RequireFromString("600.00")

	suite.mockRepo.On("BeginUnitOfWork", mock.Anything).Return(suite.mockUoW, nil).Once()
	suite.mockUoW.On("Rollback", mock.Anything).Return(nil).Once()
	suite.mockUoW.On("GetExpenseForUpdate", mock.Anything, current.ExpenseID).Return(current, nil).Once()
	suite.mockUoW.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Title == title && e.Amount.Equal(amount) && e.Version == 5 && e.Status == domain.StatusSubmitted
	})).Return(nil).Once()
	suite.mockUoW.On("Commit", mock.Anything).Return(nil).Once()

	got, err := suite.service.UpdateExpense(context.Background(), current.ExpenseID, dto.UpdateExpenseRequest{Title: &title, Amount: &amount}, "alice")

	suite.Require().NoError(err)
	suite.Equal(title, got.Title)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_Guards() {
	tests := []struct {
		name   string
		status domain.ExpenseStatus
		userID string
		target error
		msg    string
	}{
		{"approved", domain.StatusManagerApproved, "alice", apperrors.ErrValidation, "Approved expenses cannot be modified."},
		{"finance approved", domain.StatusFinanceApproved, "alice", apperrors.ErrValidation, "Approved expenses cannot be modified."},
		{"rejected", domain.StatusRejected, "alice", apperrors.ErrValidation, "Rejected expenses must be resubmitted."},
		{"not submitter", domain.StatusDraft, "bob", apperrors.ErrForbidden, "Only the submitter can modify an expense."},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			uow := new(MockUnitOfWork)
			current := suite.storedExpense(tt.status)
			suite.mockRepo.On("BeginUnitOfWork", mock.Anything).Return(uow, nil).Once()
			uow.On("Rollback", mock.Anything).Return(nil).Once()
			uow.On("GetExpenseForUpdate", mock.Anything, current.ExpenseID).Return(current, nil).Once()

			title := "New title"
			_, err := suite.service.UpdateExpense(context.Background(), current.ExpenseID, dto.UpdateExpenseRequest{Title: &title}, tt.userID)

			suite.ErrorIs(err, tt.target)
			var appErr *apperrors.AppError
			suite.Require().True(errors.As(err, &appErr))
			suite.Equal(tt.msg, appErr.Message)
			uow.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
			uow.AssertExpectations(suite.T())
		})
	}
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_OnlyDraft() {
	current := suite.storedExpense(domain.StatusSubmitted)
	suite.mockRepo.On("BeginUnitOfWork", mock.Anything).Return(suite.mockUoW, nil).Once()
	suite.mockUoW.On("Rollback", mock.Anything).Return(nil).Once()
	suite.mockUoW.On("GetExpenseForUpdate", mock.Anything, current.ExpenseID).Return(current, nil).Once()

	err := suite.service.DeleteExpense(context.Background(), current.ExpenseID, "alice")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUoW.AssertNotCalled(suite.T(), "DeleteExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_Success() {
	current := suite.storedExpense(domain.StatusDraft)
	suite.mockRepo.On("BeginUnitOfWork", mock.Anything).Return(suite.mockUoW, nil).Once()
	suite.mockUoW.On("Rollback", mock.Anything).Return(nil).Once()
	suite.mockUoW.On("GetExpenseForUpdate", mock.Anything, current.ExpenseID).Return(current, nil).Once()
	suite.mockUoW.On("DeleteExpense", mock.Anything, current.ExpenseID).Return(nil).Once()
	suite.mockUoW.On("Commit", mock.Anything).Return(nil).Once()

	suite.NoError(suite.service.DeleteExpense(context.Background(), current.ExpenseID, "alice"))
}

func (suite *ExpenseServiceTestSuite) TestListExpenseAuditEntries_MissingExpense() {
	id := uuid.NewString()
	suite.mockRepo.On("FindExpenseByID", mock.Anything, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListExpenseAuditEntries(context.Background(), id)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAuditEntriesByExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestListAuditEntries_BadToken() {
	token := "!!"
	suite.mockRepo.On("ListAuditEntries", mock.Anything, 50, &token).
		Return(nil, nil, apperrors.NewValidationError("invalid nextToken")).Once()

	_, _, err := suite.service.ListAuditEntries(context.Background(), dto.ListAuditEntriesParams{Limit: 50, NextToken: token})

	suite.ErrorIs(err, apperrors.ErrValidation)
}
