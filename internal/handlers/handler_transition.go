package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/SscSPs/expense_workflow_app/internal/dto"
	"github.com/SscSPs/expense_workflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transitionExpense godoc
// @Summary Move an expense to a new status
// @Description Applies one workflow transition and records it in the audit trail.
// @Description Rejections require a reason. Finance approval applies only at or above the configured threshold.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Expense ID"
// @Param   transition body dto.TransitionRequest true "Target status and optional reason"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Actor lacks the required role"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent modification"
// @Failure 422 {object} dto.ErrorResponse "Transition not allowed"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 504 {object} dto.ErrorResponse "Timed out waiting for the expense"
// @Security BearerAuth
// @Router /expenses/{id}/transition [post]
func (h *expenseHandler) transitionExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Field: "target_status"})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// Binding already checked the status name.
	target, _ := domain.ParseExpenseStatus(req.TargetStatus)

	expense, err := h.transitionService.ApplyTransition(c.Request.Context(), c.Param("id"), target, domain.Actor{UserID: userID}, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to apply transition")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
