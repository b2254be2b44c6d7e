package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_workflow_app/internal/apperrors"
	"github.com/SscSPs/expense_workflow_app/internal/core/workflow"
	"github.com/SscSPs/expense_workflow_app/internal/dto"
	"github.com/SscSPs/expense_workflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transitionStatus maps refused transitions to HTTP status codes.
func transitionStatus(kind workflow.Kind) int {
	switch kind {
	case workflow.KindNotFound:
		return http.StatusNotFound
	case workflow.KindUnauthorized:
		return http.StatusForbidden
	case workflow.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// respondError writes the error response for err. failMsg is used for
// unexpected errors so internals are not leaked to clients.
func respondError(c *gin.Context, err error, failMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if te, ok := workflow.AsTransitionError(err); ok {
		logger.Warn("Transition refused",
			slog.String("kind", string(te.Kind)),
			slog.String("field", te.Field),
			slog.String("gate", string(te.Gate)))
		c.JSON(transitionStatus(te.Kind), dto.ErrorResponse{
			Error: te.Message,
			Kind:  string(te.Kind),
			Field: te.Field,
			Gate:  string(te.Gate),
		})
		return
	}

	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Request timed out", slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Error: "Request timed out"})
	case errors.Is(err, apperrors.ErrNotFound):
		if appErr == nil {
			msg = "Expense not found"
		}
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: msg})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: msg})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "The expense was modified by another request. Reload and try again."})
	default:
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: failMsg})
	}
}

// requireUserID reads the authenticated user or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
