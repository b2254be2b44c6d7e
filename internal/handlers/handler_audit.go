package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/expense_workflow_app/internal/dto"
	"github.com/SscSPs/expense_workflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditReaderSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, as portssvc.AuditReaderSvc) {
	h := &auditHandler{auditService: as}
	rg.GET("/audit-entries", h.listAuditEntries)
}

// listExpenseAuditEntries godoc
// @Summary List the audit trail of an expense
// @Description Returns every status change of one expense, oldest first
// @Tags audit
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list audit entries"
// @Security BearerAuth
// @Router /expenses/{id}/audit [get]
func (h *expenseHandler) listExpenseAuditEntries(c *gin.Context) {
	entries, err := h.expenseService.ListExpenseAuditEntries(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditEntriesResponse(entries, nil).Entries)
}

// listAuditEntries godoc
// @Summary List all audit entries
// @Description Returns the global audit trail in append order with token-based pagination
// @Tags audit
// @Produce  json
// @Param   limit query int false "Page size (default 50, max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListAuditEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list audit entries"
// @Security BearerAuth
// @Router /audit-entries [get]
func (h *auditHandler) listAuditEntries(c *gin.Context) {
	var params dto.ListAuditEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind query for ListAuditEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.auditService.ListAuditEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditEntriesResponse(entries, nextToken))
}
