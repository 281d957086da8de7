package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/homeledger/internal/api/middleware"
	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/domain/budget"
)

// BudgetHandler handles HTTP requests for monthly budgets
type BudgetHandler struct {
	budgetService service.BudgetService
	logger        *slog.Logger
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(logger *slog.Logger, budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// Get returns the budget for the requested month; a zero amount when
// none has been set
func (h *BudgetHandler) Get(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var params GetBudgetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	b, err := h.budgetService.GetBudget(c.Request.Context(), ownerID, params.Year, params.Month)
	if err != nil {
		if errors.Is(err, budget.ErrInvalidMonth) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to get budget", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBudgetToResponse(b))
}

// Set creates or replaces the budget for a month
func (h *BudgetHandler) Set(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	b, err := h.budgetService.SetBudget(c.Request.Context(), ownerID, req.Year, req.Month, req.Amount)
	if err != nil {
		if errors.Is(err, budget.ErrInvalidAmount) || errors.Is(err, budget.ErrInvalidMonth) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to set budget", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBudgetToResponse(b))
}

// mapBudgetToResponse maps a budget entity to a response DTO
func mapBudgetToResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		Year:   b.Year,
		Month:  b.Month,
		Amount: b.Amount,
	}
}
