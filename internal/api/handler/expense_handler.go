package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/api/middleware"
	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/domain/category"
	"github.com/homeledger/homeledger/internal/domain/expense"
)

const dateLayout = "2006-01-02"

// ExpenseHandler handles HTTP requests for expense records
type ExpenseHandler struct {
	expenseService service.ExpenseService
	logger         *slog.Logger
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(logger *slog.Logger, expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// Create records a new expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		RespondBadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	categoryID, ok := parseObjectID(c, req.Category, "category ID")
	if !ok {
		return
	}

	tagIDs := make([]primitive.ObjectID, 0, len(req.Tags))
	for _, raw := range req.Tags {
		id, ok := parseObjectID(c, raw, "tag ID")
		if !ok {
			return
		}
		tagIDs = append(tagIDs, id)
	}

	e, err := h.expenseService.CreateExpense(c.Request.Context(), ownerID, date, categoryID, req.Amount, req.Description, tagIDs, req.IsExtra)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound{}) {
			RespondBadRequest(c, "Category not found")
			return
		}
		if isExpenseValidationError(err) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create expense", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapExpenseToResponse(e))
}

// List returns the caller's expenses, optionally narrowed by date range
// and category
func (h *ExpenseHandler) List(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var params ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	var q expense.Query
	if params.StartDate != "" {
		start, err := time.Parse(dateLayout, params.StartDate)
		if err != nil {
			RespondBadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		q.StartDate = start
	}
	if params.EndDate != "" {
		end, err := time.Parse(dateLayout, params.EndDate)
		if err != nil {
			RespondBadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		q.EndDate = end
	}
	if params.Category != "" {
		id, ok := parseObjectID(c, params.Category, "category ID")
		if !ok {
			return
		}
		q.CategoryID = &id
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), ownerID, q)
	if err != nil {
		h.logger.Error("Failed to list expenses", "error", err)
		RespondInternalError(c)
		return
	}

	response := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		response = append(response, mapExpenseToResponse(e))
	}
	RespondOK(c, response)
}

// Delete removes one expense record
func (h *ExpenseHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "expense ID")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound{}) {
			RespondNotFound(c, "Expense not found")
			return
		}
		h.logger.Error("Failed to delete expense", "expense_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

func isExpenseValidationError(err error) bool {
	return errors.Is(err, expense.ErrInvalidAmount) ||
		errors.Is(err, expense.ErrMissingDate) ||
		errors.Is(err, expense.ErrMissingCategory) ||
		errors.Is(err, expense.ErrDescriptionTooLong)
}

// mapExpenseToResponse maps an expense entity to a response DTO
func mapExpenseToResponse(e *expense.Expense) ExpenseResponse {
	tags := make([]string, 0, len(e.TagIDs))
	for _, id := range e.TagIDs {
		tags = append(tags, id.Hex())
	}

	return ExpenseResponse{
		ID:          e.ID.Hex(),
		Date:        e.Date.Format(dateLayout),
		Category:    e.CategoryID.Hex(),
		Amount:      e.Amount,
		Description: e.Description,
		Tags:        tags,
		IsExtra:     e.IsExtra,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
