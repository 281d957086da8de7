package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/homeledger/internal/api/middleware"
	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/domain/category"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(logger *slog.Logger, categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// List returns all of the caller's categories
func (h *CategoryHandler) List(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	categories, err := h.categoryService.ListCategories(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to list categories", "error", err)
		RespondInternalError(c)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, mapCategoryToResponse(cat))
	}
	RespondOK(c, response)
}

// Create handles creation of a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cat, err := h.categoryService.CreateCategory(c.Request.Context(), ownerID, req.Name, category.Kind(req.Type), req.Icon, req.Color)
	if err != nil {
		var duplicate category.ErrDuplicateName
		if errors.As(err, &duplicate) {
			RespondConflict(c, "Category with this name already exists")
			return
		}
		if errors.Is(err, category.ErrEmptyName) || errors.Is(err, category.ErrInvalidKind) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create category", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapCategoryToResponse(cat))
}

// Update replaces the category's editable fields
func (h *CategoryHandler) Update(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "category ID")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cat, err := h.categoryService.UpdateCategory(c.Request.Context(), ownerID, id, req.Name, category.Kind(req.Type), req.Icon, req.Color)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound{}) {
			RespondNotFound(c, "Category not found")
			return
		}
		var duplicate category.ErrDuplicateName
		if errors.As(err, &duplicate) {
			RespondConflict(c, "Category with this name already exists")
			return
		}
		if errors.Is(err, category.ErrEmptyName) || errors.Is(err, category.ErrInvalidKind) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to update category", "category_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapCategoryToResponse(cat))
}

// Delete removes a category. Expenses referencing it keep the dangling
// reference.
func (h *CategoryHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "category ID")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound{}) {
			RespondNotFound(c, "Category not found")
			return
		}
		h.logger.Error("Failed to delete category", "category_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// mapCategoryToResponse maps a category entity to a response DTO
func mapCategoryToResponse(cat *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.Hex(),
		Name:      cat.Name,
		Type:      string(cat.Kind),
		Icon:      cat.Icon,
		Color:     cat.Color,
		CreatedAt: cat.CreatedAt.Format(time.RFC3339),
	}
}
