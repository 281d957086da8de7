package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/homeledger/internal/api/middleware"
	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/domain/filter"
)

// FilterHandler handles HTTP requests for saved expense filters
type FilterHandler struct {
	filterService service.FilterService
	logger        *slog.Logger
}

// NewFilterHandler creates a new saved-filter handler
func NewFilterHandler(logger *slog.Logger, filterService service.FilterService) *FilterHandler {
	return &FilterHandler{
		filterService: filterService,
		logger:        logger,
	}
}

// List returns all of the caller's saved filters
func (h *FilterHandler) List(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	filters, err := h.filterService.ListFilters(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to list filters", "error", err)
		RespondInternalError(c)
		return
	}

	response := make([]FilterResponse, 0, len(filters))
	for _, f := range filters {
		response = append(response, mapFilterToResponse(f))
	}
	RespondOK(c, response)
}

// Create saves a new filter
func (h *FilterHandler) Create(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req SaveFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	f, err := h.filterService.CreateFilter(c.Request.Context(), ownerID, req.Name, req.Conditions)
	if err != nil {
		if errors.Is(err, filter.ErrEmptyName) || errors.Is(err, filter.ErrNameTooLong) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create filter", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapFilterToResponse(f))
}

// Update replaces a saved filter's name and conditions
func (h *FilterHandler) Update(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "filter ID")
	if !ok {
		return
	}

	var req SaveFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	f, err := h.filterService.UpdateFilter(c.Request.Context(), ownerID, id, req.Name, req.Conditions)
	if err != nil {
		if errors.Is(err, filter.ErrFilterNotFound{}) {
			RespondNotFound(c, "Filter not found")
			return
		}
		if errors.Is(err, filter.ErrEmptyName) || errors.Is(err, filter.ErrNameTooLong) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to update filter", "filter_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapFilterToResponse(f))
}

// Delete removes a saved filter
func (h *FilterHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "filter ID")
	if !ok {
		return
	}

	if err := h.filterService.DeleteFilter(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, filter.ErrFilterNotFound{}) {
			RespondNotFound(c, "Filter not found")
			return
		}
		h.logger.Error("Failed to delete filter", "filter_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// mapFilterToResponse maps a saved filter entity to a response DTO
func mapFilterToResponse(f *filter.Filter) FilterResponse {
	return FilterResponse{
		ID:         f.ID.Hex(),
		Name:       f.Name,
		Conditions: f.Conditions,
		CreatedAt:  f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  f.UpdatedAt.Format(time.RFC3339),
	}
}
