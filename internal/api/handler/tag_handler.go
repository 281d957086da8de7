package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/homeledger/internal/api/middleware"
	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/domain/tag"
)

// TagHandler handles HTTP requests for tags
type TagHandler struct {
	tagService service.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(logger *slog.Logger, tagService service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// List returns all of the caller's tags
func (h *TagHandler) List(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	tags, err := h.tagService.ListTags(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to list tags", "error", err)
		RespondInternalError(c)
		return
	}

	response := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		response = append(response, mapTagToResponse(t))
	}
	RespondOK(c, response)
}

// Create handles creation of a new tag
func (h *TagHandler) Create(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.tagService.CreateTag(c.Request.Context(), ownerID, req.Name, req.Color)
	if err != nil {
		var duplicate tag.ErrDuplicateName
		if errors.As(err, &duplicate) {
			RespondConflict(c, "Tag with this name already exists")
			return
		}
		if errors.Is(err, tag.ErrEmptyName) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create tag", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapTagToResponse(t))
}

// Delete removes a tag
func (h *TagHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "tag ID")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, tag.ErrTagNotFound{}) {
			RespondNotFound(c, "Tag not found")
			return
		}
		h.logger.Error("Failed to delete tag", "tag_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// mapTagToResponse maps a tag entity to a response DTO
func mapTagToResponse(t *tag.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID.Hex(),
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}
