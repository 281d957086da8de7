package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/homeledger/internal/api/middleware"
	"github.com/homeledger/homeledger/internal/api/service"
)

// ReportHandler handles HTTP requests for spending reports
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Get returns the aggregated spending report for an inclusive date range
func (h *ReportHandler) Get(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var params ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	start, err := time.Parse(dateLayout, params.StartDate)
	if err != nil {
		RespondBadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, params.EndDate)
	if err != nil {
		RespondBadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		RespondBadRequest(c, "end_date must not be before start_date")
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), ownerID, start, end)
	if err != nil {
		h.logger.Error("Failed to build report", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, report)
}
