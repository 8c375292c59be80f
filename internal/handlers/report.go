package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talenthub/internlens/internal/models"
	"github.com/talenthub/internlens/internal/services"
	"github.com/talenthub/internlens/pkg/response"
)

type ReportHandler struct {
	reports    *services.ReportService
	queue      services.TaskQueue
	windowDays int
}

func NewReportHandler(reports *services.ReportService, queue services.TaskQueue, windowDays int) *ReportHandler {
	if windowDays < 1 {
		windowDays = 7
	}
	return &ReportHandler{reports: reports, queue: queue, windowDays: windowDays}
}

// GetWeeklyReport handles GET /api/interns/:id/weekly-report.
// The intern identifier must be an integer; an invalid identifier is
// rejected, not guessed. An invalid days value falls back to the standard
// window instead.
func (h *ReportHandler) GetWeeklyReport(c *gin.Context) {
	internIDRaw := c.Param("id")
	internID, err := strconv.Atoi(internIDRaw)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("invalid intern id %q in URL, it must be an integer", internIDRaw))
		return
	}

	internName := c.DefaultQuery("name", fmt.Sprintf("Intern %d", internID))

	days := h.windowDays
	if daysRaw := c.Query("days"); daysRaw != "" {
		if v, err := strconv.Atoi(daysRaw); err == nil && v >= 1 {
			days = v
		}
	}

	report, err := h.reports.GenerateWeeklyReport(c.Request.Context(), strconv.Itoa(internID), internName, days)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	// The report body is the contract; no envelope. Degraded outcomes are
	// communicated through has_data/trajectory, not error responses.
	c.JSON(200, report)
}

// GenerateProjectReport handles POST /api/reports/project. The caller
// supplies already-retrieved logs per intern.
func (h *ReportHandler) GenerateProjectReport(c *gin.Context) {
	var internLogs []models.InternLogs
	if err := c.ShouldBindJSON(&internLogs); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report, err := h.reports.GenerateProjectReport(c.Request.Context(), internLogs)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	c.JSON(200, report)
}

// TriggerDigest handles POST /api/reports/digest, enqueuing a digest job.
func (h *ReportHandler) TriggerDigest(c *gin.Context) {
	days := h.windowDays
	if daysRaw := c.Query("days"); daysRaw != "" {
		if v, err := strconv.Atoi(daysRaw); err == nil && v >= 1 {
			days = v
		}
	}

	if err := h.queue.Enqueue(&services.DigestTask{WindowDays: days, RequestedBy: "api"}); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"message": "digest enqueued",
		"async":   h.queue.IsAsync(),
	})
}
