package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/service/reporting"
)

const dateLayout = "2006-01-02"

// ReportHandler serves the read-side aggregation endpoints.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// PopulationStats returns herd counts.
func (h *ReportHandler) PopulationStats(c *gin.Context) {
	stats, err := h.svc.PopulationStats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// FinancialSummary aggregates transactions over an optional start/end range.
func (h *ReportHandler) FinancialSummary(c *gin.Context) {
	var start, end time.Time
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be formatted as YYYY-MM-DD"})
			return
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be formatted as YYYY-MM-DD"})
			return
		}
		end = parsed
	}

	summary, err := h.svc.FinancialSummary(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpcomingReminders returns due-soon medical follow-ups and expected births.
func (h *ReportHandler) UpcomingReminders(c *gin.Context) {
	windowDays := reporting.DefaultReminderWindowDays
	if raw := c.Query("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "window_days must be a positive integer"})
			return
		}
		windowDays = parsed
	}

	reminders, err := h.svc.UpcomingReminders(c.Request.Context(), windowDays)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}
