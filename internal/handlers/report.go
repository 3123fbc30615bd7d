package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cognicare-go/internal/report"
)

// ReportHandler serves the clinical-style report screen data. Reports
// are pure read-time projections: nothing here writes.
type ReportHandler struct {
	log     *zap.Logger
	reports *report.Service
}

func NewReportHandler(log *zap.Logger, reports *report.Service) *ReportHandler {
	return &ReportHandler{log: log, reports: reports}
}

// ShowReport returns the per-domain reports and the overall assessment.
// All domain reads complete before the response is built, so a partial
// set of domains is never presented as final. A user with no scored
// domains gets an explicit "no data" marker rather than an error.
func (h *ReportHandler) ShowReport(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	overall, domains := h.reports.OverallAssessment(c.Request.Context(), userID)
	if overall == nil {
		c.JSON(http.StatusOK, gin.H{
			"hasData": false,
			"message": "No report data yet. Complete some levels to generate an assessment.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hasData": true,
		"domains": domains,
		"overall": overall,
	})
}
