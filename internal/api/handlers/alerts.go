package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"vulcan-monitor-go/internal/models"
	"vulcan-monitor-go/internal/monitor"
)

type AlertsHandler struct {
	orchestrator *monitor.Orchestrator
}

func NewAlertsHandler(orchestrator *monitor.Orchestrator) *AlertsHandler {
	return &AlertsHandler{orchestrator: orchestrator}
}

type historyQuery struct {
	CameraID string `form:"camera_id"`
	models.TimeRange
}

type HistoryResponse struct {
	Count   int                       `json:"count"`
	Results []*models.DetectionResult `json:"results"`
}

type ThresholdRequest struct {
	Threshold *float64 `json:"threshold" binding:"required"`
}

// GetAlertsHistory queries detection history
// @Summary Alerts history
// @Description Detection history inside an optional time window. With camera_id only that camera; otherwise all cameras merged and sorted by timestamp.
// @Tags alerts
// @Produce json
// @Param camera_id query string false "Camera ID (all cameras when omitted)"
// @Param start_time query string false "Window start (RFC3339, inclusive)"
// @Param end_time query string false "Window end (RFC3339, inclusive)"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /alerts [get]
func (h *AlertsHandler) GetAlertsHistory(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.orchestrator.GetAlertsHistory(q.TimeRange, q.CameraID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to query alerts history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if results == nil {
		results = []*models.DetectionResult{}
	}
	c.JSON(http.StatusOK, HistoryResponse{
		Count:   len(results),
		Results: results,
	})
}

// GetAlertsSummary aggregates the history window
// @Summary Alerts summary
// @Description Total result count plus per-class detection counts over an optional time window, across all cameras
// @Tags alerts
// @Produce json
// @Param start_time query string false "Window start (RFC3339, inclusive)"
// @Param end_time query string false "Window end (RFC3339, inclusive)"
// @Success 200 {object} models.AlertsSummary
// @Failure 400 {object} map[string]string
// @Router /alerts/summary [get]
func (h *AlertsHandler) GetAlertsSummary(c *gin.Context) {
	var tr models.TimeRange
	if err := c.ShouldBindQuery(&tr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.orchestrator.GetAlertsSummary(tr)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build alerts summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateAlertConfig changes routing configuration at runtime
// @Summary Update alert configuration
// @Description Replace the alert confidence threshold. Takes effect on the next evaluated detection.
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body ThresholdRequest true "New threshold in [0, 1]"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /alerts/config [post]
func (h *AlertsHandler) UpdateAlertConfig(c *gin.Context) {
	var req ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orchestrator.UpdateAlertThreshold(*req.Threshold); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"threshold": *req.Threshold})
}
