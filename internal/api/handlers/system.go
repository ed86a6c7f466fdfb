package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"vulcan-monitor-go/internal/models"
	"vulcan-monitor-go/internal/monitor"
)

type SystemHandler struct {
	orchestrator *monitor.Orchestrator
}

func NewSystemHandler(orchestrator *monitor.Orchestrator) *SystemHandler {
	return &SystemHandler{orchestrator: orchestrator}
}

type StartRequest struct {
	Cameras []models.CameraConfig `json:"cameras" binding:"required,min=1,dive"`
}

type StartResponse struct {
	Started       bool              `json:"started"`
	ActiveCameras []string          `json:"active_cameras"`
	FailedCameras map[string]string `json:"failed_cameras,omitempty"`
}

// StartMonitoring brings the whole system up
// @Summary Start monitoring
// @Description Start one detection pipeline per configured camera. Cameras that fail to open are reported and skipped.
// @Tags system
// @Accept json
// @Produce json
// @Param request body StartRequest true "Camera configurations"
// @Success 200 {object} StartResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /system/start [post]
func (h *SystemHandler) StartMonitoring(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid start request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.orchestrator.StartMonitoring(req.Cameras)

	var partial *models.PartialStartupError
	switch {
	case err == nil:
		status := h.orchestrator.GetSystemStatus()
		c.JSON(http.StatusOK, StartResponse{
			Started:       true,
			ActiveCameras: status.ActiveCameras,
		})
	case errors.Is(err, models.ErrAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{"error": "monitoring already running"})
	case errors.As(err, &partial):
		failed := make(map[string]string, len(partial.Failed))
		for id, ferr := range partial.Failed {
			failed[id] = ferr.Error()
		}
		status := h.orchestrator.GetSystemStatus()
		c.JSON(http.StatusOK, StartResponse{
			Started:       true,
			ActiveCameras: status.ActiveCameras,
			FailedCameras: failed,
		})
	default:
		log.Error().Err(err).Msg("Failed to start monitoring")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// StopMonitoring shuts the whole system down
// @Summary Stop monitoring
// @Description Stop all camera pipelines and drain pending alerts. Idempotent.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /system/stop [post]
func (h *SystemHandler) StopMonitoring(c *gin.Context) {
	if err := h.orchestrator.StopMonitoring(); err != nil {
		log.Error().Err(err).Msg("Failed to stop monitoring")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "monitoring stopped"})
}

// GetSystemStatus reports the orchestrator snapshot
// @Summary System status
// @Description Running flag, active camera ids, pending alert queue depth and start time
// @Tags system
// @Produce json
// @Success 200 {object} models.SystemStatus
// @Router /system/status [get]
func (h *SystemHandler) GetSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.orchestrator.GetSystemStatus())
}
