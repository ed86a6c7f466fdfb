package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"

	"vulcan-monitor-go/internal/models"
	"vulcan-monitor-go/internal/monitor"
)

type CameraHandler struct {
	orchestrator *monitor.Orchestrator
	jpegQuality  int
	pollInterval time.Duration
}

func NewCameraHandler(orchestrator *monitor.Orchestrator, jpegQuality int, pollInterval time.Duration) *CameraHandler {
	return &CameraHandler{
		orchestrator: orchestrator,
		jpegQuality:  jpegQuality,
		pollInterval: pollInterval,
	}
}

// GetCameraStatus gets one camera's snapshot
// @Summary Get camera status
// @Description Point-in-time snapshot of one camera pipeline, including its latest detection result
// @Tags cameras
// @Produce json
// @Param id path string true "Camera ID"
// @Success 200 {object} models.CameraStatus
// @Failure 404 {object} map[string]string
// @Router /cameras/{id}/status [get]
func (h *CameraHandler) GetCameraStatus(c *gin.Context) {
	cameraID := c.Param("id")

	status, err := h.orchestrator.GetCameraStatus(cameraID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
			return
		}
		log.Error().Err(err).Str("camera_id", cameraID).Msg("Failed to get camera status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetLatestFrame returns the newest frame as a JPEG
// @Summary Get latest frame
// @Description Encode and return the newest processed frame for a camera as a single JPEG image
// @Tags cameras
// @Produce image/jpeg
// @Param id path string true "Camera ID"
// @Success 200 {file} image/jpeg
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cameras/{id}/frame [get]
func (h *CameraHandler) GetLatestFrame(c *gin.Context) {
	cameraID := c.Param("id")

	pair, found, err := h.orchestrator.StreamLatestFrame(cameraID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no frame available yet"})
		return
	}

	jpeg, err := h.encodeJPEG(pair.Frame)
	if err != nil {
		log.Error().Err(err).Str("camera_id", cameraID).Msg("Failed to encode frame")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode frame"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/jpeg", jpeg)
}

// StreamMJPEG streams the camera as multipart MJPEG
// @Summary MJPEG stream
// @Description Stream processed frames as multipart/x-mixed-replace MJPEG until the client disconnects
// @Tags cameras
// @Produce image/jpeg
// @Param id path string true "Camera ID"
// @Success 200 {file} image/jpeg
// @Failure 404 {object} map[string]string
// @Router /cameras/{id}/mjpeg [get]
func (h *CameraHandler) StreamMJPEG(c *gin.Context) {
	cameraID := c.Param("id")

	// Fail fast on an unknown camera before committing to the multipart
	// response.
	if _, err := h.orchestrator.GetCameraStatus(cameraID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	const boundary = "mjpegframe"
	c.Header("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "close")

	log.Info().Str("camera_id", cameraID).Msg("MJPEG stream started")
	defer log.Info().Str("camera_id", cameraID).Msg("MJPEG stream ended")

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pair, found, err := h.orchestrator.StreamLatestFrame(cameraID)
		if err != nil {
			// Camera went away mid-stream (system stopped).
			return
		}
		if !found {
			time.Sleep(h.pollInterval)
			continue
		}

		jpeg, err := h.encodeJPEG(pair.Frame)
		if err != nil {
			log.Warn().Err(err).Str("camera_id", cameraID).Msg("Skipping unencodable frame")
			continue
		}

		if _, err := fmt.Fprintf(c.Writer,
			"--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n",
			boundary, len(jpeg)); err != nil {
			return
		}
		if _, err := c.Writer.Write(jpeg); err != nil {
			return
		}
		if _, err := fmt.Fprintf(c.Writer, "\r\n"); err != nil {
			return
		}
		c.Writer.Flush()
	}
}

// encodeJPEG converts a raw BGR frame to JPEG bytes.
func (h *CameraHandler) encodeJPEG(frame *models.RawFrame) ([]byte, error) {
	mat, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Data)
	if err != nil {
		return nil, fmt.Errorf("frame to mat: %w", err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{gocv.IMWriteJpegQuality, h.jpegQuality})
	if err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
