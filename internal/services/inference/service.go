package inference

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"vulcan-monitor-go/internal/models"
)

// Requester issues a request on the messaging bus and returns the reply.
type Requester interface {
	Request(subject string, data interface{}, timeout time.Duration) ([]byte, error)
}

// Service is a Predictor backed by the anomaly-detection model service over
// NATS request/reply. Calls are synchronous and may be slow while the model
// side queues GPU work; the per-call timeout bounds them.
type Service struct {
	requester Requester
	subject   string
	timeout   time.Duration
}

func NewService(requester Requester, subject string, timeout time.Duration) *Service {
	return &Service{
		requester: requester,
		subject:   subject,
		timeout:   timeout,
	}
}

// frameRequest is the wire form of one inference call. Data is
// base64-encoded by encoding/json.
type frameRequest struct {
	CameraID string `json:"camera_id"`
	FrameID  int64  `json:"frame_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Data     []byte `json:"data"`
}

type frameResponse struct {
	Detections       []models.Detection `json:"detections"`
	RawProbabilities map[string]float64 `json:"raw_probabilities"`
	Error            string             `json:"error,omitempty"`
}

// Predict runs one frame through the model service. The pipeline stamps
// timestamp, camera id and frame info on the returned result.
func (s *Service) Predict(frame *models.RawFrame) (*models.DetectionResult, error) {
	req := frameRequest{
		CameraID: frame.CameraID,
		FrameID:  frame.FrameID,
		Width:    frame.Width,
		Height:   frame.Height,
		Format:   frame.Format,
		Data:     frame.Data,
	}

	start := time.Now()
	reply, err := s.requester.Request(s.subject, req, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("inference request: %w", err)
	}

	var resp frameResponse
	if err := json.Unmarshal(reply, &resp); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("inference service: %s", resp.Error)
	}

	log.Debug().
		Str("camera_id", frame.CameraID).
		Int64("frame_id", frame.FrameID).
		Int("detections", len(resp.Detections)).
		Dur("inference_time", time.Since(start)).
		Msg("Inference completed")

	return &models.DetectionResult{
		Detections:       resp.Detections,
		RawProbabilities: resp.RawProbabilities,
	}, nil
}
