package models

import (
	"time"
)

// RouteDecision is the alert router's classification of a detection batch.
type RouteDecision string

const (
	RouteImmediate RouteDecision = "immediate"
	RouteRoutine   RouteDecision = "routine"
)

// Detection is a single classified anomaly on one frame.
type Detection struct {
	ClassName  string      `json:"class_name"`
	Confidence float64     `json:"confidence"`
	Heatmap    [][]float64 `json:"heatmap,omitempty"`
}

// FrameInfo carries the static stream dimensions a result was produced from.
type FrameInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DetectionResult is the complete output of one inference tick. It is
// immutable once produced; the pipeline's history log owns it and shares it
// read-only with the alert queue and status queries.
type DetectionResult struct {
	Timestamp        time.Time          `json:"timestamp"`
	CameraID         string             `json:"camera_id"`
	Detections       []Detection        `json:"detections"`
	RawProbabilities map[string]float64 `json:"raw_probabilities"`
	FrameInfo        FrameInfo          `json:"frame_info"`
}

// MaxConfidence returns the highest detection confidence in the result,
// zero when the result carries no detections.
func (r *DetectionResult) MaxConfidence() float64 {
	best := 0.0
	for _, d := range r.Detections {
		if d.Confidence > best {
			best = d.Confidence
		}
	}
	return best
}

// FramePair couples a raw frame with the result produced from it, for live
// consumption by the streaming endpoints.
type FramePair struct {
	Frame  *RawFrame
	Result *DetectionResult
}

// AlertRecord is the persisted, immutable representation of one routed
// detection event.
type AlertRecord struct {
	ID       string          `json:"id"`
	Decision RouteDecision   `json:"decision"`
	Result   DetectionResult `json:"result"`
	SavedAt  time.Time       `json:"saved_at"`
}

// CameraConfig describes one camera to monitor.
type CameraConfig struct {
	ID       string `json:"id" binding:"required"`
	Source   string `json:"source" binding:"required"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

// CameraStatus is a point-in-time snapshot of one pipeline's state.
type CameraStatus struct {
	CameraID        string           `json:"camera_id"`
	Source          string           `json:"source"`
	IsActive        bool             `json:"is_active"`
	LatestDetection *DetectionResult `json:"latest_detection,omitempty"`
	FrameWidth      int              `json:"frame_width"`
	FrameHeight     int              `json:"frame_height"`
	FPS             float64          `json:"fps"`
}

// SystemStatus summarises the orchestrator.
type SystemStatus struct {
	IsRunning     bool      `json:"is_running"`
	ActiveCameras []string  `json:"active_cameras"`
	PendingAlerts int       `json:"pending_alerts"`
	StartTime     time.Time `json:"start_time"`
}

// TimeRange bounds a history query; a nil side is unbounded. Bounds are
// inclusive on timestamp comparison.
type TimeRange struct {
	Start *time.Time `json:"start_time,omitempty" form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	End   *time.Time `json:"end_time,omitempty" form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Contains reports whether ts falls inside the range.
func (tr TimeRange) Contains(ts time.Time) bool {
	if tr.Start != nil && ts.Before(*tr.Start) {
		return false
	}
	if tr.End != nil && ts.After(*tr.End) {
		return false
	}
	return true
}

// AlertsSummary aggregates a filtered history window.
type AlertsSummary struct {
	TotalAlerts int            `json:"total_alerts"`
	AlertTypes  map[string]int `json:"alert_types"`
	TimeRange   TimeRange      `json:"time_range"`
}

// Predictor is the anomaly-detection capability consumed by the pipeline.
// Predict is synchronous and may be slow (GPU-bound on the far side); the
// pipeline must tolerate arbitrary per-call latency and per-call failure.
type Predictor interface {
	Predict(frame *RawFrame) (*DetectionResult, error)
}

// MessagePublisher publishes a payload to a messaging subject.
type MessagePublisher interface {
	Publish(subject string, data interface{}) error
}
