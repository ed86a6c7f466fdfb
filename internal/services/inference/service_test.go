package inference

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vulcan-monitor-go/internal/models"
)

type stubRequester struct {
	subject string
	payload []byte
	reply   []byte
	err     error
}

func (r *stubRequester) Request(subject string, data interface{}, timeout time.Duration) ([]byte, error) {
	r.subject = subject
	r.payload, _ = json.Marshal(data)
	return r.reply, r.err
}

func testFrame() *models.RawFrame {
	return &models.RawFrame{
		CameraID:  "cam-1",
		FrameID:   42,
		Timestamp: time.Now(),
		Width:     640,
		Height:    480,
		Format:    "BGR24",
		Data:      []byte{1, 2, 3},
	}
}

func TestPredictDecodesResponse(t *testing.T) {
	reply, _ := json.Marshal(frameResponse{
		Detections: []models.Detection{
			{ClassName: "smoke", Confidence: 0.92},
		},
		RawProbabilities: map[string]float64{"smoke": 0.92, "normal": 0.08},
	})
	req := &stubRequester{reply: reply}
	svc := NewService(req, "inference.anomaly", time.Second)

	result, err := svc.Predict(testFrame())
	require.NoError(t, err)

	assert.Equal(t, "inference.anomaly", req.subject)
	require.Len(t, result.Detections, 1)
	assert.Equal(t, "smoke", result.Detections[0].ClassName)
	assert.InDelta(t, 0.92, result.RawProbabilities["smoke"], 1e-9)

	// The request carried the frame geometry and payload.
	var sent frameRequest
	require.NoError(t, json.Unmarshal(req.payload, &sent))
	assert.Equal(t, "cam-1", sent.CameraID)
	assert.Equal(t, int64(42), sent.FrameID)
	assert.Equal(t, 640, sent.Width)
	assert.Equal(t, []byte{1, 2, 3}, sent.Data)
}

func TestPredictSurfacesTransportError(t *testing.T) {
	req := &stubRequester{err: errors.New("nats: timeout")}
	svc := NewService(req, "inference.anomaly", time.Second)

	_, err := svc.Predict(testFrame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inference request")
}

func TestPredictSurfacesModelError(t *testing.T) {
	reply, _ := json.Marshal(frameResponse{Error: "model not loaded"})
	req := &stubRequester{reply: reply}
	svc := NewService(req, "inference.anomaly", time.Second)

	_, err := svc.Predict(testFrame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestPredictRejectsGarbageReply(t *testing.T) {
	req := &stubRequester{reply: []byte("not json")}
	svc := NewService(req, "inference.anomaly", time.Second)

	_, err := svc.Predict(testFrame())
	assert.Error(t, err)
}
