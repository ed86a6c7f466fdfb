package alerting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vulcan-monitor-go/internal/models"
)

type capturePublisher struct {
	subject string
	data    interface{}
	err     error
	calls   int
}

func (p *capturePublisher) Publish(subject string, data interface{}) error {
	p.calls++
	p.subject = subject
	p.data = data
	return p.err
}

func testRecord() *models.AlertRecord {
	return NewRecord(&models.DetectionResult{
		Timestamp: time.Now(),
		CameraID:  "cam-1",
		Detections: []models.Detection{
			{ClassName: "smoke", Confidence: 0.9},
		},
	}, models.RouteImmediate)
}

func TestImmediatePublishesOnSubject(t *testing.T) {
	pub := &capturePublisher{}
	n := NewNotifier(pub, "alerts.hazard")

	n.Immediate(testRecord())

	require.Equal(t, 1, pub.calls)
	assert.Equal(t, "alerts.hazard", pub.subject)

	rec, ok := pub.data.(*models.AlertRecord)
	require.True(t, ok)
	assert.Equal(t, "cam-1", rec.Result.CameraID)
}

func TestImmediateToleratesNilPublisher(t *testing.T) {
	n := NewNotifier(nil, "alerts.hazard")
	assert.NotPanics(t, func() {
		n.Immediate(testRecord())
	})
}

func TestImmediateToleratesPublishFailure(t *testing.T) {
	pub := &capturePublisher{err: errors.New("nats down")}
	n := NewNotifier(pub, "alerts.hazard")

	assert.NotPanics(t, func() {
		n.Immediate(testRecord())
	})
	assert.Equal(t, 1, pub.calls)
}

func TestRoutineDoesNotPublish(t *testing.T) {
	pub := &capturePublisher{}
	n := NewNotifier(pub, "alerts.hazard")

	n.Routine(testRecord())
	assert.Zero(t, pub.calls)
}
