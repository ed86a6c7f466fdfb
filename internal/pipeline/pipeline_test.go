package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vulcan-monitor-go/internal/models"
)

type fakeSource struct {
	openErr error
	readErr error

	frameID atomic.Int64
	closed  atomic.Bool
}

func (s *fakeSource) Open() (StreamProps, error) {
	if s.openErr != nil {
		return StreamProps{}, s.openErr
	}
	return StreamProps{Width: 640, Height: 480, FPS: 30}, nil
}

func (s *fakeSource) Read() (*models.RawFrame, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	// Pace the producer so the test does not spin a core.
	time.Sleep(time.Millisecond)
	return &models.RawFrame{
		CameraID:  "cam-1",
		FrameID:   s.frameID.Add(1),
		Timestamp: time.Now(),
		Width:     640,
		Height:    480,
		Format:    "BGR24",
		Data:      []byte{0, 0, 0},
	}, nil
}

func (s *fakeSource) Close() error {
	s.closed.Store(true)
	return nil
}

type blockingSource struct {
	release chan struct{}
	closed  atomic.Bool
}

func (s *blockingSource) Open() (StreamProps, error) {
	return StreamProps{Width: 640, Height: 480, FPS: 30}, nil
}

func (s *blockingSource) Read() (*models.RawFrame, error) {
	<-s.release
	return nil, errors.New("source released")
}

func (s *blockingSource) Close() error {
	s.closed.Store(true)
	return nil
}

type fakePredictor struct {
	className  string
	confidence float64

	mu    sync.Mutex
	calls int
	err   error
}

func (p *fakePredictor) Predict(frame *models.RawFrame) (*models.DetectionResult, error) {
	p.mu.Lock()
	p.calls++
	err := p.err
	p.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &models.DetectionResult{
		Detections: []models.Detection{
			{ClassName: p.className, Confidence: p.confidence},
		},
		RawProbabilities: map[string]float64{p.className: p.confidence},
	}, nil
}

func (p *fakePredictor) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func testOptions(src FrameSource, pred models.Predictor) Options {
	return Options{
		CameraID:          "cam-1",
		SourceDesc:        "fake://cam-1",
		Source:            src,
		Predictor:         pred,
		FrameBufferSize:   8,
		ResultBufferSize:  8,
		HistorySize:       100,
		DetectionInterval: time.Millisecond,
		IdlePollInterval:  time.Millisecond,
		StopTimeout:       2 * time.Second,
	}
}

func TestPipelineStartFailsWhenSourceUnavailable(t *testing.T) {
	src := &fakeSource{openErr: errors.New("connection refused")}
	p := New(testOptions(src, &fakePredictor{}))

	err := p.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSourceUnavailable)
	assert.Equal(t, StateStopped, p.State(), "failed start leaves the pipeline stopped")
}

func TestPipelineProducesHistoryAndStatus(t *testing.T) {
	src := &fakeSource{}
	pred := &fakePredictor{className: "normal", confidence: 0.3}
	p := New(testOptions(src, pred))

	require.NoError(t, p.Start())
	defer p.Stop()

	require.Eventually(t, func() bool {
		return len(p.History(models.TimeRange{})) >= 3
	}, 5*time.Second, 5*time.Millisecond)

	status := p.Status()
	assert.True(t, status.IsActive)
	assert.Equal(t, "cam-1", status.CameraID)
	assert.Equal(t, 640, status.FrameWidth)
	require.NotNil(t, status.LatestDetection)
	assert.Equal(t, "cam-1", status.LatestDetection.CameraID, "results are stamped with the camera id")
	assert.Equal(t, 640, status.LatestDetection.FrameInfo.Width)

	history := p.History(models.TimeRange{})
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp), "history is oldest first")
	}
}

func TestPipelineRaisesAlertsAboveThreshold(t *testing.T) {
	src := &fakeSource{}
	pred := &fakePredictor{className: "smoke", confidence: 0.95}

	var alerts atomic.Int64
	opts := testOptions(src, pred)
	opts.Threshold = func() float64 { return 0.8 }
	opts.OnAlert = func(r *models.DetectionResult) {
		alerts.Add(1)
	}

	p := New(opts)
	require.NoError(t, p.Start())
	defer p.Stop()

	require.Eventually(t, func() bool {
		return alerts.Load() >= 1
	}, 5*time.Second, 5*time.Millisecond)
}

func TestPipelineSkipsAlertsBelowThreshold(t *testing.T) {
	src := &fakeSource{}
	pred := &fakePredictor{className: "smoke", confidence: 0.5}

	var alerts atomic.Int64
	opts := testOptions(src, pred)
	opts.Threshold = func() float64 { return 0.8 }
	opts.OnAlert = func(r *models.DetectionResult) {
		alerts.Add(1)
	}

	p := New(opts)
	require.NoError(t, p.Start())

	require.Eventually(t, func() bool {
		return pred.callCount() >= 5
	}, 5*time.Second, 5*time.Millisecond)

	require.NoError(t, p.Stop())
	assert.Zero(t, alerts.Load())
}

func TestPipelineSurvivesInferenceFailures(t *testing.T) {
	src := &fakeSource{}
	pred := &fakePredictor{className: "normal", confidence: 0.2}
	pred.err = errors.New("model unavailable")

	p := New(testOptions(src, pred))
	require.NoError(t, p.Start())
	defer p.Stop()

	require.Eventually(t, func() bool {
		return pred.callCount() >= 3
	}, 5*time.Second, 5*time.Millisecond)

	assert.Empty(t, p.History(models.TimeRange{}), "failed inference produces no history")
	assert.Equal(t, StateRunning, p.State())

	// Recover: the loop keeps predicting and history fills up.
	pred.mu.Lock()
	pred.err = nil
	pred.mu.Unlock()

	require.Eventually(t, func() bool {
		return len(p.History(models.TimeRange{})) >= 1
	}, 5*time.Second, 5*time.Millisecond)
}

func TestPipelineStopIsIdempotent(t *testing.T) {
	src := &fakeSource{}
	p := New(testOptions(src, &fakePredictor{className: "normal", confidence: 0.1}))

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
	assert.True(t, src.closed.Load(), "source released on stop")
	assert.Equal(t, StateStopped, p.State())

	require.NoError(t, p.Stop(), "second stop is a no-op")

	// History survives a stop.
	p2 := New(testOptions(&fakeSource{}, &fakePredictor{className: "normal", confidence: 0.1}))
	require.NoError(t, p2.Start())
	require.Eventually(t, func() bool {
		return len(p2.History(models.TimeRange{})) >= 1
	}, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, p2.Stop())
	assert.NotEmpty(t, p2.History(models.TimeRange{}))
}

func TestStopDefersSourceCloseWhileReadBlocked(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	opts := testOptions(src, &fakePredictor{className: "normal", confidence: 0.1})
	opts.StopTimeout = 50 * time.Millisecond

	p := New(opts)
	require.NoError(t, p.Start())

	require.NoError(t, p.Stop())
	assert.Equal(t, StateStopped, p.State())
	assert.False(t, src.closed.Load(), "source must not be closed under a blocked Read")

	// Once the capture loop gets unstuck the source is released.
	close(src.release)
	require.Eventually(t, func() bool {
		return src.closed.Load()
	}, 5*time.Second, 5*time.Millisecond)
}

func TestPipelineLatestPairConsumes(t *testing.T) {
	src := &fakeSource{}
	p := New(testOptions(src, &fakePredictor{className: "normal", confidence: 0.1}))

	require.NoError(t, p.Start())
	defer p.Stop()

	require.Eventually(t, func() bool {
		_, ok := p.LatestPair()
		return ok
	}, 5*time.Second, 5*time.Millisecond)
}
