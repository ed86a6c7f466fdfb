package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"vulcan-monitor-go/internal/models"
)

// State is the atomic lifecycle state of a pipeline.
type State int32

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// AlertFunc receives results the pipeline considers alert-worthy. It must not
// block: the detection loop calls it inline.
type AlertFunc func(*models.DetectionResult)

// Options configures a VideoPipeline.
type Options struct {
	CameraID   string
	SourceDesc string
	Source     FrameSource
	Predictor  models.Predictor

	FrameBufferSize  int
	ResultBufferSize int
	HistorySize      int

	DetectionInterval time.Duration
	IdlePollInterval  time.Duration
	StopTimeout       time.Duration

	// Threshold yields the current alert threshold; results whose best
	// confidence exceeds it are raised through OnAlert.
	Threshold func() float64
	OnAlert   AlertFunc
}

// VideoPipeline runs one camera: a capture loop filling a bounded frame
// buffer as fast as the source yields, and a throttled detection loop
// feeding the result buffer and the bounded history log. The two loops plus
// Stop are the only writers; queries read snapshots.
type VideoPipeline struct {
	opts Options

	frames  *Buffer[*models.RawFrame]
	results *Buffer[models.FramePair]
	history *historyLog
	latest  atomic.Pointer[models.DetectionResult]

	props StreamProps
	state atomic.Int32

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a stopped pipeline for the given options.
func New(opts Options) *VideoPipeline {
	if opts.DetectionInterval <= 0 {
		opts.DetectionInterval = 500 * time.Millisecond
	}
	if opts.IdlePollInterval <= 0 {
		opts.IdlePollInterval = 10 * time.Millisecond
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 5 * time.Second
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = 1000
	}

	return &VideoPipeline{
		opts:    opts,
		frames:  NewBuffer[*models.RawFrame](opts.FrameBufferSize),
		results: NewBuffer[models.FramePair](opts.ResultBufferSize),
		history: newHistoryLog(opts.HistorySize),
	}
}

// State returns the current lifecycle state.
func (p *VideoPipeline) State() State {
	return State(p.state.Load())
}

// Start opens the source and launches the capture and detection loops.
// A source that cannot be opened fails with ErrSourceUnavailable and leaves
// the pipeline stopped.
func (p *VideoPipeline) Start() error {
	if !p.state.CompareAndSwap(int32(StateStopped), int32(StateStarting)) {
		return fmt.Errorf("camera %s cannot start from state %s", p.opts.CameraID, p.State())
	}

	props, err := p.opts.Source.Open()
	if err != nil {
		p.state.Store(int32(StateStopped))
		return fmt.Errorf("%w: camera %s: %v", models.ErrSourceUnavailable, p.opts.CameraID, err)
	}
	p.props = props

	p.stopCh = make(chan struct{})
	p.wg.Add(2)
	go p.captureLoop()
	go p.detectionLoop()

	p.state.Store(int32(StateRunning))

	log.Info().
		Str("camera_id", p.opts.CameraID).
		Str("source", p.opts.SourceDesc).
		Int("width", props.Width).
		Int("height", props.Height).
		Float64("fps", props.FPS).
		Msg("Video pipeline started")

	return nil
}

// Stop signals both loops, joins them with a bounded wait and releases the
// source. Calling Stop on a pipeline that is not running is a no-op.
func (p *VideoPipeline) Stop() error {
	if !p.state.CompareAndSwap(int32(StateRunning), int32(StateStopping)) {
		return nil
	}

	close(p.stopCh)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if err := p.opts.Source.Close(); err != nil {
			log.Warn().Err(err).Str("camera_id", p.opts.CameraID).Msg("Failed to close video source")
		}
	case <-time.After(p.opts.StopTimeout):
		// A loop may still be blocked inside Source.Read; closing the
		// source underneath it is not safe. Release it once the loops
		// actually exit.
		log.Warn().
			Str("camera_id", p.opts.CameraID).
			Dur("timeout", p.opts.StopTimeout).
			Msg("Pipeline loops did not exit before timeout, deferring source close")
		go func() {
			<-done
			if err := p.opts.Source.Close(); err != nil {
				log.Warn().Err(err).Str("camera_id", p.opts.CameraID).Msg("Failed to close video source")
			}
		}()
	}

	p.state.Store(int32(StateStopped))
	log.Info().Str("camera_id", p.opts.CameraID).Msg("Video pipeline stopped")
	return nil
}

// captureLoop reads frames as fast as the source yields them and pushes them
// into the frame buffer, dropping the oldest when full.
func (p *VideoPipeline) captureLoop() {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("camera_id", p.opts.CameraID).
				Interface("panic", r).
				Msg("Capture loop panic recovered")
		}
	}()

	consecutiveErrors := 0
	const maxConsecutiveErrors = 10

	for {
		select {
		case <-p.stopCh:
			return
		default:
		}

		frame, err := p.opts.Source.Read()
		if err != nil {
			consecutiveErrors++
			if consecutiveErrors >= maxConsecutiveErrors {
				log.Error().
					Err(err).
					Str("camera_id", p.opts.CameraID).
					Int("consecutive_errors", consecutiveErrors).
					Msg("Capture loop giving up on source")
				return
			}
			log.Warn().
				Err(err).
				Str("camera_id", p.opts.CameraID).
				Int("consecutive_errors", consecutiveErrors).
				Msg("Failed to read frame")

			select {
			case <-p.stopCh:
				return
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}

		consecutiveErrors = 0
		p.frames.Push(frame)
	}
}

// detectionLoop pops frames at the configured minimum interval, runs the
// predictor, and publishes the stamped result to the history log, the latest
// slot and the result buffer. A failed inference never terminates the loop.
func (p *VideoPipeline) detectionLoop() {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("camera_id", p.opts.CameraID).
				Interface("panic", r).
				Msg("Detection loop panic recovered")
		}
	}()

	var lastDetection time.Time

	for {
		select {
		case <-p.stopCh:
			return
		default:
		}

		// Throttle: never run faster than the configured interval,
		// regardless of capture rate.
		if since := time.Since(lastDetection); since < p.opts.DetectionInterval {
			p.sleep(p.opts.IdlePollInterval)
			continue
		}

		frame, ok := p.frames.TryPop()
		if !ok {
			p.sleep(p.opts.IdlePollInterval)
			continue
		}

		result, err := p.opts.Predictor.Predict(frame)
		if err != nil {
			log.Error().
				Err(err).
				Str("camera_id", p.opts.CameraID).
				Int64("frame_id", frame.FrameID).
				Msg("Inference failed")
			continue
		}

		result.Timestamp = time.Now()
		result.CameraID = p.opts.CameraID
		result.FrameInfo = models.FrameInfo{Width: p.props.Width, Height: p.props.Height}

		p.history.Append(result)
		p.latest.Store(result)
		p.results.Push(models.FramePair{Frame: frame, Result: result})

		if p.opts.OnAlert != nil && p.opts.Threshold != nil {
			if result.MaxConfidence() > p.opts.Threshold() {
				p.opts.OnAlert(result)
			}
		}

		lastDetection = time.Now()
	}
}

// sleep waits for d but returns early on stop.
func (p *VideoPipeline) sleep(d time.Duration) {
	select {
	case <-p.stopCh:
	case <-time.After(d):
	}
}

// Status returns a point-in-time snapshot of the pipeline.
func (p *VideoPipeline) Status() models.CameraStatus {
	return models.CameraStatus{
		CameraID:        p.opts.CameraID,
		Source:          p.opts.SourceDesc,
		IsActive:        p.State() == StateRunning,
		LatestDetection: p.latest.Load(),
		FrameWidth:      p.props.Width,
		FrameHeight:     p.props.Height,
		FPS:             p.props.FPS,
	}
}

// History returns the retained detection results inside tr, oldest first.
func (p *VideoPipeline) History(tr models.TimeRange) []*models.DetectionResult {
	return p.history.Filter(tr)
}

// LatestPair pulls the oldest unconsumed (frame, result) pair from the
// result buffer. Non-blocking; ok=false when nothing is pending.
func (p *VideoPipeline) LatestPair() (models.FramePair, bool) {
	return p.results.TryPop()
}
