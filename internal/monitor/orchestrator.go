package monitor

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"vulcan-monitor-go/internal/alerting"
	"vulcan-monitor-go/internal/config"
	"vulcan-monitor-go/internal/models"
	"vulcan-monitor-go/internal/pipeline"
)

// SourceFactory builds a FrameSource for one camera config. Swappable so
// tests can monitor synthetic streams.
type SourceFactory func(cfg models.CameraConfig) pipeline.FrameSource

// Orchestrator owns the per-camera video pipelines, the shared alert queue
// and its single draining worker, and the aggregated query operations.
// Instances are independent; there is no process-wide state.
type Orchestrator struct {
	cfg       *config.Config
	predictor models.Predictor
	router    *alerting.Router
	store     *alerting.Store
	notifier  *alerting.Notifier
	sources   SourceFactory

	mu        sync.RWMutex
	pipelines map[string]*pipeline.VideoPipeline

	// lifecycleMu serializes StartMonitoring and StopMonitoring end to end;
	// the running flag alone is not enough, a stop landing between start's
	// CAS and its channel setup would close a nil or stale stopWorker.
	lifecycleMu sync.Mutex
	running     atomic.Bool
	startTime   time.Time

	// The alert queue is bounded with drop-oldest overflow so sustained
	// overload degrades to stale-alert loss instead of unbounded memory
	// growth. Per-camera detection loops produce; one worker consumes.
	alerts     chan *models.DetectionResult
	stopWorker chan struct{}
	workerDone chan struct{}
}

// New creates an orchestrator. publisher may be nil (alerts then degrade to
// log-only notification).
func New(cfg *config.Config, predictor models.Predictor, publisher models.MessagePublisher) (*Orchestrator, error) {
	store, err := alerting.NewStore(cfg.AlertsDir)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:       cfg,
		predictor: predictor,
		router:    alerting.NewRouter(cfg.AlertThreshold),
		store:     store,
		notifier:  alerting.NewNotifier(publisher, cfg.AlertsSubject),
		pipelines: make(map[string]*pipeline.VideoPipeline),
	}
	o.sources = func(cc models.CameraConfig) pipeline.FrameSource {
		return pipeline.NewVideoSource(cc.ID, cc.Source)
	}

	log.Info().
		Float64("alert_threshold", cfg.AlertThreshold).
		Str("alerts_dir", cfg.AlertsDir).
		Int("alert_queue_size", cfg.AlertQueueSize).
		Msg("Monitor orchestrator initialized")

	return o, nil
}

// SetSourceFactory overrides how frame sources are built.
func (o *Orchestrator) SetSourceFactory(f SourceFactory) {
	o.sources = f
}

// StartMonitoring creates and starts one pipeline per camera config, then
// the alert worker. A camera that fails to start is reported and skipped;
// the rest of the system comes up regardless.
func (o *Orchestrator) StartMonitoring(configs []models.CameraConfig) error {
	o.lifecycleMu.Lock()
	defer o.lifecycleMu.Unlock()

	if !o.running.CompareAndSwap(false, true) {
		return models.ErrAlreadyRunning
	}

	queueSize := o.cfg.AlertQueueSize
	if queueSize < 1 {
		queueSize = 1
	}

	failed := make(map[string]error)

	o.mu.Lock()
	o.alerts = make(chan *models.DetectionResult, queueSize)
	o.stopWorker = make(chan struct{})
	o.workerDone = make(chan struct{})
	o.startTime = time.Now()
	for _, cc := range configs {
		if _, dup := o.pipelines[cc.ID]; dup {
			failed[cc.ID] = fmt.Errorf("duplicate camera id %s", cc.ID)
			log.Error().Str("camera_id", cc.ID).Msg("Duplicate camera id in configs")
			continue
		}

		p := pipeline.New(pipeline.Options{
			CameraID:          cc.ID,
			SourceDesc:        cc.Source,
			Source:            o.sources(cc),
			Predictor:         o.predictor,
			FrameBufferSize:   o.cfg.FrameBufferSize,
			ResultBufferSize:  o.cfg.ResultBufferSize,
			HistorySize:       o.cfg.HistorySize,
			DetectionInterval: o.cfg.DetectionInterval,
			IdlePollInterval:  o.cfg.IdlePollInterval,
			StopTimeout:       o.cfg.StopTimeout,
			Threshold:         o.router.Threshold,
			OnAlert:           o.enqueueAlert,
		})

		if err := p.Start(); err != nil {
			failed[cc.ID] = err
			log.Error().Err(err).Str("camera_id", cc.ID).Msg("Camera failed to start")
			continue
		}
		o.pipelines[cc.ID] = p
	}
	active := len(o.pipelines)
	o.mu.Unlock()

	go o.runAlertWorker()

	log.Info().
		Int("active_cameras", active).
		Int("failed_cameras", len(failed)).
		Msg("Monitoring started")

	if len(failed) > 0 {
		return &models.PartialStartupError{Failed: failed}
	}
	return nil
}

// StopMonitoring stops every pipeline, continuing past individual failures,
// then drains and joins the alert worker. Idempotent.
func (o *Orchestrator) StopMonitoring() error {
	o.lifecycleMu.Lock()
	defer o.lifecycleMu.Unlock()

	if !o.running.CompareAndSwap(true, false) {
		return nil
	}

	o.mu.Lock()
	for id, p := range o.pipelines {
		if err := p.Stop(); err != nil {
			log.Error().Err(err).Str("camera_id", id).Msg("Failed to stop camera")
		}
	}
	o.pipelines = make(map[string]*pipeline.VideoPipeline)
	o.mu.Unlock()

	if o.stopWorker != nil {
		close(o.stopWorker)
		<-o.workerDone
	}

	log.Info().Msg("Monitoring stopped")
	return nil
}

// enqueueAlert hands an alert-worthy result to the worker without blocking
// the detection loop. When the queue is full the oldest pending alert is
// discarded to admit the new one.
func (o *Orchestrator) enqueueAlert(result *models.DetectionResult) {
	select {
	case o.alerts <- result:
		return
	default:
	}

	select {
	case dropped := <-o.alerts:
		log.Warn().
			Str("camera_id", dropped.CameraID).
			Time("timestamp", dropped.Timestamp).
			Msg("Alert queue full, dropped oldest pending alert")
	default:
	}

	select {
	case o.alerts <- result:
	default:
		// Another producer refilled the freed slot first.
		log.Warn().
			Str("camera_id", result.CameraID).
			Time("timestamp", result.Timestamp).
			Msg("Alert queue full, dropped incoming alert")
	}
}

// runAlertWorker drains the shared alert queue: persist, route, notify.
// Recoverable failures are logged and never terminate the worker.
func (o *Orchestrator) runAlertWorker() {
	defer close(o.workerDone)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Alert worker panic recovered")
		}
	}()

	for {
		select {
		case <-o.stopWorker:
			// Drain whatever is still pending, then exit.
			for {
				select {
				case result := <-o.alerts:
					o.handleAlert(result)
				default:
					return
				}
			}
		case result := <-o.alerts:
			o.handleAlert(result)
		}
	}
}

// handleAlert persists one record and performs the routed side effect.
// Persistence failure does not suppress routing; the alert is still
// escalated and the failure surfaced in logs.
func (o *Orchestrator) handleAlert(result *models.DetectionResult) {
	decision := o.router.Route(result)
	record := alerting.NewRecord(result, decision)

	if err := o.store.Save(record); err != nil {
		log.Error().
			Err(err).
			Str("alert_id", record.ID).
			Str("camera_id", result.CameraID).
			Msg("Failed to persist alert record")
	}

	switch decision {
	case models.RouteImmediate:
		o.notifier.Immediate(record)
	default:
		o.notifier.Routine(record)
	}
}

// GetSystemStatus reports the orchestrator snapshot.
func (o *Orchestrator) GetSystemStatus() models.SystemStatus {
	o.mu.RLock()
	ids := make([]string, 0, len(o.pipelines))
	for id := range o.pipelines {
		ids = append(ids, id)
	}
	pending := 0
	if o.alerts != nil {
		pending = len(o.alerts)
	}
	startTime := o.startTime
	o.mu.RUnlock()
	sort.Strings(ids)

	return models.SystemStatus{
		IsRunning:     o.running.Load(),
		ActiveCameras: ids,
		PendingAlerts: pending,
		StartTime:     startTime,
	}
}

// GetCameraStatus returns a point-in-time snapshot for one camera.
func (o *Orchestrator) GetCameraStatus(cameraID string) (models.CameraStatus, error) {
	o.mu.RLock()
	p, ok := o.pipelines[cameraID]
	o.mu.RUnlock()

	if !ok {
		return models.CameraStatus{}, fmt.Errorf("%w: %s", models.ErrNotFound, cameraID)
	}
	return p.Status(), nil
}

// GetAlertsHistory returns detection history inside tr. With a camera id it
// is that camera's history; otherwise all cameras' histories merged and
// stably sorted by timestamp (ties keep per-camera order).
func (o *Orchestrator) GetAlertsHistory(tr models.TimeRange, cameraID string) ([]*models.DetectionResult, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if cameraID != "" {
		p, ok := o.pipelines[cameraID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, cameraID)
		}
		return p.History(tr), nil
	}

	var merged []*models.DetectionResult
	for _, p := range o.pipelines {
		merged = append(merged, p.History(tr)...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})
	return merged, nil
}

// GetAlertsSummary aggregates the merged history window: total result count
// plus per-class detection counts.
func (o *Orchestrator) GetAlertsSummary(tr models.TimeRange) (models.AlertsSummary, error) {
	history, err := o.GetAlertsHistory(tr, "")
	if err != nil {
		return models.AlertsSummary{}, err
	}

	types := make(map[string]int)
	for _, result := range history {
		for _, det := range result.Detections {
			types[det.ClassName]++
		}
	}

	return models.AlertsSummary{
		TotalAlerts: len(history),
		AlertTypes:  types,
		TimeRange:   tr,
	}, nil
}

// UpdateAlertThreshold replaces the shared routing threshold. Takes effect
// on the next evaluated detection, no restart required.
func (o *Orchestrator) UpdateAlertThreshold(value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("alert threshold %v out of range [0, 1]", value)
	}

	old := o.router.Threshold()
	o.router.SetThreshold(value)
	log.Info().
		Float64("old_threshold", old).
		Float64("new_threshold", value).
		Msg("Alert threshold updated")
	return nil
}

// StreamLatestFrame pulls the newest unconsumed (frame, result) pair for a
// camera. Non-blocking; transports poll it on their own cadence.
func (o *Orchestrator) StreamLatestFrame(cameraID string) (models.FramePair, bool, error) {
	o.mu.RLock()
	p, ok := o.pipelines[cameraID]
	o.mu.RUnlock()

	if !ok {
		return models.FramePair{}, false, fmt.Errorf("%w: %s", models.ErrNotFound, cameraID)
	}

	pair, found := p.LatestPair()
	return pair, found, nil
}
