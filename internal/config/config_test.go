package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "monitor-1", cfg.MonitorID)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
	assert.Equal(t, "inference.anomaly", cfg.InferenceSubject)
	assert.Equal(t, 0.8, cfg.AlertThreshold)
	assert.Equal(t, 1000, cfg.AlertQueueSize)
	assert.Equal(t, 30, cfg.FrameBufferSize)
	assert.Equal(t, 1000, cfg.HistorySize)
	assert.Equal(t, 500*time.Millisecond, cfg.DetectionInterval)
	assert.Equal(t, 10*time.Millisecond, cfg.IdlePollInterval)
	assert.Equal(t, 80, cfg.JPEGQuality)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MONITOR_ID", "station-7")
	t.Setenv("PORT", "9000")
	t.Setenv("ALERT_THRESHOLD", "0.65")
	t.Setenv("DETECTION_INTERVAL", "250ms")
	t.Setenv("FRAME_BUFFER_SIZE", "60")
	t.Setenv("LOGDY_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "station-7", cfg.MonitorID)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 0.65, cfg.AlertThreshold)
	assert.Equal(t, 250*time.Millisecond, cfg.DetectionInterval)
	assert.Equal(t, 60, cfg.FrameBufferSize)
	assert.True(t, cfg.LogdyEnabled)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("ALERT_THRESHOLD", "high")
	t.Setenv("DETECTION_INTERVAL", "soon")

	cfg := Load()

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 0.8, cfg.AlertThreshold)
	assert.Equal(t, 500*time.Millisecond, cfg.DetectionInterval)
}
