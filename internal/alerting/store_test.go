package alerting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vulcan-monitor-go/internal/models"
)

func TestStoreSaveWritesOneFilePerRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	result := &models.DetectionResult{
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		CameraID:  "cam-1",
		Detections: []models.Detection{
			{ClassName: "smoke", Confidence: 0.92},
		},
	}

	rec := NewRecord(result, models.RouteImmediate)
	require.NoError(t, store.Save(rec))

	path := filepath.Join(dir, rec.ID+".json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded models.AlertRecord
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, rec.ID, loaded.ID)
	assert.Equal(t, models.RouteImmediate, loaded.Decision)
	assert.Equal(t, "cam-1", loaded.Result.CameraID)
	assert.Equal(t, "smoke", loaded.Result.Detections[0].ClassName)
}

func TestNewRecordIDsAreUnique(t *testing.T) {
	result := &models.DetectionResult{
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		CameraID:  "cam-1",
	}

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		rec := NewRecord(result, models.RouteRoutine)
		_, dup := seen[rec.ID]
		require.False(t, dup, "duplicate id %s", rec.ID)
		seen[rec.ID] = struct{}{}
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "alerts")
	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
