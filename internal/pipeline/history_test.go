package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vulcan-monitor-go/internal/models"
)

func resultAt(ts time.Time) *models.DetectionResult {
	return &models.DetectionResult{
		Timestamp: ts,
		CameraID:  "cam-1",
	}
}

func TestHistoryEvictsOldestAtCapacity(t *testing.T) {
	h := newHistoryLog(3)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		h.Append(resultAt(base.Add(time.Duration(i) * time.Second)))
	}

	require.Equal(t, 3, h.Len())

	all := h.Filter(models.TimeRange{})
	require.Len(t, all, 3)
	assert.Equal(t, base.Add(2*time.Second), all[0].Timestamp, "oldest surviving entry")
	assert.Equal(t, base.Add(4*time.Second), all[2].Timestamp, "newest entry last")
}

func TestHistoryFilterBoundsAreInclusive(t *testing.T) {
	h := newHistoryLog(10)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		h.Append(resultAt(base.Add(time.Duration(i) * time.Second)))
	}

	start := base.Add(1 * time.Second)
	end := base.Add(3 * time.Second)
	got := h.Filter(models.TimeRange{Start: &start, End: &end})

	require.Len(t, got, 3)
	assert.Equal(t, start, got[0].Timestamp)
	assert.Equal(t, end, got[2].Timestamp)
}

func TestHistoryFilterOpenEnds(t *testing.T) {
	h := newHistoryLog(10)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		h.Append(resultAt(base.Add(time.Duration(i) * time.Second)))
	}

	start := base.Add(1 * time.Second)
	got := h.Filter(models.TimeRange{Start: &start})
	assert.Len(t, got, 2, "open end includes everything after start")

	end := base.Add(1 * time.Second)
	got = h.Filter(models.TimeRange{End: &end})
	assert.Len(t, got, 2, "open start includes everything up to end")
}
