package pipeline

import (
	"sync"

	"vulcan-monitor-go/internal/models"
)

// historyLog is a lossy, bounded append log of detection results. Insertion
// beyond the cap evicts the oldest entry. The detection loop is the only
// writer; status and history queries read snapshots from other goroutines.
type historyLog struct {
	mu      sync.RWMutex
	entries []*models.DetectionResult
	head    int
	count   int
}

func newHistoryLog(capacity int) *historyLog {
	if capacity < 1 {
		capacity = 1
	}
	return &historyLog{entries: make([]*models.DetectionResult, capacity)}
}

// Append records a result, evicting the oldest once the cap is reached.
func (h *historyLog) Append(result *models.DetectionResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == len(h.entries) {
		h.entries[h.head] = result
		h.head = (h.head + 1) % len(h.entries)
		return
	}

	tail := (h.head + h.count) % len(h.entries)
	h.entries[tail] = result
	h.count++
}

// Len returns the number of retained results.
func (h *historyLog) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Filter returns the retained results inside tr, oldest first. Results are
// immutable once produced, so sharing pointers across goroutines is safe.
func (h *historyLog) Filter(tr models.TimeRange) []*models.DetectionResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*models.DetectionResult, 0, h.count)
	for i := 0; i < h.count; i++ {
		entry := h.entries[(h.head+i)%len(h.entries)]
		if tr.Contains(entry.Timestamp) {
			out = append(out, entry)
		}
	}
	return out
}
