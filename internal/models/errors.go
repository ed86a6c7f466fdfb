package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable means a pipeline's video source could not be
	// opened. Fatal to that pipeline's start, never to its siblings.
	ErrSourceUnavailable = errors.New("video source unavailable")

	// ErrAlreadyRunning is returned by system-wide start when monitoring
	// is already active.
	ErrAlreadyRunning = errors.New("monitoring already running")

	// ErrNotRunning is returned by operations that require an active
	// monitoring session.
	ErrNotRunning = errors.New("monitoring not running")

	// ErrNotFound means an unknown camera id was used in a query.
	ErrNotFound = errors.New("camera not found")
)

// PartialStartupError reports cameras that failed to start while the rest of
// the system came up. It is informational: the orchestrator keeps running.
type PartialStartupError struct {
	Failed map[string]error
}

func (e *PartialStartupError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	return fmt.Sprintf("%d camera(s) failed to start: %s", len(e.Failed), strings.Join(ids, ", "))
}
