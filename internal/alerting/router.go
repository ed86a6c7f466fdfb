package alerting

import (
	"math"
	"sync/atomic"

	"vulcan-monitor-go/internal/models"
)

// dangerClasses are the detection classes eligible for immediate routing.
var dangerClasses = map[string]struct{}{
	"smoke":                 {},
	"spark":                 {},
	"overheat":              {},
	"unauthorized_charging": {},
	"cable_damage":          {},
}

// Router classifies detection results as immediate or routine. The decision
// is pure and deterministic: immediate iff any detection exceeds the current
// threshold and belongs to the danger set. The threshold is mutable at
// runtime without a pipeline restart.
type Router struct {
	threshold atomic.Uint64 // float64 bits
}

// NewRouter creates a router with the given initial threshold.
func NewRouter(threshold float64) *Router {
	r := &Router{}
	r.SetThreshold(threshold)
	return r
}

// Threshold returns the current alert threshold.
func (r *Router) Threshold() float64 {
	return math.Float64frombits(r.threshold.Load())
}

// SetThreshold replaces the threshold; it takes effect on the next
// evaluated detection.
func (r *Router) SetThreshold(value float64) {
	r.threshold.Store(math.Float64bits(value))
}

// Route classifies one detection result.
func (r *Router) Route(result *models.DetectionResult) models.RouteDecision {
	threshold := r.Threshold()
	for _, det := range result.Detections {
		if det.Confidence <= threshold {
			continue
		}
		if _, dangerous := dangerClasses[det.ClassName]; dangerous {
			return models.RouteImmediate
		}
	}
	return models.RouteRoutine
}
