// Package passes predicts upcoming visible passes of the tracked satellite
// over an observer location. The primary path asks the N2YO service; any
// failure falls through to a synthetic schedule generator, so prediction as a
// whole never fails for a valid request.
package passes

import (
	"errors"
	"time"
)

// Passes errors.
var (
	ErrInvalidLookahead  = errors.New("lookahead days must be positive")
	ErrInvalidVisibility = errors.New("minimum visibility must not be negative")
)

// Source identifies where a pass window came from.
type Source string

const (
	// SourceAPI marks windows returned by the prediction service.
	SourceAPI Source = "api"

	// SourceSimulated marks windows produced by the fallback generator.
	SourceSimulated Source = "simulated"
)

// MinWindowGap is the minimum spacing between the start times of two distinct
// pass windows. Entries closer than this are duplicates of the same pass;
// the higher-elevation entry wins.
const MinWindowGap = 10 * time.Minute

// Window is one predicted visible pass over the observer.
type Window struct {
	StartTime       time.Time
	EndTime         time.Time
	MaxElevationDeg float64
	Source          Source
}

// Duration returns the length of the pass.
func (w Window) Duration() time.Duration {
	return w.EndTime.Sub(w.StartTime)
}
