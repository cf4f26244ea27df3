// Package satellite fetches the tracked satellite's live position.
package satellite

import (
	"errors"
	"time"
)

// Satellite errors.
var (
	// ErrUnavailable means the live-position provider is down, timed out, or
	// returned a malformed response. There is no synthetic substitute for a
	// live position: the caller must treat it as absent.
	ErrUnavailable = errors.New("live position unavailable")
)

// ISSNoradID is the NORAD catalog number of the International Space Station.
const ISSNoradID = 25544

// State is a snapshot of the satellite's position and motion in canonical
// units (kilometres, km/h). Re-fetched on every request, never persisted.
type State struct {
	Latitude    float64
	Longitude   float64
	AltitudeKM  float64
	VelocityKMH float64
	Timestamp   time.Time
}
