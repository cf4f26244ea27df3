// Package conjunction computes a heuristic close-approach risk estimate for
// the tracked satellite against a fixed synthetic debris field.
//
// The numbers produced here are illustrative and educational only. The miss
// distance is a proxy built from altitude separation, orbital-plane
// separation and velocity deviation from nominal ISS parameters; the
// probability is a bounded inverse-exponential score, not a validated
// physical collision probability. Real conjunction assessment needs live
// tracking data this system does not have.
package conjunction

import (
	"math"
	"sort"
	"time"

	"github.com/orbitwatch/orbitwatch/internal/satellite"
)

// Nominal ISS orbit parameters the proxy measures deviation against.
const (
	nominalAltitudeKM  = 408.0
	nominalVelocityKMH = 27600.0
	issInclinationDeg  = 51.6

	// windowDays is the synthetic conjunction assessment window.
	windowDays = 3

	// distanceSigmaKM shapes the inverse-exponential probability falloff.
	distanceSigmaKM = 20.0

	// Risk level thresholds on the miss-distance proxy, in kilometres.
	highThresholdKM     = 10.0
	moderateThresholdKM = 30.0

	// inclinationScaleKM converts degrees of orbital-plane separation into
	// a kilometre-equivalent contribution to the proxy.
	inclinationScaleKM = 10.0
)

// RiskLevel categorizes the estimated risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// Event is one synthetic close-approach event within the window.
type Event struct {
	ObjectName     string
	MissDistanceKM float64
	Level          RiskLevel
	Probability    float64
	Time           time.Time
}

// Estimate is the aggregate risk assessment for one satellite state.
type Estimate struct {
	// Probability is a bounded heuristic score in [0,1].
	Probability float64

	// RiskLevel is derived from the nearest object's miss distance.
	RiskLevel RiskLevel

	// NearestObjectDistanceKM is the smallest miss-distance proxy.
	NearestObjectDistanceKM float64

	// Events lists every debris object, sorted by miss distance ascending.
	Events []Event

	// WindowDays is the assessment window length.
	WindowDays int
}

// Estimate computes the risk assessment for a satellite state. It is a pure
// function: identical input states produce identical estimates.
func EstimateFor(state satellite.State) Estimate {
	velocityDeviation := math.Abs(state.VelocityKMH-nominalVelocityKMH) / nominalVelocityKMH

	events := make([]Event, 0, len(debrisField))
	for i, obj := range debrisField {
		altDiff := math.Abs(obj.altitudeKM - state.AltitudeKM)
		incDiff := math.Abs(obj.inclinationDeg - issInclinationDeg)

		distance := math.Sqrt(altDiff*altDiff+inclinationScaleKM*incDiff*inclinationScaleKM*incDiff) * (1 + velocityDeviation)

		events = append(events, Event{
			ObjectName:     obj.name,
			MissDistanceKM: round2(distance),
			Level:          levelFor(distance),
			Probability:    round6(eventProbability(distance)),
			Time:           state.Timestamp.Add(eventOffset(i)),
		})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].MissDistanceKM < events[j].MissDistanceKM
	})

	nearest := events[0].MissDistanceKM
	return Estimate{
		Probability:             round6(overallProbability(nearest)),
		RiskLevel:               levelFor(nearest),
		NearestObjectDistanceKM: nearest,
		Events:                  events,
		WindowDays:              windowDays,
	}
}

func levelFor(distanceKM float64) RiskLevel {
	switch {
	case distanceKM < highThresholdKM:
		return RiskHigh
	case distanceKM < moderateThresholdKM:
		return RiskModerate
	default:
		return RiskLow
	}
}

// eventProbability mirrors the per-object score of the reference heuristic:
// gaussian falloff in distance, scaled down for display readability.
func eventProbability(distanceKM float64) float64 {
	return math.Exp(-(distanceKM*distanceKM)/(2*distanceSigmaKM*distanceSigmaKM)) * 1e-3
}

// overallProbability is a bounded inverse-exponential score in (0,1] over the
// nearest miss distance.
func overallProbability(nearestKM float64) float64 {
	return math.Exp(-nearestKM / (2 * distanceSigmaKM))
}

// eventOffset spreads events deterministically across the window, starting
// six hours in.
func eventOffset(index int) time.Duration {
	spanHours := windowDays*24 - 6
	hours := 6 + (index*13)%spanHours
	return time.Duration(hours) * time.Hour
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
