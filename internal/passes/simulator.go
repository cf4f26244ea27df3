package passes

import (
	"math"
	"math/rand"
	"time"
)

// Orbital parameters used by the synthetic schedule. The ISS completes an
// orbit roughly every 93 minutes; visible passes recur at multiples of that
// period, typically a handful per day around dawn and dusk.
const (
	orbitalPeriod = 93 * time.Minute

	simMinElevation = 10.0
	simMaxElevation = 85.0

	simMinDuration = 120 * time.Second
	simMaxDuration = 900 * time.Second

	maxSimulatedWindows = 10
)

// Simulate generates a synthetic but plausible pass schedule starting after
// start and spanning lookaheadDays. It is pure: the same start, lookahead and
// seed always produce the same windows. It always returns at least one
// window; this is the terminal fallback and must never fail.
func Simulate(start time.Time, lookaheadDays int, seed int64) []Window {
	if lookaheadDays <= 0 {
		lookaheadDays = 1
	}

	rng := rand.New(rand.NewSource(seed))
	horizon := start.Add(time.Duration(lookaheadDays) * 24 * time.Hour)

	// First pass within one to two orbits of the start.
	next := start.Add(orbitalPeriod + time.Duration(rng.Int63n(int64(orbitalPeriod))))

	windows := make([]Window, 0, maxSimulatedWindows)
	for len(windows) < maxSimulatedWindows {
		if len(windows) > 0 && next.After(horizon) {
			break
		}

		elevation := gaussianElevation(rng)
		duration := passDuration(rng, elevation)

		windows = append(windows, Window{
			StartTime:       next.UTC(),
			EndTime:         next.Add(duration).UTC(),
			MaxElevationDeg: elevation,
			Source:          SourceSimulated,
		})

		// Visible passes recur at whole-orbit spacing, but most orbits are
		// not visible from the ground; skip between 4 and 15 orbits.
		orbits := 4 + rng.Int63n(12)
		next = next.Add(time.Duration(orbits) * orbitalPeriod)
	}

	return windows
}

// gaussianElevation draws a max elevation centred on 45 degrees, clamped to
// the band a ground observer could plausibly see.
func gaussianElevation(rng *rand.Rand) float64 {
	elevation := rng.NormFloat64()*15 + 45
	elevation = math.Max(simMinElevation, math.Min(simMaxElevation, elevation))
	return math.Round(elevation*10) / 10
}

// passDuration scales with elevation: overhead passes stay visible longer.
func passDuration(rng *rand.Rand, elevation float64) time.Duration {
	jitter := time.Duration(rng.Int63n(121)-60) * time.Second
	d := simMinDuration + time.Duration(elevation*6)*time.Second + jitter
	if d < simMinDuration {
		return simMinDuration
	}
	if d > simMaxDuration {
		return simMaxDuration
	}
	return d
}
