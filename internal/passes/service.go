package passes

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/geo"
)

// Provider defines the interface for pass-prediction providers.
type Provider interface {
	// GetPasses fetches predicted passes for an observer location.
	GetPasses(ctx context.Context, lat, lon float64, days, minVisibilitySec int) ([]Window, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the pass-prediction service.
type ServiceConfig struct {
	// Provider is the primary prediction provider. When nil (no API key
	// configured), every request goes straight to the simulator.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Now is the clock; defaults to time.Now. Tests pin it.
	Now func() time.Time

	// Seed derives the simulator seed from the current time; defaults to
	// Unix seconds. Tests pin it for exact output.
	Seed func(now time.Time) int64
}

// Service predicts visible passes with a guaranteed fallback. The control
// flow is a visible two-step pipeline: attempt the provider, and on any
// defined failure (error, timeout, zero results) fall through to simulation.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	now      func() time.Time
	seed     func(now time.Time) int64
}

// NewService creates a new pass-prediction service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	seed := cfg.Seed
	if seed == nil {
		seed = func(t time.Time) int64 { return t.Unix() }
	}
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		now:      now,
		seed:     seed,
	}
}

// Predict returns upcoming visible passes over the location, ascending by
// start time, with no two windows starting within MinWindowGap of each other.
// The result is never empty for valid parameters.
func (s *Service) Predict(ctx context.Context, loc geo.Location, lookaheadDays, minVisibilitySec int) ([]Window, error) {
	if lookaheadDays <= 0 {
		return nil, ErrInvalidLookahead
	}
	if minVisibilitySec < 0 {
		return nil, ErrInvalidVisibility
	}

	now := s.now()

	if s.provider == nil {
		s.logger.Debug().Msg("no pass-prediction provider configured, simulating")
		return s.simulate(now, lookaheadDays), nil
	}

	windows, err := s.provider.GetPasses(ctx, loc.Latitude, loc.Longitude, lookaheadDays, minVisibilitySec)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Float64("lat", loc.Latitude).
			Float64("lon", loc.Longitude).
			Int("days", lookaheadDays).
			Msg("pass prediction failed, falling back to simulation")
		return s.simulate(now, lookaheadDays), nil
	}

	if len(windows) == 0 {
		s.logger.Info().
			Str("provider", s.provider.Name()).
			Msg("pass prediction returned no passes, falling back to simulation")
		return s.simulate(now, lookaheadDays), nil
	}

	return normalize(windows), nil
}

func (s *Service) simulate(now time.Time, lookaheadDays int) []Window {
	return normalize(Simulate(now, lookaheadDays, s.seed(now)))
}

// normalize sorts windows ascending by start time and collapses entries whose
// start times are within MinWindowGap, keeping the higher-elevation one.
func normalize(windows []Window) []Window {
	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	deduped := sorted[:0]
	for _, w := range sorted {
		if len(deduped) == 0 {
			deduped = append(deduped, w)
			continue
		}
		last := &deduped[len(deduped)-1]
		if w.StartTime.Sub(last.StartTime) < MinWindowGap {
			if w.MaxElevationDeg > last.MaxElevationDeg {
				*last = w
			}
			continue
		}
		deduped = append(deduped, w)
	}

	return deduped
}
