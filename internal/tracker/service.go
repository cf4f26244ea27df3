// Package tracker orchestrates a full tracking request: observer resolution,
// live satellite position, pass prediction, crew roster and the conjunction
// estimate, assembled into one result.
package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/conjunction"
	"github.com/orbitwatch/orbitwatch/internal/crew"
	"github.com/orbitwatch/orbitwatch/internal/geo"
	"github.com/orbitwatch/orbitwatch/internal/geomap"
	"github.com/orbitwatch/orbitwatch/internal/passes"
	"github.com/orbitwatch/orbitwatch/internal/satellite"
	"github.com/orbitwatch/orbitwatch/internal/telemetry"
)

// Request identifies the observer, either by free-text place name or by
// explicit coordinates. Coordinates win when both are set.
type Request struct {
	Query     string
	Latitude  *float64
	Longitude *float64
}

// Result is the assembled output of one tracking request.
type Result struct {
	Observer      geo.Location
	Satellite     satellite.State
	OverflyRegion string

	Passes     []passes.Window
	PassSource passes.Source

	Crew            *crew.Roster
	CrewUnavailable bool

	Conjunction conjunction.Estimate

	Map *geomap.Map

	GeneratedAt time.Time
}

// Timeouts bounds each outbound step of a tracking request.
type Timeouts struct {
	Geocoder time.Duration
	Position time.Duration
	Passes   time.Duration
	Roster   time.Duration
}

// ServiceConfig holds configuration for the tracker service.
type ServiceConfig struct {
	Geo       *geo.Service
	Satellite *satellite.Service
	Passes    *passes.Service
	Crew      *crew.Service

	Logger   zerolog.Logger
	Timeouts Timeouts

	// Metrics records per-step upstream call durations. Optional.
	Metrics *telemetry.ProviderMetrics

	// LookaheadDays and MinVisibilitySec are passed through to pass
	// prediction.
	LookaheadDays    int
	MinVisibilitySec int

	// Now is the clock; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// Service runs tracking requests.
type Service struct {
	geo       *geo.Service
	satellite *satellite.Service
	passes    *passes.Service
	crew      *crew.Service

	logger   zerolog.Logger
	timeouts Timeouts
	metrics  *telemetry.ProviderMetrics

	lookaheadDays    int
	minVisibilitySec int
	now              func() time.Time
}

// NewService creates a new tracker service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		geo:              cfg.Geo,
		satellite:        cfg.Satellite,
		passes:           cfg.Passes,
		crew:             cfg.Crew,
		logger:           cfg.Logger,
		timeouts:         cfg.Timeouts,
		metrics:          cfg.Metrics,
		lookaheadDays:    cfg.LookaheadDays,
		minVisibilitySec: cfg.MinVisibilitySec,
		now:              now,
	}
}

// Track runs the full pipeline for one request.
//
// Observer resolution and the live position fetch are sequential and fatal:
// a request with no observer or no satellite position has nothing to show.
// Pass prediction and the crew roster then run concurrently; the roster
// degrades to empty on failure while everything downstream continues.
func (s *Service) Track(ctx context.Context, req Request) (*Result, error) {
	observer, err := s.resolveObserver(ctx, req)
	if err != nil {
		return nil, err
	}

	state, err := s.fetchPosition(ctx)
	if err != nil {
		return nil, err
	}

	var (
		wg sync.WaitGroup

		windows  []passes.Window
		passErr  error
		roster   *crew.Roster
		crewErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		passCtx, cancel := context.WithTimeout(ctx, s.timeouts.Passes)
		defer cancel()
		start := time.Now()
		windows, passErr = s.passes.Predict(passCtx, *observer, s.lookaheadDays, s.minVisibilitySec)
		s.metrics.RecordRequest("passes", "predict", time.Since(start), passErr)
	}()
	go func() {
		defer wg.Done()
		crewCtx, cancel := context.WithTimeout(ctx, s.timeouts.Roster)
		defer cancel()
		start := time.Now()
		roster, crewErr = s.crew.FetchRoster(crewCtx)
		s.metrics.RecordRequest("roster", "fetch", time.Since(start), crewErr)
	}()
	wg.Wait()

	if passErr != nil {
		return nil, passErr
	}

	crewUnavailable := crewErr != nil
	if crewUnavailable {
		s.logger.Warn().Err(crewErr).Msg("crew roster degraded to empty")
	}

	regionCtx, cancel := context.WithTimeout(ctx, s.timeouts.Geocoder)
	region := s.geo.ReverseResolve(regionCtx, state.Latitude, state.Longitude)
	cancel()

	mapView, err := geomap.Render(
		geomap.Marker{Label: observer.Name, Latitude: observer.Latitude, Longitude: observer.Longitude},
		geomap.Marker{Label: "ISS", Latitude: state.Latitude, Longitude: state.Longitude},
	)
	if err != nil {
		// Both markers are always present, so this only trips on a
		// template regression.
		s.logger.Error().Err(err).Msg("map render failed")
	}

	return &Result{
		Observer:        *observer,
		Satellite:       *state,
		OverflyRegion:   region,
		Passes:          windows,
		PassSource:      dominantSource(windows),
		Crew:            roster,
		CrewUnavailable: crewUnavailable,
		Conjunction:     conjunction.EstimateFor(*state),
		Map:             mapView,
		GeneratedAt:     s.now().UTC(),
	}, nil
}

func (s *Service) resolveObserver(ctx context.Context, req Request) (*geo.Location, error) {
	if req.Latitude != nil && req.Longitude != nil {
		lat, lon := *req.Latitude, *req.Longitude
		if !geo.ValidCoordinates(lat, lon) {
			return nil, geo.ErrInvalidCoordinates
		}
		geoCtx, cancel := context.WithTimeout(ctx, s.timeouts.Geocoder)
		defer cancel()
		name := s.geo.ReverseResolve(geoCtx, lat, lon)
		return &geo.Location{Name: name, Latitude: lat, Longitude: lon}, nil
	}

	geoCtx, cancel := context.WithTimeout(ctx, s.timeouts.Geocoder)
	defer cancel()
	start := time.Now()
	loc, err := s.geo.Resolve(geoCtx, req.Query)
	s.metrics.RecordRequest("geocoder", "resolve", time.Since(start), err)
	return loc, err
}

func (s *Service) fetchPosition(ctx context.Context) (*satellite.State, error) {
	posCtx, cancel := context.WithTimeout(ctx, s.timeouts.Position)
	defer cancel()
	start := time.Now()
	state, err := s.satellite.FetchCurrent(posCtx)
	s.metrics.RecordRequest("position", "fetch", time.Since(start), err)
	return state, err
}

// dominantSource reports where the pass windows came from. The pipeline
// produces a single source per request, so the first window decides.
func dominantSource(windows []passes.Window) passes.Source {
	if len(windows) == 0 {
		return SourceNone
	}
	return windows[0].Source
}

// SourceNone marks a result with no pass windows at all. It does not occur
// for valid requests because prediction always falls back to simulation.
const SourceNone passes.Source = "none"
