package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitwatch/orbitwatch/internal/crew"
	"github.com/orbitwatch/orbitwatch/internal/geo"
	"github.com/orbitwatch/orbitwatch/internal/passes"
	"github.com/orbitwatch/orbitwatch/internal/satellite"
	"github.com/orbitwatch/orbitwatch/internal/tracker"
)

type stubGeo struct {
	matches   []geo.Match
	searchErr error
	address   *geo.Address
}

func (s *stubGeo) Search(_ context.Context, _ string) ([]geo.Match, error) {
	return s.matches, s.searchErr
}

func (s *stubGeo) Reverse(_ context.Context, _, _ float64) (*geo.Address, error) {
	return s.address, nil
}

func (s *stubGeo) Name() string { return "stub-geo" }

type stubSatellite struct {
	state *satellite.State
	err   error
}

func (s *stubSatellite) FetchCurrent(_ context.Context) (*satellite.State, error) {
	return s.state, s.err
}

func (s *stubSatellite) Name() string { return "stub-satellite" }

type stubPasses struct {
	windows []passes.Window
	err     error
}

func (s *stubPasses) GetPasses(_ context.Context, _, _ float64, _, _ int) ([]passes.Window, error) {
	return s.windows, s.err
}

func (s *stubPasses) Name() string { return "stub-passes" }

type stubCrew struct {
	members []crew.Member
	err     error
}

func (s *stubCrew) FetchRoster(_ context.Context) ([]crew.Member, error) {
	return s.members, s.err
}

func (s *stubCrew) Name() string { return "stub-crew" }

type fixture struct {
	geo       *stubGeo
	satellite *stubSatellite
	passes    *stubPasses
	crew      *stubCrew
}

func defaultFixture() *fixture {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return &fixture{
		geo: &stubGeo{
			matches: []geo.Match{{Latitude: 13.0827, Longitude: 80.2707, DisplayName: "Chennai, Tamil Nadu, India"}},
			address: &geo.Address{Ocean: "Indian Ocean"},
		},
		satellite: &stubSatellite{
			state: &satellite.State{
				Latitude:    -5.2,
				Longitude:   82.1,
				AltitudeKM:  417.5,
				VelocityKMH: 27580,
				Timestamp:   now,
			},
		},
		passes: &stubPasses{
			windows: []passes.Window{
				{
					StartTime:       now.Add(3 * time.Hour),
					EndTime:         now.Add(3*time.Hour + 6*time.Minute),
					MaxElevationDeg: 64.2,
					Source:          passes.SourceAPI,
				},
			},
		},
		crew: &stubCrew{
			members: []crew.Member{
				{Name: "Jasmin Moghbeli", Craft: "ISS"},
				{Name: "Andreas Mogensen", Craft: "ISS"},
			},
		},
	}
}

func newService(t *testing.T, f *fixture) *tracker.Service {
	t.Helper()
	logger := zerolog.Nop()
	timeouts := tracker.Timeouts{
		Geocoder: time.Second,
		Position: time.Second,
		Passes:   time.Second,
		Roster:   time.Second,
	}
	return tracker.NewService(tracker.ServiceConfig{
		Geo:              geo.NewService(geo.ServiceConfig{Provider: f.geo, Logger: logger}),
		Satellite:        satellite.NewService(satellite.ServiceConfig{Provider: f.satellite, Logger: logger}),
		Passes:           passes.NewService(passes.ServiceConfig{Provider: f.passes, Logger: logger}),
		Crew:             crew.NewService(crew.ServiceConfig{Provider: f.crew, Logger: logger}),
		Logger:           logger,
		Timeouts:         timeouts,
		LookaheadDays:    5,
		MinVisibilitySec: 300,
		Now:              func() time.Time { return time.Date(2026, 3, 14, 9, 0, 1, 0, time.UTC) },
	})
}

func TestTrackHappyPath(t *testing.T) {
	f := defaultFixture()
	svc := newService(t, f)

	result, err := svc.Track(context.Background(), tracker.Request{Query: "Chennai"})
	require.NoError(t, err)

	assert.Equal(t, "Chennai, Tamil Nadu, India", result.Observer.Name)
	assert.InDelta(t, 13.0827, result.Observer.Latitude, 1e-9)
	assert.InDelta(t, 417.5, result.Satellite.AltitudeKM, 1e-9)
	assert.Equal(t, "Over the Indian Ocean", result.OverflyRegion)
	assert.Equal(t, passes.SourceAPI, result.PassSource)
	require.Len(t, result.Passes, 1)
	assert.Equal(t, 2, result.Crew.Count())
	assert.False(t, result.CrewUnavailable)
	assert.NotEmpty(t, result.Conjunction.RiskLevel)
	require.NotNil(t, result.Map)
	assert.Contains(t, string(result.Map.HTML), "L.marker")
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 1, 0, time.UTC), result.GeneratedAt)
}

func TestTrackUnknownPlaceFails(t *testing.T) {
	f := defaultFixture()
	f.geo.matches = nil
	svc := newService(t, f)

	_, err := svc.Track(context.Background(), tracker.Request{Query: "Atlantis"})
	assert.ErrorIs(t, err, geo.ErrNotFound)
}

func TestTrackEmptyQueryFails(t *testing.T) {
	svc := newService(t, defaultFixture())

	_, err := svc.Track(context.Background(), tracker.Request{Query: "   "})
	assert.ErrorIs(t, err, geo.ErrNotFound)
}

func TestTrackPositionUnavailableAborts(t *testing.T) {
	f := defaultFixture()
	f.satellite.state = nil
	f.satellite.err = errors.New("upstream down")
	svc := newService(t, f)

	_, err := svc.Track(context.Background(), tracker.Request{Query: "Chennai"})
	assert.ErrorIs(t, err, satellite.ErrUnavailable)
}

func TestTrackCrewFailureDegrades(t *testing.T) {
	f := defaultFixture()
	f.crew.err = errors.New("roster down")
	svc := newService(t, f)

	result, err := svc.Track(context.Background(), tracker.Request{Query: "Chennai"})
	require.NoError(t, err)

	assert.True(t, result.CrewUnavailable)
	require.NotNil(t, result.Crew)
	assert.Equal(t, 0, result.Crew.Count())
}

func TestTrackPassProviderFailureFallsBackToSimulation(t *testing.T) {
	f := defaultFixture()
	f.passes.windows = nil
	f.passes.err = errors.New("quota exhausted")
	svc := newService(t, f)

	result, err := svc.Track(context.Background(), tracker.Request{Query: "Chennai"})
	require.NoError(t, err)

	assert.Equal(t, passes.SourceSimulated, result.PassSource)
	assert.NotEmpty(t, result.Passes)
}

func TestTrackExplicitCoordinates(t *testing.T) {
	f := defaultFixture()
	svc := newService(t, f)

	lat, lon := 13.0827, 80.2707
	result, err := svc.Track(context.Background(), tracker.Request{Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)

	assert.InDelta(t, lat, result.Observer.Latitude, 1e-9)
	assert.InDelta(t, lon, result.Observer.Longitude, 1e-9)
	// The observer label comes from reverse geocoding, not a search query.
	assert.Equal(t, "Over the Indian Ocean", result.Observer.Name)
}

func TestTrackExplicitCoordinatesOutOfRange(t *testing.T) {
	svc := newService(t, defaultFixture())

	lat, lon := 95.0, 80.0
	_, err := svc.Track(context.Background(), tracker.Request{Latitude: &lat, Longitude: &lon})
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinates)
}

func TestTrackConjunctionIsDeterministic(t *testing.T) {
	f := defaultFixture()
	svc := newService(t, f)

	first, err := svc.Track(context.Background(), tracker.Request{Query: "Chennai"})
	require.NoError(t, err)
	second, err := svc.Track(context.Background(), tracker.Request{Query: "Chennai"})
	require.NoError(t, err)

	assert.Equal(t, first.Conjunction, second.Conjunction)
}
