package geo_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitwatch/orbitwatch/internal/geo"
)

type mockProvider struct {
	matches    []geo.Match
	searchErr  error
	address    *geo.Address
	reverseErr error
	calls      atomic.Int32
}

func (m *mockProvider) Search(_ context.Context, _ string) ([]geo.Match, error) {
	m.calls.Add(1)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.matches, nil
}

func (m *mockProvider) Reverse(_ context.Context, _, _ float64) (*geo.Address, error) {
	if m.reverseErr != nil {
		return nil, m.reverseErr
	}
	return m.address, nil
}

func (m *mockProvider) Name() string { return "mock" }

func newService(p geo.Provider) *geo.Service {
	return geo.NewService(geo.ServiceConfig{Provider: p, Logger: zerolog.Nop()})
}

func TestService_Resolve_FirstMatch(t *testing.T) {
	provider := &mockProvider{
		matches: []geo.Match{
			{Latitude: 13.0836939, Longitude: 80.270186, DisplayName: "Chennai, Tamil Nadu, India"},
			{Latitude: 40.0, Longitude: -73.0, DisplayName: "somewhere else"},
		},
	}

	loc, err := newService(provider).Resolve(context.Background(), "  Chennai  ")
	require.NoError(t, err)

	assert.Equal(t, "Chennai, Tamil Nadu, India", loc.Name)
	assert.InDelta(t, 13.0836939, loc.Latitude, 1e-9)
	assert.InDelta(t, 80.270186, loc.Longitude, 1e-9)
	assert.GreaterOrEqual(t, loc.Latitude, -90.0)
	assert.LessOrEqual(t, loc.Latitude, 90.0)
	assert.GreaterOrEqual(t, loc.Longitude, -180.0)
	assert.LessOrEqual(t, loc.Longitude, 180.0)
}

func TestService_Resolve_EmptyInputNoNetworkCall(t *testing.T) {
	provider := &mockProvider{}

	_, err := newService(provider).Resolve(context.Background(), "   ")
	require.ErrorIs(t, err, geo.ErrNotFound)
	assert.Equal(t, int32(0), provider.calls.Load())
}

func TestService_Resolve_NoMatches(t *testing.T) {
	provider := &mockProvider{matches: []geo.Match{}}

	_, err := newService(provider).Resolve(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, geo.ErrNotFound)
}

func TestService_Resolve_ProviderErrorIsNotFound(t *testing.T) {
	provider := &mockProvider{searchErr: errors.New("connection refused")}

	_, err := newService(provider).Resolve(context.Background(), "Chennai")
	assert.ErrorIs(t, err, geo.ErrNotFound)
}

func TestService_Resolve_OutOfRangeRejected(t *testing.T) {
	provider := &mockProvider{
		matches: []geo.Match{{Latitude: 120.0, Longitude: 80.0, DisplayName: "bogus"}},
	}

	_, err := newService(provider).Resolve(context.Background(), "bogus")
	assert.ErrorIs(t, err, geo.ErrNotFound)
}

func TestService_ReverseResolve_WaterPreferred(t *testing.T) {
	provider := &mockProvider{
		address: &geo.Address{Bay: "Bay of Bengal", City: "Chennai", Country: "India"},
	}

	label := newService(provider).ReverseResolve(context.Background(), 13.0, 80.5)
	assert.Equal(t, "Over the Bay of Bengal", label)
}

func TestService_ReverseResolve_CityCountry(t *testing.T) {
	provider := &mockProvider{
		address: &geo.Address{City: "Chennai", State: "Tamil Nadu", Country: "India"},
	}

	label := newService(provider).ReverseResolve(context.Background(), 13.08, 80.27)
	assert.Equal(t, "Chennai, India", label)
}

func TestService_ReverseResolve_OceanFallback(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"indian ocean", -20, 80, "Over the Indian Ocean"},
		{"south pacific", -30, -120, "Over the South Pacific Ocean"},
		{"north atlantic", 40, -40, "Over the North Atlantic Ocean"},
		{"south atlantic", -30, -20, "Over the South Atlantic Ocean"},
		{"polar", 75, 170, "Over the Polar Region"},
	}

	provider := &mockProvider{reverseErr: errors.New("unavailable")}
	service := newService(provider)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.ReverseResolve(context.Background(), tc.lat, tc.lon))
		})
	}
}

func TestService_ReverseResolve_NilAddress(t *testing.T) {
	provider := &mockProvider{address: nil}

	label := newService(provider).ReverseResolve(context.Background(), -20, 80)
	assert.Equal(t, "Over the Indian Ocean", label)
}
