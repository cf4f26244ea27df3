package satellite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitwatch/orbitwatch/internal/satellite"
)

type mockProvider struct {
	state *satellite.State
	err   error
}

func (m *mockProvider) FetchCurrent(_ context.Context) (*satellite.State, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.state, nil
}

func (m *mockProvider) Name() string { return "mock" }

func TestService_FetchCurrent(t *testing.T) {
	want := &satellite.State{
		Latitude:    50.1,
		Longitude:   118.1,
		AltitudeKM:  408.0,
		VelocityKMH: 27600.0,
		Timestamp:   time.Unix(1364069476, 0).UTC(),
	}

	service := satellite.NewService(satellite.ServiceConfig{
		Provider: &mockProvider{state: want},
		Logger:   zerolog.Nop(),
	})

	got, err := service.FetchCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_FetchCurrent_ProviderError(t *testing.T) {
	service := satellite.NewService(satellite.ServiceConfig{
		Provider: &mockProvider{err: errors.New("connection reset")},
		Logger:   zerolog.Nop(),
	})

	_, err := service.FetchCurrent(context.Background())
	assert.ErrorIs(t, err, satellite.ErrUnavailable)
}

func TestService_FetchCurrent_OutOfRange(t *testing.T) {
	service := satellite.NewService(satellite.ServiceConfig{
		Provider: &mockProvider{state: &satellite.State{Latitude: 91.0, Longitude: 0}},
		Logger:   zerolog.Nop(),
	})

	_, err := service.FetchCurrent(context.Background())
	assert.ErrorIs(t, err, satellite.ErrUnavailable)
}
