package passes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitwatch/orbitwatch/internal/geo"
	"github.com/orbitwatch/orbitwatch/internal/passes"
)

var (
	chennai = geo.Location{Name: "Chennai, India", Latitude: 13.0837, Longitude: 80.2702}
	now     = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
)

type mockProvider struct {
	windows []passes.Window
	err     error
}

func (m *mockProvider) GetPasses(_ context.Context, _, _ float64, _, _ int) ([]passes.Window, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.windows, nil
}

func (m *mockProvider) Name() string { return "mock" }

func newService(p passes.Provider) *passes.Service {
	return passes.NewService(passes.ServiceConfig{
		Provider: p,
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return now },
		Seed:     func(time.Time) int64 { return 42 },
	})
}

func apiWindow(start time.Time, elevation float64) passes.Window {
	return passes.Window{
		StartTime:       start,
		EndTime:         start.Add(8 * time.Minute),
		MaxElevationDeg: elevation,
		Source:          passes.SourceAPI,
	}
}

func TestService_Predict_APIPath(t *testing.T) {
	provider := &mockProvider{windows: []passes.Window{
		apiWindow(now.Add(4*time.Hour), 30),
		apiWindow(now.Add(2*time.Hour), 60),
	}}

	windows, err := newService(provider).Predict(context.Background(), chennai, 5, 300)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	// Ascending by start time.
	assert.True(t, windows[0].StartTime.Before(windows[1].StartTime))
	for _, w := range windows {
		assert.Equal(t, passes.SourceAPI, w.Source)
	}
}

func TestService_Predict_InvalidLookahead(t *testing.T) {
	_, err := newService(&mockProvider{}).Predict(context.Background(), chennai, 0, 300)
	assert.ErrorIs(t, err, passes.ErrInvalidLookahead)

	_, err = newService(&mockProvider{}).Predict(context.Background(), chennai, -3, 300)
	assert.ErrorIs(t, err, passes.ErrInvalidLookahead)
}

func TestService_Predict_InvalidVisibility(t *testing.T) {
	_, err := newService(&mockProvider{}).Predict(context.Background(), chennai, 5, -1)
	assert.ErrorIs(t, err, passes.ErrInvalidVisibility)
}

func TestService_Predict_ProviderErrorFallsBack(t *testing.T) {
	provider := &mockProvider{err: errors.New("upstream returned 500")}

	windows, err := newService(provider).Predict(context.Background(), chennai, 5, 300)
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	for _, w := range windows {
		assert.Equal(t, passes.SourceSimulated, w.Source)
	}
}

func TestService_Predict_EmptyResultFallsBack(t *testing.T) {
	provider := &mockProvider{windows: []passes.Window{}}

	windows, err := newService(provider).Predict(context.Background(), chennai, 5, 300)
	require.NoError(t, err)
	require.NotEmpty(t, windows)
	assert.Equal(t, passes.SourceSimulated, windows[0].Source)
}

func TestService_Predict_NoProviderSimulates(t *testing.T) {
	windows, err := newService(nil).Predict(context.Background(), chennai, 5, 300)
	require.NoError(t, err)
	require.NotEmpty(t, windows)
	assert.Equal(t, passes.SourceSimulated, windows[0].Source)
}

func TestService_Predict_FallbackDeterministicForPinnedClock(t *testing.T) {
	a, err := newService(nil).Predict(context.Background(), chennai, 5, 300)
	require.NoError(t, err)
	b, err := newService(nil).Predict(context.Background(), chennai, 5, 300)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestService_Predict_DeduplicatesOverlappingWindows(t *testing.T) {
	base := now.Add(3 * time.Hour)
	provider := &mockProvider{windows: []passes.Window{
		apiWindow(base, 30),
		apiWindow(base.Add(5*time.Minute), 70), // same pass, higher elevation
		apiWindow(base.Add(2*time.Hour), 40),
	}}

	windows, err := newService(provider).Predict(context.Background(), chennai, 5, 300)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	// The higher-elevation duplicate wins.
	assert.Equal(t, 70.0, windows[0].MaxElevationDeg)
	assert.Equal(t, 40.0, windows[1].MaxElevationDeg)
}

func TestService_Predict_MinimumGapProperty(t *testing.T) {
	provider := &mockProvider{err: errors.New("down")}

	windows, err := newService(provider).Predict(context.Background(), chennai, 7, 300)
	require.NoError(t, err)

	for i := 1; i < len(windows); i++ {
		gap := windows[i].StartTime.Sub(windows[i-1].StartTime)
		assert.GreaterOrEqual(t, gap, passes.MinWindowGap)
	}
}
