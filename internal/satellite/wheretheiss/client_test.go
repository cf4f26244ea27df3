package wheretheiss_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitwatch/orbitwatch/internal/provider/resilience"
	"github.com/orbitwatch/orbitwatch/internal/satellite/wheretheiss"
)

func TestClient_FetchCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/satellites/25544", r.URL.Path)
		assert.Equal(t, "kilometers", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "iss",
			"id": 25544,
			"latitude": 50.11496269845,
			"longitude": 118.07898364098,
			"altitude": 408.05526028199,
			"velocity": 27635.971970874,
			"timestamp": 1364069476,
			"units": "kilometers"
		}`))
	}))
	defer server.Close()

	client := wheretheiss.NewClient(wheretheiss.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	state, err := client.FetchCurrent(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 50.11496269845, state.Latitude, 1e-9)
	assert.InDelta(t, 118.07898364098, state.Longitude, 1e-9)
	assert.InDelta(t, 408.05526028199, state.AltitudeKM, 1e-9)
	assert.InDelta(t, 27635.971970874, state.VelocityKMH, 1e-9)
	assert.Equal(t, time.Unix(1364069476, 0).UTC(), state.Timestamp)
}

func TestClient_FetchCurrent_MilesConverted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"latitude": 10.0,
			"longitude": 20.0,
			"altitude": 253.0,
			"velocity": 17150.0,
			"timestamp": 1364069476,
			"units": "miles"
		}`))
	}))
	defer server.Close()

	client := wheretheiss.NewClient(wheretheiss.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	state, err := client.FetchCurrent(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 253.0*1.609344, state.AltitudeKM, 1e-9)
	assert.InDelta(t, 17150.0*1.609344, state.VelocityKMH, 1e-9)
}

func TestClient_FetchCurrent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := wheretheiss.NewClient(wheretheiss.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.FetchCurrent(context.Background())
	require.Error(t, err)
}

func TestClient_FetchCurrent_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": "not-json`))
	}))
	defer server.Close()

	client := wheretheiss.NewClient(wheretheiss.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.FetchCurrent(context.Background())
	require.Error(t, err)
}

func TestClient_FetchCurrent_MissingTimestamp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": 1.0, "longitude": 2.0}`))
	}))
	defer server.Close()

	client := wheretheiss.NewClient(wheretheiss.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.FetchCurrent(context.Background())
	require.Error(t, err)
}
