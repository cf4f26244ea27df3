// Package wheretheiss implements the satellite.Provider interface against the
// wheretheiss.at live-position API.
package wheretheiss

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/provider/resilience"
	"github.com/orbitwatch/orbitwatch/internal/satellite"
)

const (
	// ProviderName identifies this live-position provider.
	ProviderName = "wheretheiss"

	// DefaultBaseURL is the wheretheiss.at API base URL.
	DefaultBaseURL = "https://api.wheretheiss.at/v1"

	// milesToKM converts statute miles to kilometres.
	milesToKM = 1.609344
)

// ClientConfig holds configuration for the wheretheiss.at client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional).
	BaseURL string

	// NoradID is the satellite to track (optional, defaults to the ISS).
	NoradID int

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a wheretheiss.at API client tracking one fixed satellite.
type Client struct {
	baseURL    string
	noradID    int
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new wheretheiss.at client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	noradID := cfg.NoradID
	if noradID == 0 {
		noradID = satellite.ISSNoradID
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		noradID:    noradID,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// FetchCurrent fetches the satellite's current position. Kilometre units are
// requested explicitly; if the provider answers in miles anyway, altitude and
// velocity are converted at this boundary.
func (c *Client) FetchCurrent(ctx context.Context) (*satellite.State, error) {
	url := fmt.Sprintf("%s/satellites/%d?units=kilometers", c.baseURL, c.noradID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var pos positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&pos); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if pos.Timestamp == 0 {
		return nil, fmt.Errorf("response missing timestamp")
	}

	altitude := pos.Altitude
	velocity := pos.Velocity
	if pos.Units == "miles" {
		altitude *= milesToKM
		velocity *= milesToKM
	}

	return &satellite.State{
		Latitude:    pos.Latitude,
		Longitude:   pos.Longitude,
		AltitudeKM:  altitude,
		VelocityKMH: velocity,
		Timestamp:   time.Unix(pos.Timestamp, 0).UTC(),
	}, nil
}

// wheretheiss.at API response structure.

type positionResponse struct {
	Name      string  `json:"name"`
	ID        int     `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Velocity  float64 `json:"velocity"`
	Timestamp int64   `json:"timestamp"`
	Units     string  `json:"units"`
}
