// Package n2yo implements the passes.Provider interface against the N2YO
// visual-passes API.
package n2yo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/passes"
	"github.com/orbitwatch/orbitwatch/internal/provider/resilience"
	"github.com/orbitwatch/orbitwatch/internal/satellite"
)

const (
	// ProviderName identifies this pass-prediction provider.
	ProviderName = "n2yo"

	// DefaultBaseURL is the N2YO REST API base URL.
	DefaultBaseURL = "https://api.n2yo.com/rest/v1/satellite"
)

// ClientConfig holds configuration for the N2YO client.
type ClientConfig struct {
	// APIKey is the N2YO API key (required).
	APIKey string

	// BaseURL is the API base URL (optional).
	BaseURL string

	// NoradID is the satellite to predict passes for (optional, defaults to
	// the ISS).
	NoradID int

	// ObserverAltitudeM is the observer's altitude above sea level in metres
	// (optional, defaults to 0).
	ObserverAltitudeM int

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an N2YO API client.
type Client struct {
	apiKey     string
	baseURL    string
	noradID    int
	observerAlt int
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new N2YO client.
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
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		noradID:     noradID,
		observerAlt: cfg.ObserverAltitudeM,
		httpClient:  httpClient,
		logger:      cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetPasses fetches visual passes for the observer. Every failure mode,
// including the 403/429 responses N2YO uses for quota exhaustion, surfaces as
// an error so the service can fall through to simulation.
func (c *Client) GetPasses(ctx context.Context, lat, lon float64, days, minVisibilitySec int) ([]passes.Window, error) {
	reqURL := fmt.Sprintf("%s/visualpasses/%d/%.4f/%.4f/%d/%d/%d/?apiKey=%s",
		c.baseURL, c.noradID, lat, lon, c.observerAlt, days, minVisibilitySec,
		url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, fmt.Errorf("quota exhausted or access denied: status %d", resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body passesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	windows := make([]passes.Window, 0, len(body.Passes))
	for _, p := range body.Passes {
		if p.StartUTC == 0 || p.EndUTC == 0 {
			return nil, fmt.Errorf("pass entry missing timestamps")
		}
		windows = append(windows, passes.Window{
			StartTime:       time.Unix(p.StartUTC, 0).UTC(),
			EndTime:         time.Unix(p.EndUTC, 0).UTC(),
			MaxElevationDeg: p.MaxEl,
			Source:          passes.SourceAPI,
		})
	}

	return windows, nil
}

// N2YO API response structures.

type passesResponse struct {
	Info struct {
		SatID       int `json:"satid"`
		PassesCount int `json:"passescount"`
	} `json:"info"`
	Passes []struct {
		StartAz  float64 `json:"startAz"`
		StartUTC int64   `json:"startUTC"`
		MaxAz    float64 `json:"maxAz"`
		MaxEl    float64 `json:"maxEl"`
		MaxUTC   int64   `json:"maxUTC"`
		EndAz    float64 `json:"endAz"`
		EndUTC   int64   `json:"endUTC"`
		Duration int     `json:"duration"`
	} `json:"passes"`
}
