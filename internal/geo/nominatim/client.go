// Package nominatim implements the geo.Provider interface against the
// OpenStreetMap Nominatim geocoding API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/geo"
	"github.com/orbitwatch/orbitwatch/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "nominatim"

	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// userAgent identifies this service per the Nominatim usage policy.
	userAgent = "orbitwatch-dashboard/1.0"
)

// ClientConfig holds configuration for the Nominatim client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to the public instance).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Nominatim API client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Nominatim client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Search geocodes a free-text query. Matches come back in Nominatim's
// importance order, best first.
func (c *Client) Search(ctx context.Context, query string) ([]geo.Match, error) {
	reqURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=5&accept-language=en",
		c.baseURL, url.QueryEscape(query))

	var results []searchResult
	if err := c.getJSON(ctx, reqURL, &results); err != nil {
		return nil, err
	}

	matches := make([]geo.Match, 0, len(results))
	for _, r := range results {
		// Nominatim serialises coordinates as strings.
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing latitude %q: %w", r.Lat, err)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing longitude %q: %w", r.Lon, err)
		}
		matches = append(matches, geo.Match{
			Latitude:    lat,
			Longitude:   lon,
			DisplayName: r.DisplayName,
		})
	}

	return matches, nil
}

// Reverse looks up the address at the given coordinates. Returns nil with no
// error when Nominatim cannot geocode the point (open ocean).
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*geo.Address, error) {
	reqURL := fmt.Sprintf("%s/reverse?lat=%.6f&lon=%.6f&format=json&accept-language=en",
		c.baseURL, lat, lon)

	var result reverseResult
	if err := c.getJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	// Nominatim reports un-geocodable points as {"error": "..."} with 200.
	if result.Error != "" {
		return nil, nil
	}

	return &geo.Address{
		Ocean:        result.Address.Ocean,
		Sea:          result.Address.Sea,
		Water:        result.Address.Water,
		Bay:          result.Address.Bay,
		City:         result.Address.City,
		Town:         result.Address.Town,
		Village:      result.Address.Village,
		Municipality: result.Address.Municipality,
		State:        result.Address.State,
		Country:      result.Address.Country,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// Nominatim API response structures.

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	Error   string `json:"error"`
	Address struct {
		Ocean        string `json:"ocean"`
		Sea          string `json:"sea"`
		Water        string `json:"water"`
		Bay          string `json:"bay"`
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		State        string `json:"state"`
		Country      string `json:"country"`
	} `json:"address"`
}
