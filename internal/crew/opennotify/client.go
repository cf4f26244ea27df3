// Package opennotify implements the crew.Provider interface against the Open
// Notify astronaut roster API.
package opennotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/crew"
	"github.com/orbitwatch/orbitwatch/internal/provider/resilience"
)

const (
	// ProviderName identifies this roster provider.
	ProviderName = "open-notify"

	// DefaultBaseURL is the Open Notify API base URL.
	DefaultBaseURL = "http://api.open-notify.org"
)

// ClientConfig holds configuration for the Open Notify client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open Notify API client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Open Notify client.
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

// FetchRoster fetches everyone currently in space.
func (c *Client) FetchRoster(ctx context.Context) ([]crew.Member, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/astros.json", http.NoBody)
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

	var body astrosResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	members := make([]crew.Member, 0, len(body.People))
	for _, p := range body.People {
		if p.Name == "" {
			return nil, fmt.Errorf("roster entry missing name")
		}
		members = append(members, crew.Member{
			Name:  p.Name,
			Craft: p.Craft,
		})
	}

	return members, nil
}

// Open Notify API response structure.

type astrosResponse struct {
	Number int `json:"number"`
	People []struct {
		Name  string `json:"name"`
		Craft string `json:"craft"`
	} `json:"people"`
}
