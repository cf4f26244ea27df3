// Package config provides process configuration for the OrbitWatch dashboard.
// Configuration is read once at startup and treated as immutable afterwards:
// every component receives the values it needs at construction time instead of
// reading the environment ad hoc.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Environment is the deployment environment (development, production).
	Environment string

	// N2YOAPIKey authorizes calls to the N2YO pass-prediction service.
	// When empty, every pass request goes straight to the simulation fallback.
	N2YOAPIKey string

	// Provider base URLs. Defaults point at the public services; tests and
	// local setups override them.
	GeocoderBaseURL  string
	PositionBaseURL  string
	PassesBaseURL    string
	RosterBaseURL    string

	// Per-call timeouts for outbound provider requests. Every outbound call
	// is bounded so one stalled upstream cannot hang the whole request.
	GeocoderTimeout time.Duration
	PositionTimeout time.Duration
	PassesTimeout   time.Duration
	RosterTimeout   time.Duration

	// PassLookaheadDays is how far ahead pass prediction looks.
	PassLookaheadDays int

	// PassMinVisibilitySec is the minimum visible-pass duration requested
	// from the prediction service.
	PassMinVisibilitySec int

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string

	// TelemetryEnabled controls whether traces and metrics are exported.
	TelemetryEnabled bool
}

// FromEnv builds a Config from environment variables. A local .env file is
// loaded first when present; real environment variables take precedence.
func FromEnv() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		Port:                 envOr("APP_PORT", "8080"),
		Environment:          envOr("APP_ENV", "development"),
		N2YOAPIKey:           os.Getenv("N2YO_API_KEY"),
		GeocoderBaseURL:      envOr("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		PositionBaseURL:      envOr("POSITION_BASE_URL", "https://api.wheretheiss.at/v1"),
		PassesBaseURL:        envOr("PASSES_BASE_URL", "https://api.n2yo.com/rest/v1/satellite"),
		RosterBaseURL:        envOr("ROSTER_BASE_URL", "http://api.open-notify.org"),
		OTLPEndpoint:         envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:     os.Getenv("OTEL_ENABLED") == "true",
	}

	var err error
	if cfg.GeocoderTimeout, err = envDuration("GEOCODER_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PositionTimeout, err = envDuration("POSITION_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PassesTimeout, err = envDuration("PASSES_TIMEOUT", 8*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RosterTimeout, err = envDuration("ROSTER_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PassLookaheadDays, err = envInt("PASS_LOOKAHEAD_DAYS", 5); err != nil {
		return Config{}, err
	}
	if cfg.PassMinVisibilitySec, err = envInt("PASS_MIN_VISIBILITY_SEC", 300); err != nil {
		return Config{}, err
	}

	if cfg.PassLookaheadDays <= 0 {
		return Config{}, fmt.Errorf("PASS_LOOKAHEAD_DAYS must be positive, got %d", cfg.PassLookaheadDays)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
