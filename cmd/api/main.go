// Package main provides the entrypoint for the OrbitWatch server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/api"
	"github.com/orbitwatch/orbitwatch/internal/api/middleware"
	"github.com/orbitwatch/orbitwatch/internal/config"
	"github.com/orbitwatch/orbitwatch/internal/crew"
	"github.com/orbitwatch/orbitwatch/internal/crew/opennotify"
	"github.com/orbitwatch/orbitwatch/internal/geo"
	"github.com/orbitwatch/orbitwatch/internal/geo/nominatim"
	"github.com/orbitwatch/orbitwatch/internal/passes"
	"github.com/orbitwatch/orbitwatch/internal/passes/n2yo"
	"github.com/orbitwatch/orbitwatch/internal/provider/resilience"
	"github.com/orbitwatch/orbitwatch/internal/satellite"
	"github.com/orbitwatch/orbitwatch/internal/satellite/wheretheiss"
	"github.com/orbitwatch/orbitwatch/internal/telemetry"
	"github.com/orbitwatch/orbitwatch/internal/tracker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "orbitwatch"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting OrbitWatch")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	// One resilient HTTP client per upstream, registered for the ops status
	// endpoint.
	registry := resilience.NewRegistry()

	geocoderHTTP := newProviderClient(nominatim.ProviderName, cfg.GeocoderTimeout, registry)
	positionHTTP := newProviderClient(wheretheiss.ProviderName, cfg.PositionTimeout, registry)
	rosterHTTP := newProviderClient(opennotify.ProviderName, cfg.RosterTimeout, registry)

	geoService := geo.NewService(geo.ServiceConfig{
		Provider: nominatim.NewClient(nominatim.ClientConfig{
			BaseURL:    cfg.GeocoderBaseURL,
			HTTPClient: geocoderHTTP,
		}),
		Logger: log,
	})

	satelliteService := satellite.NewService(satellite.ServiceConfig{
		Provider: wheretheiss.NewClient(wheretheiss.ClientConfig{
			BaseURL:    cfg.PositionBaseURL,
			HTTPClient: positionHTTP,
		}),
		Logger: log,
	})

	// Pass prediction only talks to N2YO when a key is configured; without
	// one, every request uses the simulated schedule.
	var passProvider passes.Provider
	if cfg.N2YOAPIKey != "" {
		passesHTTP := newProviderClient(n2yo.ProviderName, cfg.PassesTimeout, registry)
		passProvider = n2yo.NewClient(n2yo.ClientConfig{
			APIKey:     cfg.N2YOAPIKey,
			BaseURL:    cfg.PassesBaseURL,
			HTTPClient: passesHTTP,
		})
		log.Info().Msg("N2YO pass prediction enabled")
	} else {
		log.Warn().Msg("no N2YO API key configured, pass predictions will be simulated")
	}

	passService := passes.NewService(passes.ServiceConfig{
		Provider: passProvider,
		Logger:   log,
	})

	crewService := crew.NewService(crew.ServiceConfig{
		Provider: opennotify.NewClient(opennotify.ClientConfig{
			BaseURL:    cfg.RosterBaseURL,
			HTTPClient: rosterHTTP,
		}),
		Logger: log,
	})

	trackerService := tracker.NewService(tracker.ServiceConfig{
		Geo:       geoService,
		Satellite: satelliteService,
		Passes:    passService,
		Crew:      crewService,
		Logger:    log,
		Metrics:   providerMetrics,
		Timeouts: tracker.Timeouts{
			Geocoder: cfg.GeocoderTimeout,
			Position: cfg.PositionTimeout,
			Passes:   cfg.PassesTimeout,
			Roster:   cfg.RosterTimeout,
		},
		LookaheadDays:    cfg.PassLookaheadDays,
		MinVisibilitySec: cfg.PassMinVisibilitySec,
	})
	log.Info().Msg("tracker service initialized")

	// Create router with configuration
	router, err := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Tracker:     trackerService,
		Registry:    registry,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func newProviderClient(name string, timeout time.Duration, registry *resilience.Registry) *resilience.Client {
	clientCfg := resilience.DefaultClientConfig(name)
	if timeout > 0 {
		clientCfg.Timeout = timeout
	}
	client := resilience.NewClient(clientCfg)
	registry.Register(name, client)
	return client
}
