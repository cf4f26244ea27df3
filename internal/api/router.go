// Package api provides the HTTP API and dashboard for OrbitWatch.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/api/handler"
	"github.com/orbitwatch/orbitwatch/internal/api/middleware"
	"github.com/orbitwatch/orbitwatch/internal/provider/resilience"
	"github.com/orbitwatch/orbitwatch/web"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Tracker     handler.Tracker
	Registry    *resilience.Registry
}

// NewRouter creates a new chi router with the dashboard and API routes configured.
func NewRouter(cfg RouterConfig) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "orbitwatch"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry)
	trackHandler := handler.NewTrackHandler(cfg.Tracker)
	pagesHandler, err := handler.NewPagesHandler(cfg.Tracker, cfg.Logger)
	if err != nil {
		return nil, err
	}

	// Tracking fans out to four upstream services per request, so it gets the
	// tighter limit.
	trackRateLimit := middleware.RateLimitByIP(middleware.TrackRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	// Dashboard pages
	r.With(standardRateLimit).Get("/", pagesHandler.Index)
	r.With(trackRateLimit).Get("/track", pagesHandler.Track)
	r.Handle("/static/*", http.FileServer(http.FS(web.Content)))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.With(trackRateLimit).Get("/track", trackHandler.Track)

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})
	})

	return r, nil
}
