package satellite

import (
	"context"

	"github.com/rs/zerolog"
)

// Provider defines the interface for live-position providers.
type Provider interface {
	// FetchCurrent returns the satellite's current state in canonical units.
	FetchCurrent(ctx context.Context) (*State, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the satellite service.
type ServiceConfig struct {
	Provider Provider
	Logger   zerolog.Logger
}

// Service fetches the satellite's live position. It has no fallback: the
// position is live or absent.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new satellite service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// FetchCurrent returns the current satellite state, or ErrUnavailable when
// the provider fails or returns out-of-range coordinates.
func (s *Service) FetchCurrent(ctx context.Context) (*State, error) {
	state, err := s.provider.FetchCurrent(ctx)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Msg("live position fetch failed")
		return nil, ErrUnavailable
	}

	if state.Latitude < -90 || state.Latitude > 90 ||
		state.Longitude < -180 || state.Longitude > 180 {
		s.logger.Warn().
			Str("provider", s.provider.Name()).
			Float64("lat", state.Latitude).
			Float64("lon", state.Longitude).
			Msg("provider returned out-of-range position")
		return nil, ErrUnavailable
	}

	return state, nil
}
