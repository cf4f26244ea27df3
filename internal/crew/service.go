package crew

import (
	"context"

	"github.com/rs/zerolog"
)

// Provider defines the interface for astronaut roster providers.
type Provider interface {
	// FetchRoster returns everyone currently in space.
	FetchRoster(ctx context.Context) ([]Member, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the crew service.
type ServiceConfig struct {
	Provider Provider
	Logger   zerolog.Logger
}

// Service fetches the astronaut roster. It never fails hard: a provider
// failure yields an empty roster alongside ErrUnavailable so the caller can
// render the section as unavailable instead of failing the request.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new crew service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// FetchRoster returns the current roster. On provider failure the returned
// roster is empty, never nil, and the error is ErrUnavailable.
func (s *Service) FetchRoster(ctx context.Context) (*Roster, error) {
	members, err := s.provider.FetchRoster(ctx)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Msg("astronaut roster fetch failed")
		return &Roster{Members: []Member{}}, ErrUnavailable
	}

	return &Roster{Members: members}, nil
}
