package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Search returns candidate matches for a free-text query, best first.
	Search(ctx context.Context, query string) ([]Match, error)

	// Reverse returns the address at the given coordinates, or nil when the
	// provider has nothing for them (open ocean).
	Reverse(ctx context.Context, lat, lon float64) (*Address, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the geo service.
type ServiceConfig struct {
	Provider Provider
	Logger   zerolog.Logger
}

// Service resolves place names through a geocoding provider.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new geo service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Resolve turns a free-text place name into a Location using the first
// (highest-confidence) geocoder match. Whitespace is trimmed; an empty query
// fails fast without a network call. Zero matches, upstream errors and
// timeouts all surface as ErrNotFound.
func (s *Service) Resolve(ctx context.Context, placeName string) (*Location, error) {
	query := strings.TrimSpace(placeName)
	if query == "" {
		return nil, ErrNotFound
	}

	matches, err := s.provider.Search(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Str("query", query).
			Msg("geocoding request failed")
		return nil, ErrNotFound
	}

	if len(matches) == 0 {
		s.logger.Debug().
			Str("query", query).
			Msg("geocoder returned no matches")
		return nil, ErrNotFound
	}

	best := matches[0]
	if !ValidCoordinates(best.Latitude, best.Longitude) {
		s.logger.Warn().
			Str("provider", s.provider.Name()).
			Float64("lat", best.Latitude).
			Float64("lon", best.Longitude).
			Msg("geocoder returned out-of-range coordinates")
		return nil, ErrNotFound
	}

	name := best.DisplayName
	if name == "" {
		name = query
	}

	return &Location{
		Name:      name,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
	}, nil
}

// ReverseResolve labels the region under the given coordinates. It prefers
// water-body names, then city/country, and falls back to a coarse ocean table
// when the geocoder has no address or fails. It always returns a label.
func (s *Service) ReverseResolve(ctx context.Context, lat, lon float64) string {
	if !ValidCoordinates(lat, lon) {
		return "Over an unknown area"
	}

	addr, err := s.provider.Reverse(ctx, lat, lon)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("reverse geocoding failed")
		return oceanLabel(lat, lon)
	}
	if addr == nil {
		return oceanLabel(lat, lon)
	}

	for _, water := range []string{addr.Ocean, addr.Sea, addr.Water, addr.Bay} {
		if water != "" {
			return "Over the " + water
		}
	}

	city := firstNonEmpty(addr.City, addr.Town, addr.Village, addr.Municipality)
	switch {
	case city != "" && addr.Country != "":
		return fmt.Sprintf("%s, %s", city, addr.Country)
	case addr.State != "" && addr.Country != "":
		return fmt.Sprintf("%s, %s", addr.State, addr.Country)
	case addr.Country != "":
		return addr.Country
	}

	return oceanLabel(lat, lon)
}

// oceanLabel guesses the ocean region for coordinates with no address.
func oceanLabel(lat, lon float64) string {
	switch {
	case lat >= -60 && lat <= 30 && lon >= 20 && lon <= 150:
		return "Over the Indian Ocean"
	case lat >= -60 && lat <= 60 && lon >= -180 && lon <= -70:
		return "Over the South Pacific Ocean"
	case lat >= 0 && lat <= 60 && lon >= -180 && lon <= -100:
		return "Over the North Pacific Ocean"
	case lat >= 0 && lon >= -100 && lon <= -20:
		return "Over the North Atlantic Ocean"
	case lat < 0 && lon >= -70 && lon <= 20:
		return "Over the South Atlantic Ocean"
	case lat > 60 || lat < -60:
		return "Over the Polar Region"
	default:
		return "Over an unknown area"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
