// Package geo resolves free-text place names to coordinates and labels the
// satellite's overfly region.
package geo

import "errors"

// Geo errors.
var (
	// ErrNotFound covers every way a place name can fail to resolve: empty
	// input, zero matches, upstream errors and timeouts. Callers see a single
	// "could not locate" outcome.
	ErrNotFound = errors.New("location not found")

	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Location is a resolved observer location. Immutable once resolved; an
// unresolvable name yields no Location at all, never a partial one.
type Location struct {
	// Name is the display name returned by the geocoder, not the raw query.
	Name string

	Latitude  float64
	Longitude float64
}

// Match is a single geocoder result, ordered by the provider's confidence.
type Match struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Address holds the reverse-geocoded address components used to label the
// region a satellite is currently over. All fields are optional.
type Address struct {
	Ocean        string
	Sea          string
	Water        string
	Bay          string
	City         string
	Town         string
	Village      string
	Municipality string
	State        string
	Country      string
}

// ValidCoordinates reports whether lat/lon are within range.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
