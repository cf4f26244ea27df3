package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/orbitwatch/orbitwatch/internal/api/models"
	"github.com/orbitwatch/orbitwatch/internal/api/response"
	"github.com/orbitwatch/orbitwatch/internal/geo"
	"github.com/orbitwatch/orbitwatch/internal/passes"
	"github.com/orbitwatch/orbitwatch/internal/satellite"
	"github.com/orbitwatch/orbitwatch/internal/tracker"
)

// Tracker runs tracking requests. Implemented by tracker.Service.
type Tracker interface {
	Track(ctx context.Context, req tracker.Request) (*tracker.Result, error)
}

// TrackHandler handles the JSON tracking endpoint.
type TrackHandler struct {
	tracker Tracker
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(t Tracker) *TrackHandler {
	return &TrackHandler{tracker: t}
}

// Track handles GET /v1/track?q=<place> or GET /v1/track?lat=<lat>&lon=<lon>.
func (h *TrackHandler) Track(w http.ResponseWriter, r *http.Request) {
	req, fieldErrs := parseTrackRequest(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid tracking request", fieldErrs)
		return
	}

	result, err := h.tracker.Track(r.Context(), req)
	if err != nil {
		writeTrackError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toTrackResponse(result))
}

// parseTrackRequest extracts the observer from query parameters. Coordinates
// must come as a pair; a bare place name is the common path.
func parseTrackRequest(r *http.Request) (tracker.Request, []models.FieldError) {
	q := r.URL.Query().Get("q")
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	if latStr == "" && lonStr == "" {
		if q == "" {
			return tracker.Request{}, []models.FieldError{
				{Field: "q", Message: "place name or lat/lon pair required", Code: "REQUIRED"},
			}
		}
		return tracker.Request{Query: q}, nil
	}

	var fieldErrs []models.FieldError
	if latStr == "" {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "lat", Message: "required with lon", Code: "REQUIRED"})
	}
	if lonStr == "" {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "lon", Message: "required with lat", Code: "REQUIRED"})
	}
	if len(fieldErrs) > 0 {
		return tracker.Request{}, fieldErrs
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "lat", Message: "must be a number", Code: "INVALID"})
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "lon", Message: "must be a number", Code: "INVALID"})
	}
	if len(fieldErrs) > 0 {
		return tracker.Request{}, fieldErrs
	}

	return tracker.Request{Latitude: &lat, Longitude: &lon}, nil
}

func writeTrackError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, geo.ErrNotFound):
		response.NotFound(w, r, "could not locate the requested place")
	case errors.Is(err, geo.ErrInvalidCoordinates):
		response.BadRequest(w, r, "coordinates out of range", []models.FieldError{
			{Field: "lat", Message: "must be between -90 and 90", Code: "OUT_OF_RANGE"},
			{Field: "lon", Message: "must be between -180 and 180", Code: "OUT_OF_RANGE"},
		})
	case errors.Is(err, satellite.ErrUnavailable):
		response.ServiceUnavailable(w, r, "live satellite position is temporarily unavailable")
	case errors.Is(err, passes.ErrInvalidLookahead), errors.Is(err, passes.ErrInvalidVisibility):
		response.BadRequest(w, r, err.Error(), nil)
	default:
		response.InternalError(w, r, "tracking request failed")
	}
}

func toTrackResponse(result *tracker.Result) models.TrackResponse {
	windows := make([]models.PassWindow, 0, len(result.Passes))
	for _, w := range result.Passes {
		windows = append(windows, models.PassWindow{
			StartTime:       models.Timestamp(w.StartTime),
			EndTime:         models.Timestamp(w.EndTime),
			DurationSeconds: int(w.Duration().Seconds()),
			MaxElevationDeg: w.MaxElevationDeg,
		})
	}

	members := make([]models.CrewMember, 0, len(result.Crew.Members))
	for _, m := range result.Crew.Members {
		members = append(members, models.CrewMember{
			Name:       m.Name,
			Craft:      m.Craft,
			ProfileURL: m.ProfileURL(),
		})
	}

	events := make([]models.ConjunctionEvent, 0, len(result.Conjunction.Events))
	for _, e := range result.Conjunction.Events {
		events = append(events, models.ConjunctionEvent{
			Object:         e.ObjectName,
			MissDistanceKm: e.MissDistanceKM,
			Probability:    e.Probability,
			RiskLevel:      string(e.Level),
			Time:           models.Timestamp(e.Time),
		})
	}

	var warnings []models.Warning
	if result.CrewUnavailable {
		provider := "open-notify"
		warnings = append(warnings, models.Warning{
			Code:     "CREW_UNAVAILABLE",
			Message:  "astronaut roster is temporarily unavailable",
			Provider: &provider,
		})
	}

	return models.TrackResponse{
		GeneratedAt: models.Timestamp(result.GeneratedAt),
		Observer: models.Observer{
			Name:     result.Observer.Name,
			Position: models.Point{Lat: result.Observer.Latitude, Lon: result.Observer.Longitude},
		},
		Satellite: models.Satellite{
			Position:      models.Point{Lat: result.Satellite.Latitude, Lon: result.Satellite.Longitude},
			AltitudeKm:    result.Satellite.AltitudeKM,
			VelocityKmh:   result.Satellite.VelocityKMH,
			ObservedAt:    models.Timestamp(result.Satellite.Timestamp),
			OverflyRegion: result.OverflyRegion,
		},
		Passes: models.Passes{
			Source:  string(result.PassSource),
			Windows: windows,
		},
		Crew: models.Crew{
			Count:       result.Crew.Count(),
			Unavailable: result.CrewUnavailable,
			Members:     members,
		},
		Conjunction: models.Conjunction{
			Probability:     result.Conjunction.Probability,
			RiskLevel:       string(result.Conjunction.RiskLevel),
			NearestObjectKm: result.Conjunction.NearestObjectDistanceKM,
			WindowDays:      result.Conjunction.WindowDays,
			Events:          events,
		},
		Warnings: warnings,
	}
}
