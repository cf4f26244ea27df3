package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/orbitwatch/orbitwatch/internal/api/response"
	"github.com/orbitwatch/orbitwatch/internal/geo"
	"github.com/orbitwatch/orbitwatch/internal/satellite"
	"github.com/orbitwatch/orbitwatch/internal/tracker"
	"github.com/orbitwatch/orbitwatch/web"
)

const pageTimeFormat = "Mon 02 Jan 2006 15:04"

// PagesHandler serves the HTML dashboard.
type PagesHandler struct {
	tracker   Tracker
	logger    zerolog.Logger
	templates *template.Template
}

// NewPagesHandler creates a new PagesHandler with templates parsed from the
// embedded assets.
func NewPagesHandler(t Tracker, logger zerolog.Logger) (*PagesHandler, error) {
	tmpl, err := template.ParseFS(web.Content, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}
	return &PagesHandler{
		tracker:   t,
		logger:    logger,
		templates: tmpl,
	}, nil
}

type indexData struct {
	Query string
	Error string
}

type errorData struct {
	Title   string
	Message string
}

type passRow struct {
	Start           string
	End             string
	Duration        string
	MaxElevationDeg float64
}

type crewRow struct {
	Name       string
	Craft      string
	ProfileURL string
}

type eventRow struct {
	Object         string
	MissDistanceKm float64
	RiskLevel      string
	Time           string
}

type resultsData struct {
	Query           string
	ObserverName    string
	ObserverLat     float64
	ObserverLon     float64
	SatLat          float64
	SatLon          float64
	AltitudeKM      float64
	VelocityKMH     float64
	OverflyRegion   string
	PassSource      string
	Passes          []passRow
	CrewCount       int
	CrewUnavailable bool
	Crew            []crewRow
	Probability     float64
	RiskLevel       string
	NearestObjectKM float64
	WindowDays      int
	Events          []eventRow
	MapHTML         template.HTML
	GeneratedAt     string
}

// Index handles GET / - the search form.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html", indexData{})
}

// Track handles GET /track - the dashboard for one observer.
func (h *PagesHandler) Track(w http.ResponseWriter, r *http.Request) {
	req, fieldErrs := parseTrackRequest(r)
	if len(fieldErrs) > 0 {
		h.render(w, r, http.StatusBadRequest, "index.html", indexData{
			Query: req.Query,
			Error: "Please enter a city name or a full lat/lon pair.",
		})
		return
	}

	result, err := h.tracker.Track(r.Context(), req)
	if err != nil {
		h.renderError(w, r, req, err)
		return
	}

	h.render(w, r, http.StatusOK, "results.html", toResultsData(req, result))
}

func (h *PagesHandler) renderError(w http.ResponseWriter, r *http.Request, req tracker.Request, err error) {
	switch {
	case errors.Is(err, geo.ErrNotFound):
		h.render(w, r, http.StatusNotFound, "index.html", indexData{
			Query: req.Query,
			Error: fmt.Sprintf("Could not find a location for %q.", req.Query),
		})
	case errors.Is(err, geo.ErrInvalidCoordinates):
		h.render(w, r, http.StatusBadRequest, "index.html", indexData{
			Error: "Coordinates are out of range.",
		})
	case errors.Is(err, satellite.ErrUnavailable):
		h.render(w, r, http.StatusServiceUnavailable, "error.html", errorData{
			Title:   "ISS position unavailable",
			Message: "The live position feed is not responding right now. Please try again in a minute.",
		})
	default:
		h.logger.Error().Err(err).Msg("dashboard request failed")
		h.render(w, r, http.StatusInternalServerError, "error.html", errorData{
			Title:   "Something went wrong",
			Message: "The tracking request failed. Please try again.",
		})
	}
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("template execution failed")
		response.InternalError(w, r, "page rendering failed")
		return
	}
	response.HTML(w, r, status, buf.Bytes())
}

func toResultsData(req tracker.Request, result *tracker.Result) resultsData {
	rows := make([]passRow, 0, len(result.Passes))
	for _, p := range result.Passes {
		rows = append(rows, passRow{
			Start:           p.StartTime.UTC().Format(pageTimeFormat),
			End:             p.EndTime.UTC().Format(pageTimeFormat),
			Duration:        p.Duration().Round(time.Second).String(),
			MaxElevationDeg: p.MaxElevationDeg,
		})
	}

	crewRows := make([]crewRow, 0, len(result.Crew.Members))
	for _, m := range result.Crew.Members {
		crewRows = append(crewRows, crewRow{
			Name:       m.Name,
			Craft:      m.Craft,
			ProfileURL: m.ProfileURL(),
		})
	}

	eventRows := make([]eventRow, 0, len(result.Conjunction.Events))
	for _, e := range result.Conjunction.Events {
		eventRows = append(eventRows, eventRow{
			Object:         e.ObjectName,
			MissDistanceKm: e.MissDistanceKM,
			RiskLevel:      string(e.Level),
			Time:           e.Time.UTC().Format(pageTimeFormat),
		})
	}

	var mapHTML template.HTML
	if result.Map != nil {
		mapHTML = result.Map.HTML
	}

	return resultsData{
		Query:           req.Query,
		ObserverName:    result.Observer.Name,
		ObserverLat:     result.Observer.Latitude,
		ObserverLon:     result.Observer.Longitude,
		SatLat:          result.Satellite.Latitude,
		SatLon:          result.Satellite.Longitude,
		AltitudeKM:      result.Satellite.AltitudeKM,
		VelocityKMH:     result.Satellite.VelocityKMH,
		OverflyRegion:   result.OverflyRegion,
		PassSource:      string(result.PassSource),
		Passes:          rows,
		CrewCount:       result.Crew.Count(),
		CrewUnavailable: result.CrewUnavailable,
		Crew:            crewRows,
		Probability:     result.Conjunction.Probability,
		RiskLevel:       string(result.Conjunction.RiskLevel),
		NearestObjectKM: result.Conjunction.NearestObjectDistanceKM,
		WindowDays:      result.Conjunction.WindowDays,
		Events:          eventRows,
		MapHTML:         mapHTML,
		GeneratedAt:     result.GeneratedAt.Format(pageTimeFormat + " UTC"),
	}
}
