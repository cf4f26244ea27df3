// Package geomap renders an embeddable Leaflet map fragment showing the
// observer and the satellite's current ground point.
package geomap

import (
	"bytes"
	"fmt"
	"html/template"
)

// Marker is one labelled point on the map.
type Marker struct {
	Label     string
	Latitude  float64
	Longitude float64
}

// Map is a rendered map fragment plus the view it was centred on.
type Map struct {
	CenterLatitude  float64
	CenterLongitude float64
	Zoom            int
	HTML            template.HTML
}

const defaultZoom = 3

var fragmentTmpl = template.Must(template.New("geomap").Parse(`<div id="{{.ID}}" class="geomap" style="height:420px"></div>
<script>
(function() {
  var map = L.map({{.ID}}).setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
  L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
    maxZoom: 12,
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);
{{- range .Markers}}
  L.marker([{{.Latitude}}, {{.Longitude}}]).addTo(map).bindPopup({{.Label}});
{{- end}}
})();
</script>`))

type fragmentData struct {
	ID        string
	CenterLat float64
	CenterLon float64
	Zoom      int
	Markers   []Marker
}

// Render builds a map fragment centred on the midpoint of the given markers.
// With a single marker the map centres on it directly; with none, Render
// returns an error.
func Render(markers ...Marker) (*Map, error) {
	if len(markers) == 0 {
		return nil, fmt.Errorf("geomap: no markers to render")
	}

	centerLat, centerLon := midpoint(markers)

	var buf bytes.Buffer
	err := fragmentTmpl.Execute(&buf, fragmentData{
		ID:        "geomap",
		CenterLat: centerLat,
		CenterLon: centerLon,
		Zoom:      defaultZoom,
		Markers:   markers,
	})
	if err != nil {
		return nil, fmt.Errorf("geomap: render fragment: %w", err)
	}

	return &Map{
		CenterLatitude:  centerLat,
		CenterLongitude: centerLon,
		Zoom:            defaultZoom,
		HTML:            template.HTML(buf.String()),
	}, nil
}

func midpoint(markers []Marker) (float64, float64) {
	var lat, lon float64
	for _, m := range markers {
		lat += m.Latitude
		lon += m.Longitude
	}
	n := float64(len(markers))
	return lat / n, lon / n
}
