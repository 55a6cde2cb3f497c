// Package mapview derives the map visualization from the current
// timeline year and the static tables: which cities are conquered,
// which events are active, and where everything projects on screen.
// The view is recomputed from scratch per request; there is no
// incremental state.
package mapview

import (
	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/geo"
	"github.com/lennoxmeldrum/mongol-atlas/internal/history"
)

// Marker styling.
const (
	conqueredRadius   = 6.0
	unconqueredRadius = 3.0
	eventRadius       = 8.0

	conqueredFill   = "#ef4444"
	conqueredStroke = "#7f1d1d"
	unconqueredFill = "#9ca3af"
	eventFill       = "#f59e0b"
	eventStroke     = "#ffffff"
	labelFill       = "#e5e7eb"

	countryFill   = "#1f2937"
	countryStroke = "#374151"
)

// CityMarker is a projected city with its visual state resolved.
type CityMarker struct {
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Fill      string  `json:"fill"`
	Stroke    string  `json:"stroke,omitempty"`
	Conquered bool    `json:"conquered"`
	Labeled   bool    `json:"labeled"`
}

// EventMarker is a projected active event. Pulse marks the event whose
// year equals the current year; the emphasis is purely cosmetic.
type EventMarker struct {
	Event domain.HistoricalEvent `json:"event"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Pulse bool                   `json:"pulse"`
}

// View is the full render model for one year and viewport.
type View struct {
	Year    int           `json:"year"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Basemap bool          `json:"basemap"`
	Cities  []CityMarker  `json:"cities"`
	Events  []EventMarker `json:"events"`
}

// Build computes the render model. Points outside the projectable
// range are skipped.
func Build(year int, width, height float64, basemapLoaded bool) View {
	year = history.ClampYear(year)
	proj := geo.NewProjection(width, height)

	v := View{
		Year:    year,
		Width:   width,
		Height:  height,
		Basemap: basemapLoaded,
	}

	for _, city := range history.Cities() {
		x, y, ok := proj.Project(city.Lng(), city.Lat())
		if !ok {
			continue
		}
		conquered := city.ConqueredBy(year)
		m := CityMarker{
			Name:      city.Name,
			X:         x,
			Y:         y,
			Conquered: conquered,
			// The founding capital stays labeled even before the era.
			Labeled: conquered || city.Name == history.CapitalCity,
		}
		if conquered {
			m.Radius = conqueredRadius
			m.Fill = conqueredFill
			m.Stroke = conqueredStroke
		} else {
			m.Radius = unconqueredRadius
			m.Fill = unconqueredFill
		}
		v.Cities = append(v.Cities, m)
	}

	for _, ev := range history.ActiveEvents(year) {
		x, y, ok := proj.Project(ev.Location.Lng, ev.Location.Lat)
		if !ok {
			continue
		}
		v.Events = append(v.Events, EventMarker{
			Event: ev,
			X:     x,
			Y:     y,
			Pulse: ev.Year == year,
		})
	}

	return v
}
