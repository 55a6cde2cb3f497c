package domain

// LatLng is a geographic coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HistoricalEvent represents a dated event in the empire's expansion.
type HistoricalEvent struct {
	Year        int    `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    LatLng `json:"location"`
}

// City represents a city tracked on the map. Coordinates are stored
// [lng, lat] to match the geographic convention used by the renderer.
type City struct {
	Name          string     `json:"name"`
	Coordinates   [2]float64 `json:"coordinates"`
	ConqueredYear int        `json:"conquered_year"`
}

// Lng returns the city longitude in degrees.
func (c City) Lng() float64 { return c.Coordinates[0] }

// Lat returns the city latitude in degrees.
func (c City) Lat() float64 { return c.Coordinates[1] }

// ConqueredBy reports whether the city has fallen by the given year.
func (c City) ConqueredBy(year int) bool { return c.ConqueredYear <= year }
