// Package geo provides the map projection and the world basemap used
// by the map renderer.
package geo

import "math"

// Projection center framing the historical theater (Central Asia).
const (
	CenterLng = 85.0
	CenterLat = 45.0
)

// Latitudes close to the poles are not representable in Mercator.
const maxLat = 85.0

// Projection is a Mercator projection centered on a fixed reference
// point, scaled from the viewport width and translated to the viewport
// center.
type Projection struct {
	scale  float64 // pixels per radian
	tx, ty float64
	cx, cy float64 // projected center, radians-space
}

// NewProjection derives a projection from the viewport dimensions.
// Scale is tied to viewport width so the empire fills the frame.
func NewProjection(width, height float64) Projection {
	return Projection{
		scale: width / 2.5,
		tx:    width / 2,
		ty:    height / 2,
		cx:    radians(CenterLng),
		cy:    mercatorY(radians(CenterLat)),
	}
}

// Project maps geographic coordinates (degrees) to drawing
// coordinates. ok is false for latitudes outside the projectable
// range; such points are skipped by the renderer.
func (p Projection) Project(lng, lat float64) (x, y float64, ok bool) {
	if lat > maxLat || lat < -maxLat {
		return 0, 0, false
	}
	x = p.tx + p.scale*(radians(lng)-p.cx)
	y = p.ty - p.scale*(mercatorY(radians(lat))-p.cy)
	return x, y, true
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func mercatorY(latRad float64) float64 {
	return math.Log(math.Tan(math.Pi/4 + latRad/2))
}
