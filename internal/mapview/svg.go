package mapview

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lennoxmeldrum/mongol-atlas/internal/geo"
)

// RenderSVG draws the view as a complete SVG document: country
// outlines (when the basemap has loaded), city markers with labels,
// and active-event markers. Events of the current year carry a pulsing
// animation. The document is rebuilt from scratch every call.
func RenderSVG(v View, basemap *geojson.FeatureCollection) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(v.Width, v.Height)

	if basemap != nil {
		proj := geo.NewProjection(v.Width, v.Height)
		canvas.Gstyle("opacity:0.8")
		for _, f := range basemap.Features {
			for _, d := range geometryPaths(f.Geometry, proj) {
				canvas.Path(d,
					fmt.Sprintf(`fill="%s"`, countryFill),
					fmt.Sprintf(`stroke="%s"`, countryStroke),
					`stroke-width="0.5"`)
			}
		}
		canvas.Gend()
	}

	canvas.Gid("cities")
	for _, c := range v.Cities {
		attrs := []string{fmt.Sprintf(`fill="%s"`, c.Fill)}
		if c.Stroke != "" {
			attrs = append(attrs, fmt.Sprintf(`stroke="%s"`, c.Stroke), `stroke-width="2"`)
		}
		canvas.Circle(c.X, c.Y, c.Radius, attrs...)
		if c.Labeled {
			canvas.Text(c.X+8, c.Y+4, c.Name,
				`font-size="10px"`, fmt.Sprintf(`fill="%s"`, labelFill), `opacity="0.8"`)
		}
	}
	canvas.Gend()

	canvas.Gid("events")
	for _, e := range v.Events {
		// One group per marker so clients can hit-test whole markers
		// by the id prefix; the circle keeps its own id as the
		// animation target.
		canvas.Group(fmt.Sprintf(`id="event-%d"`, e.Event.Year), `cursor="pointer"`)
		dot := fmt.Sprintf("event-marker-%d", e.Event.Year)
		canvas.Circle(e.X, e.Y, eventRadius,
			fmt.Sprintf(`id="%s"`, dot),
			fmt.Sprintf(`fill="%s"`, eventFill),
			fmt.Sprintf(`stroke="%s"`, eventStroke),
			`stroke-width="1"`,
			fmt.Sprintf(`data-year="%d"`, e.Event.Year))
		if e.Pulse {
			writePulse(&buf, dot)
		}
		canvas.Gend()
	}
	canvas.Gend()

	canvas.End()
	return buf.Bytes()
}

// writePulse emits the radius/opacity oscillation for the most recent
// event. svgo's Animate only supports from/to pairs, so the value-list
// form is written directly.
func writePulse(buf *bytes.Buffer, id string) {
	fmt.Fprintf(buf,
		"<animate xlink:href=\"#%s\" attributeName=\"r\" values=\"8;15;8\" dur=\"2s\" repeatCount=\"indefinite\" />\n", id)
	fmt.Fprintf(buf,
		"<animate xlink:href=\"#%s\" attributeName=\"opacity\" values=\"1;0.5;1\" dur=\"2s\" repeatCount=\"indefinite\" />\n", id)
}

// geometryPaths flattens a GeoJSON geometry into SVG path data in
// projected coordinates. Rings containing unprojectable points are
// dropped rather than distorted.
func geometryPaths(g orb.Geometry, proj geo.Projection) []string {
	switch geom := g.(type) {
	case orb.Polygon:
		return polygonPaths(geom, proj)
	case orb.MultiPolygon:
		var out []string
		for _, poly := range geom {
			out = append(out, polygonPaths(poly, proj)...)
		}
		return out
	default:
		return nil
	}
}

func polygonPaths(poly orb.Polygon, proj geo.Projection) []string {
	var out []string
	for _, ring := range poly {
		if d, ok := ringPath(ring, proj); ok {
			out = append(out, d)
		}
	}
	return out
}

func ringPath(ring orb.Ring, proj geo.Projection) (string, bool) {
	if len(ring) == 0 {
		return "", false
	}
	var sb strings.Builder
	for i, pt := range ring {
		x, y, ok := proj.Project(pt.Lon(), pt.Lat())
		if !ok {
			return "", false
		}
		if i == 0 {
			fmt.Fprintf(&sb, "M%.2f,%.2f", x, y)
		} else {
			fmt.Fprintf(&sb, "L%.2f,%.2f", x, y)
		}
	}
	sb.WriteString("Z")
	return sb.String(), true
}
