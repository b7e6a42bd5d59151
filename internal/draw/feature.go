package draw

import (
	"fmt"
	"slices"

	"geodraw/internal/geom"
)

// Coord is an x/y (lon/lat) pair.
type Coord = [2]float64

// Mode identifies one interactive drawing or editing behavior.
type Mode string

const (
	ModeLine           Mode = "line"
	ModeDashedLine     Mode = "dashed-line"
	ModeFreehand       Mode = "freehand"
	ModeFreehandDashed Mode = "freehand-dashed"
	ModePolygon        Mode = "polygon"
	ModeSelect         Mode = "select"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeLine, ModeDashedLine, ModeFreehand, ModeFreehandDashed, ModePolygon, ModeSelect}

// ParseMode validates a mode identifier.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Dashed reports whether features of this mode carry a dash pattern.
func (m Mode) Dashed() bool {
	return m == ModeDashedLine || m == ModeFreehandDashed
}

type GeometryType string

const (
	LineString GeometryType = "LineString"
	Polygon    GeometryType = "Polygon"
	Point      GeometryType = "Point" // reserved
)

// Geometry holds the coordinates of one feature. Only the field matching
// Type is meaningful.
type Geometry struct {
	Type       GeometryType
	LineString []Coord
	Polygon    [][]Coord
}

func (g Geometry) clone() Geometry {
	return Geometry{
		Type:       g.Type,
		LineString: geom.CloneLine(g.LineString),
		Polygon:    geom.CloneRings(g.Polygon),
	}
}

// Properties carry the styling stamped on a feature at creation time.
type Properties struct {
	Mode      Mode
	Color     string
	Thickness float64
	DashArray []float64
}

// Feature is one drawn geometry.
type Feature struct {
	ID         string
	Geometry   Geometry
	Properties Properties
}

// clone copies f so the result shares no slices with it.
func (f Feature) clone() Feature {
	f.Geometry = f.Geometry.clone()
	f.Properties.DashArray = slices.Clone(f.Properties.DashArray)
	return f
}

// NewLineString builds an unstored line feature.
func NewLineString(coords []Coord, props Properties) Feature {
	return Feature{Geometry: Geometry{Type: LineString, LineString: coords}, Properties: props}
}

// NewPolygon builds an unstored polygon feature from its rings.
func NewPolygon(rings [][]Coord, props Properties) Feature {
	return Feature{Geometry: Geometry{Type: Polygon, Polygon: rings}, Properties: props}
}

// Vertices counts the coordinates of the feature across all rings.
func (f Feature) Vertices() int {
	switch f.Geometry.Type {
	case LineString:
		return len(f.Geometry.LineString)
	case Polygon:
		n := 0
		for _, r := range f.Geometry.Polygon {
			n += len(r)
		}
		return n
	}
	return 0
}

// WKT renders the geometry as well-known text.
func (f Feature) WKT() string {
	if f.Geometry.Type == Polygon {
		return geom.FormatPolygon(f.Geometry.Polygon)
	}
	return geom.FormatLineString(f.Geometry.LineString)
}
