package geom

import (
	"encoding/json"
	"errors"

	geojson "github.com/paulmach/go.geojson"
)

// DecodeGeo accepts a FeatureCollection, a Feature or a bare geometry.
func DecodeGeo(b []byte) (Data, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return Data{}, err
	}
	var d Data
	switch head.Type {
	case "":
		return Data{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(b)
		if err != nil {
			return Data{}, err
		}
		for _, f := range fc.Features {
			d.walk(f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(b)
		if err != nil {
			return Data{}, err
		}
		d.walk(f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(b)
		if err != nil {
			return Data{}, err
		}
		d.walk(g)
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}

func (d *Data) walk(g *geojson.Geometry) {
	if g == nil {
		return
	}
	addLine := func(ls [][2]float64) {
		d.Lines = append(d.Lines, ls)
		for _, p := range ls {
			d.add(p)
		}
	}
	addPoly := func(poly [][][2]float64) {
		d.Polygons = append(d.Polygons, poly)
		for _, ring := range poly {
			for _, p := range ring {
				d.add(p)
			}
		}
	}
	switch g.Type {
	case geojson.GeometryPoint:
		if len(g.Point) >= 2 {
			pt := [2]float64{g.Point[0], g.Point[1]}
			d.Points = append(d.Points, pt)
			d.add(pt)
		}
	case geojson.GeometryMultiPoint:
		for _, pt := range FromPositions(g.MultiPoint) {
			d.Points = append(d.Points, pt)
			d.add(pt)
		}
	case geojson.GeometryLineString:
		addLine(FromPositions(g.LineString))
	case geojson.GeometryMultiLineString:
		for _, ls := range g.MultiLineString {
			addLine(FromPositions(ls))
		}
	case geojson.GeometryPolygon:
		addPoly(FromRings(g.Polygon))
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			addPoly(FromRings(poly))
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			d.walk(sub)
		}
	}
}

// FromPositions converts GeoJSON positions, dropping any without both axes.
func FromPositions(pos [][]float64) [][2]float64 {
	out := make([][2]float64, 0, len(pos))
	for _, p := range pos {
		if len(p) < 2 {
			continue
		}
		out = append(out, [2]float64{p[0], p[1]})
	}
	return out
}

func FromRings(rings [][][]float64) [][][2]float64 {
	out := make([][][2]float64, 0, len(rings))
	for _, r := range rings {
		out = append(out, FromPositions(r))
	}
	return out
}

// Positions converts coordinates to GeoJSON positions.
func Positions(ls [][2]float64) [][]float64 {
	out := make([][]float64, len(ls))
	for i, p := range ls {
		out[i] = []float64{p[0], p[1]}
	}
	return out
}

func RingPositions(rings [][][2]float64) [][][]float64 {
	out := make([][][]float64, len(rings))
	for i, r := range rings {
		out[i] = Positions(r)
	}
	return out
}
