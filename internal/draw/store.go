package draw

import (
	"fmt"
	"slices"

	geojson "github.com/paulmach/go.geojson"

	"geodraw/internal/geom"
)

// Store is the in-memory keyed collection of drawn features. Iteration
// follows insertion order of the features still present.
type Store struct {
	features map[string]Feature
	order    []string
	nextID   int
}

func NewStore() *Store {
	return &Store{features: make(map[string]Feature), nextID: 1}
}

// AddFeature stores a copy of f and returns its id. A caller supplied id is
// used verbatim and replaces any feature already stored under it.
func (s *Store) AddFeature(f Feature) string {
	id := f.ID
	if id == "" {
		id = fmt.Sprintf("feature-%d", s.nextID)
		s.nextID++
	}
	f.ID = id
	f = f.clone()
	if _, ok := s.features[id]; !ok {
		s.order = append(s.order, id)
	}
	s.features[id] = f
	return id
}

// UpdateFeature replaces the feature stored under id. Unknown ids are ignored.
func (s *Store) UpdateFeature(id string, f Feature) {
	if _, ok := s.features[id]; !ok {
		return
	}
	f.ID = id
	s.features[id] = f.clone()
}

func (s *Store) RemoveFeature(id string) {
	if _, ok := s.features[id]; !ok {
		return
	}
	delete(s.features, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Store) GetFeature(id string) (Feature, bool) {
	f, ok := s.features[id]
	return f.clone(), ok
}

// AllFeatures returns the stored features in iteration order.
func (s *Store) AllFeatures() []Feature {
	out := make([]Feature, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.features[id].clone())
	}
	return out
}

func (s *Store) Len() int { return len(s.order) }

// Clear drops every feature. The id counter keeps counting.
func (s *Store) Clear() {
	clear(s.features)
	s.order = s.order[:0]
}

// ExportGeoJSON returns every feature as a FeatureCollection without ids.
func (s *Store) ExportGeoJSON() *geojson.FeatureCollection {
	return collection(s.AllFeatures())
}

func collection(fs []Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range fs {
		fc.AddFeature(toGeoJSON(f))
	}
	return fc
}

func toGeoJSON(f Feature) *geojson.Feature {
	var out *geojson.Feature
	switch f.Geometry.Type {
	case Polygon:
		out = geojson.NewPolygonFeature(geom.RingPositions(f.Geometry.Polygon))
	default:
		out = geojson.NewLineStringFeature(geom.Positions(f.Geometry.LineString))
	}
	out.SetProperty("mode", string(f.Properties.Mode))
	out.SetProperty("color", f.Properties.Color)
	out.SetProperty("thickness", f.Properties.Thickness)
	if f.Properties.DashArray != nil {
		out.SetProperty("dashArray", slices.Clone(f.Properties.DashArray))
	}
	return out
}

// FeatureFromGeoJSON converts an exported feature back. Properties missing
// from the input are filled from opts.
func FeatureFromGeoJSON(in *geojson.Feature, opts Options) (Feature, bool) {
	if in == nil || in.Geometry == nil {
		return Feature{}, false
	}
	props := Properties{
		Color:     in.PropertyMustString("color", opts.Color),
		Thickness: in.PropertyMustFloat64("thickness", opts.Thickness),
	}
	m, err := ParseMode(in.PropertyMustString("mode", ""))
	switch in.Geometry.Type {
	case geojson.GeometryLineString:
		if err != nil || m == ModePolygon || m == ModeSelect {
			m = ModeLine
		}
		props.Mode = m
		if m.Dashed() {
			props.DashArray = dashProperty(in, opts.DashArray)
		}
		return NewLineString(geom.FromPositions(in.Geometry.LineString), props), true
	case geojson.GeometryPolygon:
		props.Mode = ModePolygon
		return NewPolygon(geom.FromRings(in.Geometry.Polygon), props), true
	}
	return Feature{}, false
}

func dashProperty(in *geojson.Feature, def []float64) []float64 {
	switch raw := in.Properties["dashArray"].(type) {
	case []float64:
		return slices.Clone(raw)
	case []interface{}:
		out := make([]float64, 0, len(raw))
		for _, v := range raw {
			if n, ok := v.(float64); ok {
				out = append(out, n)
			}
		}
		return out
	}
	return slices.Clone(def)
}
