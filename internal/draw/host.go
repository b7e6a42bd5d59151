package draw

import geojson "github.com/paulmach/go.geojson"

// EventType names a pointer event delivered by the host.
type EventType string

const (
	EventPress          EventType = "press"
	EventRelease        EventType = "release"
	EventMove           EventType = "move"
	EventClick          EventType = "primary-click"
	EventDoubleClick    EventType = "double-click"
	EventSecondaryClick EventType = "secondary-click"
	EventLeave          EventType = "leave-area"
)

// Event is one pointer event at a map coordinate.
type Event struct {
	Coord     Coord
	prevented bool
}

func NewEvent(c Coord) *Event { return &Event{Coord: c} }

// PreventDefault asks the host to skip its own handling (panning, zooming).
func (e *Event) PreventDefault() { e.prevented = true }

func (e *Event) DefaultPrevented() bool { return e.prevented }

type Handler func(*Event)

// ListenerID identifies one subscription made with Host.On.
type ListenerID uint64

type Cursor string

const (
	CursorDefault   Cursor = ""
	CursorCrosshair Cursor = "crosshair"
	CursorPointer   Cursor = "pointer"
	CursorMove      Cursor = "move"
)

type LayerType string

const (
	LayerLine LayerType = "line"
	LayerFill LayerType = "fill"
)

// Layer is a declarative render layer bound to a source. An empty Filter
// shows every feature of the source; otherwise only features whose mode is
// listed.
type Layer struct {
	ID     string
	Type   LayerType
	Source string
	Filter []Mode
	Paint  map[string]any
	Layout map[string]any
}

// Shows reports whether the layer renders features of mode m.
func (l Layer) Shows(m Mode) bool {
	if len(l.Filter) == 0 {
		return true
	}
	for _, f := range l.Filter {
		if f == m {
			return true
		}
	}
	return false
}

// Host is the map widget the controller draws on.
type Host interface {
	On(t EventType, h Handler) ListenerID
	Off(t EventType, id ListenerID)

	Loaded() bool
	// OnceLoaded runs fn a single time when the host finishes loading.
	OnceLoaded(fn func())

	AddSource(id string, data *geojson.FeatureCollection)
	HasSource(id string) bool
	SetSourceData(id string, data *geojson.FeatureCollection)
	RemoveSource(id string)

	AddLayer(l Layer)
	HasLayer(id string) bool
	RemoveLayer(id string)
	SetPaintProperty(layerID, name string, value any)
	SetLayoutProperty(layerID, name string, value any)

	SetCursor(c Cursor)
}

const (
	SourceFeatures = "mapdraw-features"
	SourceSelected = "mapdraw-selected"

	LayerFeaturesLine           = "mapdraw-features-line"
	LayerFeaturesDashedLine     = "mapdraw-features-dashed-line"
	LayerFeaturesPolygon        = "mapdraw-features-polygon"
	LayerFeaturesPolygonOutline = "mapdraw-features-polygon-outline"
	LayerSelectedLine           = "mapdraw-selected-line"
	LayerSelectedPolygon        = "mapdraw-selected-polygon"
	LayerSelectedPolygonOutline = "mapdraw-selected-polygon-outline"

	SelectedColor = "#ff0000"
)

// layerIDs lists every layer the controller creates, in creation order.
var layerIDs = []string{
	LayerFeaturesLine, LayerFeaturesDashedLine, LayerFeaturesPolygon, LayerFeaturesPolygonOutline,
	LayerSelectedLine, LayerSelectedPolygon, LayerSelectedPolygonOutline,
}

// featureLineLayers are the stroked feature layers that carry cap and join.
var featureLineLayers = []string{LayerFeaturesLine, LayerFeaturesDashedLine, LayerFeaturesPolygonOutline}

// surface pushes store contents to the host sources. Missing sources make
// every call a no-op.
type surface struct {
	host  Host
	store *Store
}

func (s surface) renderFeatures() {
	if !s.host.HasSource(SourceFeatures) {
		return
	}
	s.host.SetSourceData(SourceFeatures, s.store.ExportGeoJSON())
}

// renderSelection shows the feature stored under id, or nothing when id is
// empty or unknown.
func (s surface) renderSelection(id string) {
	if !s.host.HasSource(SourceSelected) {
		return
	}
	var fs []Feature
	if f, ok := s.store.GetFeature(id); ok && id != "" {
		fs = append(fs, f)
	}
	s.host.SetSourceData(SourceSelected, collection(fs))
}

func (s surface) clear() {
	for _, id := range []string{SourceFeatures, SourceSelected} {
		if s.host.HasSource(id) {
			s.host.SetSourceData(id, geojson.NewFeatureCollection())
		}
	}
}
