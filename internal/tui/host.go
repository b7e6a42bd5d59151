package tui

import (
	"log/slog"
	"slices"

	geojson "github.com/paulmach/go.geojson"

	"geodraw/internal/draw"
)

type listener struct {
	id draw.ListenerID
	fn draw.Handler
}

// Host is the terminal map widget. It keeps the sources and layers the
// controller declares and renders them on the braille canvas; pointer events
// reach it through Dispatch from the bubbletea update loop.
type Host struct {
	log       *slog.Logger
	listeners map[draw.EventType][]listener
	nextID    draw.ListenerID
	sources   map[string]*geojson.FeatureCollection
	layers    []draw.Layer
	cursor    draw.Cursor
}

var _ draw.Host = (*Host)(nil)

func NewHost(log *slog.Logger) *Host {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Host{
		log:       log.With(slog.String("component", "host")),
		listeners: make(map[draw.EventType][]listener),
		sources:   make(map[string]*geojson.FeatureCollection),
	}
}

func (h *Host) On(t draw.EventType, fn draw.Handler) draw.ListenerID {
	h.nextID++
	h.listeners[t] = append(h.listeners[t], listener{id: h.nextID, fn: fn})
	return h.nextID
}

func (h *Host) Off(t draw.EventType, id draw.ListenerID) {
	h.listeners[t] = slices.DeleteFunc(h.listeners[t], func(l listener) bool { return l.id == id })
}

// Dispatch delivers an event to the listeners of t in subscription order
// and reports whether one of them prevented the default.
func (h *Host) Dispatch(t draw.EventType, c draw.Coord) bool {
	e := draw.NewEvent(c)
	for _, l := range slices.Clone(h.listeners[t]) {
		l.fn(e)
	}
	return e.DefaultPrevented()
}

// The terminal canvas exists as soon as the program does.
func (h *Host) Loaded() bool { return true }

func (h *Host) OnceLoaded(fn func()) { fn() }

func (h *Host) AddSource(id string, data *geojson.FeatureCollection) {
	if data == nil {
		data = geojson.NewFeatureCollection()
	}
	h.sources[id] = data
	h.log.Debug("add source", slog.String("source", id))
}

func (h *Host) HasSource(id string) bool {
	_, ok := h.sources[id]
	return ok
}

func (h *Host) SetSourceData(id string, data *geojson.FeatureCollection) {
	if _, ok := h.sources[id]; !ok {
		return
	}
	if data == nil {
		data = geojson.NewFeatureCollection()
	}
	h.sources[id] = data
}

func (h *Host) RemoveSource(id string) {
	delete(h.sources, id)
	h.log.Debug("remove source", slog.String("source", id))
}

// Source returns the collection last pushed to id.
func (h *Host) Source(id string) (*geojson.FeatureCollection, bool) {
	fc, ok := h.sources[id]
	return fc, ok
}

// AddLayer appends l to the draw order. A layer with the same id is
// replaced in place.
func (h *Host) AddLayer(l draw.Layer) {
	if l.Paint == nil {
		l.Paint = map[string]any{}
	}
	if l.Layout == nil {
		l.Layout = map[string]any{}
	}
	if i := h.layerIndex(l.ID); i >= 0 {
		h.layers[i] = l
		return
	}
	h.layers = append(h.layers, l)
	h.log.Debug("add layer", slog.String("layer", l.ID))
}

func (h *Host) HasLayer(id string) bool { return h.layerIndex(id) >= 0 }

func (h *Host) RemoveLayer(id string) {
	if i := h.layerIndex(id); i >= 0 {
		h.layers = slices.Delete(h.layers, i, i+1)
	}
}

func (h *Host) SetPaintProperty(layerID, name string, value any) {
	if i := h.layerIndex(layerID); i >= 0 {
		h.layers[i].Paint[name] = value
	}
}

func (h *Host) SetLayoutProperty(layerID, name string, value any) {
	if i := h.layerIndex(layerID); i >= 0 {
		h.layers[i].Layout[name] = value
	}
}

// Layers returns the layers in draw order.
func (h *Host) Layers() []draw.Layer { return slices.Clone(h.layers) }

func (h *Host) layerIndex(id string) int {
	return slices.IndexFunc(h.layers, func(l draw.Layer) bool { return l.ID == id })
}

func (h *Host) SetCursor(c draw.Cursor) { h.cursor = c }

func (h *Host) Cursor() draw.Cursor { return h.cursor }
