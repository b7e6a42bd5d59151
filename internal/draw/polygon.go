package draw

import (
	"slices"

	"geodraw/internal/geom"
)

// polygonMode collects ring vertices by click and closes the ring on
// double-click or secondary click.
type polygonMode struct {
	modeBase

	id     string
	coords []Coord
}

func newPolygonMode(b modeBase) *polygonMode {
	return &polygonMode{modeBase: b}
}

func (m *polygonMode) enable() {
	m.active = true
	m.host.SetCursor(CursorCrosshair)
	m.listen(EventClick, m.onClick)
	m.listen(EventMove, m.onMove)
	m.listen(EventDoubleClick, m.onFinish)
	m.listen(EventSecondaryClick, m.onFinish)
}

func (m *polygonMode) disable() {
	m.active = false
	m.host.SetCursor(CursorDefault)
	m.unlisten()
	m.finish()
}

func (m *polygonMode) onClick(e *Event) {
	if !m.active {
		return
	}
	e.PreventDefault()
	if len(m.coords) == 0 {
		c := e.Coord
		m.coords = []Coord{c}
		props := solidStamp(ModePolygon)(m.opts)
		m.id = m.store.AddFeature(NewPolygon([][]Coord{{c, c, c, c}}, props))
		m.out.renderFeatures()
		return
	}
	m.coords = append(m.coords, e.Coord)
	m.commit(m.coords)
}

func (m *polygonMode) onMove(e *Event) {
	if !m.active || len(m.coords) == 0 {
		return
	}
	m.commit(append(slices.Clip(m.coords), e.Coord))
}

func (m *polygonMode) onFinish(e *Event) {
	if !m.active {
		return
	}
	e.PreventDefault()
	m.finish()
}

func (m *polygonMode) commit(ring []Coord) {
	f, ok := m.store.GetFeature(m.id)
	if !ok {
		return
	}
	f.Geometry.Polygon = [][]Coord{ring}
	m.store.UpdateFeature(m.id, f)
	m.out.renderFeatures()
}

// finish closes and keeps a ring of at least 3 vertices; anything smaller
// is removed.
func (m *polygonMode) finish() {
	if m.id == "" {
		m.coords = nil
		return
	}
	if len(m.coords) >= 3 {
		m.commit(geom.CloseRing(m.coords))
	} else {
		m.store.RemoveFeature(m.id)
		m.out.renderFeatures()
	}
	m.id = ""
	m.coords = nil
}
