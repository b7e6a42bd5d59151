package draw

import "slices"

// lineMode draws a polyline vertex by vertex: click adds a vertex, move
// previews the next one, double-click finishes.
type lineMode struct {
	modeBase
	stamp stampFunc

	id     string
	coords []Coord
}

func newLineMode(b modeBase, stamp stampFunc) *lineMode {
	return &lineMode{modeBase: b, stamp: stamp}
}

func (m *lineMode) enable() {
	m.active = true
	m.host.SetCursor(CursorCrosshair)
	m.listen(EventPress, m.onPress)
	m.listen(EventMove, m.onMove)
	m.listen(EventClick, m.onClick)
	m.listen(EventDoubleClick, m.onDoubleClick)
}

func (m *lineMode) disable() {
	m.active = false
	m.host.SetCursor(CursorDefault)
	m.unlisten()
	m.cancel()
}

func (m *lineMode) onPress(e *Event) {
	if !m.active {
		return
	}
	e.PreventDefault()
}

func (m *lineMode) onClick(e *Event) {
	if !m.active {
		return
	}
	if len(m.coords) == 0 {
		m.coords = []Coord{e.Coord}
		m.id = m.store.AddFeature(NewLineString([]Coord{e.Coord, e.Coord}, m.stamp(m.opts)))
		m.out.renderFeatures()
		return
	}
	m.coords = append(m.coords, e.Coord)
	m.commit(m.coords)
}

func (m *lineMode) onMove(e *Event) {
	if !m.active || len(m.coords) == 0 {
		return
	}
	preview := append(slices.Clip(m.coords), e.Coord)
	m.commit(preview)
}

func (m *lineMode) onDoubleClick(e *Event) {
	if !m.active {
		return
	}
	e.PreventDefault()
	if m.id != "" && len(m.coords) >= 2 {
		m.commit(m.coords)
		m.reset()
	}
}

// commit replaces the in-progress feature's coordinates.
func (m *lineMode) commit(coords []Coord) {
	f, ok := m.store.GetFeature(m.id)
	if !ok {
		return
	}
	f.Geometry.LineString = coords
	m.store.UpdateFeature(m.id, f)
	m.out.renderFeatures()
}

// cancel drops an unfinished line below two vertices. A longer line keeps
// its clicked vertices; the trailing move preview is not part of it.
func (m *lineMode) cancel() {
	if m.id == "" {
		return
	}
	if len(m.coords) < 2 {
		m.store.RemoveFeature(m.id)
	} else if f, ok := m.store.GetFeature(m.id); ok {
		f.Geometry.LineString = m.coords
		m.store.UpdateFeature(m.id, f)
	}
	m.reset()
	m.out.renderFeatures()
}

func (m *lineMode) reset() {
	m.id = ""
	m.coords = nil
}
