package draw

// freehandMode records a stroke: the first click starts it, pointer movement
// extends it, a second click or leaving the map ends it.
type freehandMode struct {
	modeBase
	stamp stampFunc

	drawing bool
	id      string
	coords  []Coord
}

func newFreehandMode(b modeBase, stamp stampFunc) *freehandMode {
	return &freehandMode{modeBase: b, stamp: stamp}
}

func (m *freehandMode) enable() {
	m.active = true
	m.host.SetCursor(CursorCrosshair)
	m.listen(EventClick, m.onClick)
	m.listen(EventMove, m.onMove)
	m.listen(EventLeave, m.onLeave)
}

func (m *freehandMode) disable() {
	m.active = false
	m.host.SetCursor(CursorDefault)
	m.unlisten()
	m.finish()
}

func (m *freehandMode) onClick(e *Event) {
	if !m.active {
		return
	}
	e.PreventDefault()
	if m.drawing {
		m.finish()
		return
	}
	m.drawing = true
	m.coords = []Coord{e.Coord}
	m.id = m.store.AddFeature(NewLineString([]Coord{e.Coord}, m.stamp(m.opts)))
	m.out.renderFeatures()
}

func (m *freehandMode) onMove(e *Event) {
	if !m.active || !m.drawing {
		return
	}
	e.PreventDefault()
	if n := len(m.coords); n > 0 && m.coords[n-1] == e.Coord {
		return
	}
	m.coords = append(m.coords, e.Coord)
	f, ok := m.store.GetFeature(m.id)
	if !ok {
		return
	}
	f.Geometry.LineString = m.coords
	m.store.UpdateFeature(m.id, f)
	m.out.renderFeatures()
}

func (m *freehandMode) onLeave(*Event) {
	if !m.active {
		return
	}
	m.finish()
}

// finish ends the stroke, discarding it below two vertices.
func (m *freehandMode) finish() {
	if !m.drawing || m.id == "" {
		return
	}
	if len(m.coords) < 2 {
		m.store.RemoveFeature(m.id)
		m.out.renderFeatures()
	}
	m.drawing = false
	m.id = ""
	m.coords = nil
}
