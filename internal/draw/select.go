package draw

import "geodraw/internal/geom"

// selectMode picks stored features by hit-testing and drags them.
type selectMode struct {
	modeBase
	tolerance float64

	selected  string
	dragging  bool
	dragStart Coord
	snapshot  Geometry
}

func newSelectMode(b modeBase, tolerance float64) *selectMode {
	return &selectMode{modeBase: b, tolerance: tolerance}
}

func (m *selectMode) enable() {
	m.active = true
	m.host.SetCursor(CursorPointer)
	m.out.renderSelection(m.selected)
	m.listen(EventClick, m.onClick)
	m.listen(EventPress, m.onPress)
	m.listen(EventMove, m.onMove)
	m.listen(EventRelease, m.onRelease)
}

func (m *selectMode) disable() {
	m.active = false
	m.host.SetCursor(CursorDefault)
	m.unlisten()
	m.endDrag()
	m.selected = ""
	m.out.renderSelection("")
}

func (m *selectMode) onClick(e *Event) {
	if !m.active || m.dragging {
		return
	}
	if f, ok := m.featureAt(e.Coord); ok {
		m.selected = f.ID
	} else {
		m.selected = ""
	}
	m.out.renderSelection(m.selected)
}

func (m *selectMode) onPress(e *Event) {
	if !m.active {
		return
	}
	f, ok := m.featureAt(e.Coord)
	if !ok {
		return
	}
	m.dragging = true
	m.dragStart = e.Coord
	m.selected = f.ID
	m.snapshot = f.Geometry.clone()
	m.host.SetCursor(CursorMove)
	m.out.renderSelection(m.selected)
	e.PreventDefault()
}

func (m *selectMode) onMove(e *Event) {
	if !m.active || !m.dragging || m.selected == "" {
		return
	}
	f, ok := m.store.GetFeature(m.selected)
	if !ok {
		return
	}
	d := Coord{e.Coord[0] - m.dragStart[0], e.Coord[1] - m.dragStart[1]}
	switch f.Geometry.Type {
	case LineString:
		f.Geometry.LineString = geom.TranslateLine(m.snapshot.LineString, d)
	case Polygon:
		f.Geometry.Polygon = geom.TranslateRings(m.snapshot.Polygon, d)
	default:
		return
	}
	m.store.UpdateFeature(m.selected, f)
	m.out.renderFeatures()
	m.out.renderSelection(m.selected)
}

func (m *selectMode) onRelease(*Event) {
	if !m.active || !m.dragging {
		return
	}
	m.endDrag()
	m.host.SetCursor(CursorPointer)
}

func (m *selectMode) endDrag() {
	m.dragging = false
	m.dragStart = Coord{}
	m.snapshot = Geometry{}
}

// featureAt returns the first stored feature hit by p.
func (m *selectMode) featureAt(p Coord) (Feature, bool) {
	for _, f := range m.store.AllFeatures() {
		if hit(f, p, m.tolerance) {
			return f, true
		}
	}
	return Feature{}, false
}

func hit(f Feature, p Coord, tol float64) bool {
	switch f.Geometry.Type {
	case LineString:
		return geom.NearLine(p, f.Geometry.LineString, tol)
	case Polygon:
		return len(f.Geometry.Polygon) > 0 && geom.PointInRing(p, f.Geometry.Polygon[0])
	}
	return false
}

// Selected returns the id of the selected feature, if any.
func (m *selectMode) Selected() (string, bool) {
	return m.selected, m.selected != ""
}
