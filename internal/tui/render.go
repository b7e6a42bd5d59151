package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	geojson "github.com/paulmach/go.geojson"

	"geodraw/internal/draw"
	"geodraw/internal/geom"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if m.bbox.Empty() {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if m.bbox.Empty() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// cellDegrees is the width of one map cell in degrees at the current zoom.
func (m Model) cellDegrees(w int) float64 {
	if w <= 1 || m.bbox.Empty() {
		return 0
	}
	return (m.bbox.MaxX - m.bbox.MinX) / float64(w-1) / m.zoom
}

// renderMap draws every host layer in order onto the braille canvas.
func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	for _, l := range m.host.Layers() {
		fc, ok := m.host.Source(l.Source)
		if !ok {
			continue
		}
		for _, f := range fc.Features {
			if f.Geometry == nil || !l.Shows(draw.Mode(f.PropertyMustString("mode", ""))) {
				continue
			}
			switch l.Type {
			case draw.LayerFill:
				m.fillFeature(br, l, f, w, h)
			case draw.LayerLine:
				m.strokeFeature(br, l, f, w, h)
			}
		}
	}
	lines := br.toLines()
	if m.hovering {
		if glyph, ok := cursorGlyphs[m.host.Cursor()]; ok && m.hoverY >= 0 && m.hoverY < len(lines) {
			lines[m.hoverY] = overlayCell(lines[m.hoverY], m.hoverX, cursorStyle.Render(glyph))
		}
	}
	return strings.Join(lines, "\n")
}

var cursorGlyphs = map[draw.Cursor]string{
	draw.CursorCrosshair: "┼",
	draw.CursorPointer:   "◯",
	draw.CursorMove:      "✥",
}

// overlayCell replaces the visible cell x of a styled line.
func overlayCell(line string, x int, s string) string {
	w := lipgloss.Width(line)
	if x < 0 || x >= w {
		return line
	}
	return cutLeft(line, x) + s + cutRight(line, x+1)
}

func (m Model) project(ring [][2]float64, w, h int) [][2]int {
	out := make([][2]int, 0, len(ring))
	for _, p := range ring {
		mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
		if !ok {
			continue
		}
		out = append(out, [2]int{mx, my})
	}
	return out
}

func (m Model) strokeFeature(br *brailleBuf, l draw.Layer, f *geojson.Feature, w, h int) {
	p := &pen{
		color: paintString(l, "line-color", f),
		width: brushWidth(paintFloat(l, "line-width", f, draw.DefaultThickness)),
	}
	if _, dashed := l.Paint["line-dasharray"]; dashed {
		p.dash = dashOf(l.Paint["line-dasharray"])
		if own := dashOf(f.Properties["dashArray"]); l.Source == draw.SourceFeatures && len(own) > 0 {
			p.dash = own
		}
	}
	var paths [][][2]int
	switch f.Geometry.Type {
	case geojson.GeometryLineString:
		paths = append(paths, m.project(geom.FromPositions(f.Geometry.LineString), w, h))
	case geojson.GeometryPolygon:
		for _, r := range geom.FromRings(f.Geometry.Polygon) {
			paths = append(paths, m.project(r, w, h))
		}
	}
	for _, path := range paths {
		p.pos = 0
		for i := 0; i+1 < len(path); i++ {
			a, b := path[i], path[i+1]
			br.drawLineMicro(a[0], a[1], b[0], b[1], p)
		}
	}
}

// fillFeature fills the outer ring using even-odd rule per scanline on the
// microgrid. Low opacity fills every other micro pixel.
func (m Model) fillFeature(br *brailleBuf, l draw.Layer, f *geojson.Feature, w, h int) {
	if f.Geometry.Type != geojson.GeometryPolygon || len(f.Geometry.Polygon) == 0 {
		return
	}
	outer := m.project(geom.FromPositions(f.Geometry.Polygon[0]), w, h)
	if len(outer) < 3 {
		return
	}
	color := paintString(l, "fill-color", f)
	sparse := paintFloat(l, "fill-opacity", f, 1) < 0.5
	hMic := h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(outer); i++ {
			a := outer[i]
			b := outer[(i+1)%len(outer)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				if sparse && (xMic+yMic)%2 != 0 {
					continue
				}
				br.setPixel(xMic, yMic, color)
			}
		}
	}
}

// placeholder reports the property named by a "{prop}" paint value.
func placeholder(s string) (string, bool) {
	if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func paintString(l draw.Layer, name string, f *geojson.Feature) string {
	s, _ := l.Paint[name].(string)
	if prop, ok := placeholder(s); ok {
		return f.PropertyMustString(prop, "")
	}
	return s
}

func paintFloat(l draw.Layer, name string, f *geojson.Feature, def float64) float64 {
	switch v := l.Paint[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if prop, ok := placeholder(v); ok {
			return f.PropertyMustFloat64(prop, def)
		}
	}
	return def
}

// brushWidth maps a stroke thickness to a square brush in micro pixels.
func brushWidth(thickness float64) int {
	return min(3, max(1, int(thickness/3)+1))
}

// dashOf reads a dash pattern from a paint value or a decoded property.
func dashOf(v any) []float64 {
	switch d := v.(type) {
	case []float64:
		return d
	case []any:
		out := make([]float64, 0, len(d))
		for _, x := range d {
			f, ok := x.(float64)
			if !ok {
				return nil
			}
			out = append(out, f)
		}
		return out
	}
	return nil
}
