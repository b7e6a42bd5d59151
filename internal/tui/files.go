package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geodraw/internal/draw"
	"geodraw/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".geojson" || ext == ".json" || ext == ".wkt" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 && m.showSidebar {
		m.status = "no supported files in current directory"
	}
}

// importPath adds the line and polygon features of a file to the drawing.
func (m *Model) importPath(p string) {
	ext := strings.ToLower(filepath.Ext(p))
	b, err := os.ReadFile(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	var n int
	switch ext {
	case ".geojson", ".json":
		n, err = m.importGeoJSON(b)
	case ".wkt":
		n, err = m.importWKT(string(b))
	default:
		m.status = "unsupported file: " + ext
		return
	}
	if err != nil {
		m.log.Warn("import failed", slog.String("path", p), slog.Any("err", err))
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.status = fmt.Sprintf("loaded: %s  features: %d", filepath.Base(p), n)
}

// importGeoJSON keeps the styling of collections written by export and
// falls back to plain geometry for anything else.
func (m *Model) importGeoJSON(b []byte) (int, error) {
	d, err := geom.DecodeGeo(b)
	if err != nil {
		return 0, err
	}
	n, err := m.ctl.ImportGeoJSON(b)
	if err != nil || n == 0 {
		n = m.addData(d)
	}
	m.fit(d.BBox)
	return n, nil
}

func (m *Model) importWKT(s string) (int, error) {
	d, err := geom.ParseWKTData(s)
	if err != nil {
		return 0, err
	}
	n := m.addData(d)
	m.fit(d.BBox)
	return n, nil
}

// addData stores lines and polygons with the current options. Points have
// no drawing mode and are skipped.
func (m *Model) addData(d geom.Data) int {
	o := m.ctl.Options()
	n := 0
	for _, ls := range d.Lines {
		if len(ls) < 2 {
			continue
		}
		m.ctl.AddFeature(draw.NewLineString(ls, draw.Properties{Mode: draw.ModeLine, Color: o.Color, Thickness: o.Thickness}))
		n++
	}
	for _, poly := range d.Polygons {
		if len(poly) == 0 || len(poly[0]) < 3 {
			continue
		}
		rings := make([][]draw.Coord, len(poly))
		for i, r := range poly {
			rings[i] = geom.CloseRing(r)
		}
		m.ctl.AddFeature(draw.NewPolygon(rings, draw.Properties{Mode: draw.ModePolygon, Color: o.Color, Thickness: o.Thickness}))
		n++
	}
	return n
}

// export writes the drawing as a GeoJSON FeatureCollection.
func (m *Model) export() {
	if m.exportPath == "" {
		m.status = "export: no output path"
		return
	}
	b, err := m.ctl.ExportGeoJSON()
	if err == nil {
		err = os.WriteFile(m.exportPath, b, 0o644)
	}
	if err != nil {
		m.log.Warn("export failed", slog.String("path", m.exportPath), slog.Any("err", err))
		m.status = "export error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("exported %d features to %s", len(m.ctl.Features()), m.exportPath)
}

// fit resets the viewport onto bb with a small margin.
func (m *Model) fit(bb geom.BBox) {
	w, h := bb.MaxX-bb.MinX, bb.MaxY-bb.MinY
	pad := max(w, h)*0.05 + 0.001
	m.bbox = geom.BBox{MinX: bb.MinX - pad, MinY: bb.MinY - pad, MaxX: bb.MaxX + pad, MaxY: bb.MaxY + pad}
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.syncTolerance()
}

// fitFeatures frames every drawn feature, or the world when there are none.
func (m *Model) fitFeatures() {
	var d geom.Data
	for _, f := range m.ctl.Features() {
		if f.Geometry.Type == draw.Polygon {
			d.Polygons = append(d.Polygons, f.Geometry.Polygon)
		} else {
			d.Lines = append(d.Lines, f.Geometry.LineString)
		}
	}
	bb, ok := d.Bounds()
	if !ok {
		m.bbox, m.zoom, m.offsetX, m.offsetY = worldBBox, 1.0, 0, 0
		m.syncTolerance()
		m.status = "view: world"
		return
	}
	m.fit(bb)
	m.status = "view: fit to features"
}
