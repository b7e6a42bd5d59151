package draw

import (
	"reflect"
	"testing"
)

func withMode(t *testing.T, m Mode) (*Controller, *fakeHost) {
	t.Helper()
	c, h := newEnabled(t, Config{})
	if err := c.SetMode(m); err != nil {
		t.Fatalf("SetMode(%s): %v", m, err)
	}
	return c, h
}

func only(t *testing.T, c *Controller) Feature {
	t.Helper()
	fs := c.Features()
	if len(fs) != 1 {
		t.Fatalf("store has %d features, want 1: %+v", len(fs), fs)
	}
	return fs[0]
}

func TestLineMode(t *testing.T) {
	c, h := withMode(t, ModeLine)

	h.click(0, 0)
	f := only(t, c)
	if want := []Coord{{0, 0}, {0, 0}}; !reflect.DeepEqual(f.Geometry.LineString, want) {
		t.Fatalf("first click geometry = %v, want %v", f.Geometry.LineString, want)
	}

	h.click(1, 1)
	h.fire(EventDoubleClick, 1, 1)
	f = only(t, c)
	if f.Geometry.Type != LineString || f.Properties.Mode != ModeLine {
		t.Fatalf("feature = %+v", f)
	}
	if want := []Coord{{0, 0}, {1, 1}}; !reflect.DeepEqual(f.Geometry.LineString, want) {
		t.Fatalf("coordinates = %v, want %v", f.Geometry.LineString, want)
	}

	// next click starts a new line
	h.click(5, 5)
	if n := len(c.Features()); n != 2 {
		t.Fatalf("features = %d, want 2", n)
	}
}

func TestLineModePreview(t *testing.T) {
	c, h := withMode(t, ModeLine)
	h.fire(EventMove, 3, 3)
	if len(c.Features()) != 0 {
		t.Fatal("move before first click created a feature")
	}

	h.click(0, 0)
	h.click(1, 1)
	h.fire(EventMove, 2, 0)
	if want := []Coord{{0, 0}, {1, 1}, {2, 0}}; !reflect.DeepEqual(only(t, c).Geometry.LineString, want) {
		t.Fatalf("preview = %v, want %v", only(t, c).Geometry.LineString, want)
	}
	h.fire(EventMove, 3, 0)
	if want := []Coord{{0, 0}, {1, 1}, {3, 0}}; !reflect.DeepEqual(only(t, c).Geometry.LineString, want) {
		t.Fatalf("preview = %v, want %v", only(t, c).Geometry.LineString, want)
	}

	h.fire(EventDoubleClick, 3, 0)
	if want := []Coord{{0, 0}, {1, 1}}; !reflect.DeepEqual(only(t, c).Geometry.LineString, want) {
		t.Fatalf("finished = %v, want preview dropped", only(t, c).Geometry.LineString)
	}
}

func TestLineModePressPreventsDefault(t *testing.T) {
	_, h := withMode(t, ModeLine)
	if !h.fire(EventPress, 0, 0) {
		t.Fatal("press not default-prevented")
	}
	if !h.fire(EventDoubleClick, 0, 0) {
		t.Fatal("double-click not default-prevented")
	}
}

func TestLineModeAbandoned(t *testing.T) {
	c, h := withMode(t, ModeLine)
	h.click(0, 0)
	h.fire(EventMove, 4, 4)
	c.Disable()
	if n := len(c.Features()); n != 0 {
		t.Fatalf("features = %d, want abandoned line removed", n)
	}
	if n := len(h.sources[SourceFeatures].Features); n != 0 {
		t.Fatalf("rendered features = %d, want 0", n)
	}
}

func TestLineModeCancelDropsPreviewVertex(t *testing.T) {
	c, h := withMode(t, ModeLine)
	h.click(0, 0)
	h.click(1, 1)
	h.fire(EventMove, 9, 9)
	if err := c.SetMode(ModeSelect); err != nil {
		t.Fatal(err)
	}
	if want := []Coord{{0, 0}, {1, 1}}; !reflect.DeepEqual(only(t, c).Geometry.LineString, want) {
		t.Fatalf("kept = %v, want %v", only(t, c).Geometry.LineString, want)
	}
}

func TestDashedLineMode(t *testing.T) {
	c, h := withMode(t, ModeDashedLine)
	h.click(0, 0)
	h.click(2, 0)
	h.fire(EventDoubleClick, 2, 0)
	f := only(t, c)
	if f.Properties.Mode != ModeDashedLine {
		t.Errorf("mode = %q", f.Properties.Mode)
	}
	if !reflect.DeepEqual(f.Properties.DashArray, DefaultDashArray) {
		t.Errorf("dash = %v, want %v", f.Properties.DashArray, DefaultDashArray)
	}
}

func TestFreehandMode(t *testing.T) {
	c, h := withMode(t, ModeFreehand)
	h.fire(EventMove, 9, 9)
	if len(c.Features()) != 0 {
		t.Fatal("move while idle created a feature")
	}

	h.fire(EventClick, 0, 0)
	if got := only(t, c).Geometry.LineString; !reflect.DeepEqual(got, []Coord{{0, 0}}) {
		t.Fatalf("start = %v", got)
	}
	h.fire(EventMove, 0, 0)
	h.fire(EventMove, 1, 0)
	h.fire(EventMove, 1, 0)
	h.fire(EventMove, 2, 1)
	h.fire(EventClick, 2, 1)
	h.fire(EventMove, 5, 5)

	f := only(t, c)
	if want := []Coord{{0, 0}, {1, 0}, {2, 1}}; !reflect.DeepEqual(f.Geometry.LineString, want) {
		t.Fatalf("stroke = %v, want %v", f.Geometry.LineString, want)
	}
	if f.Properties.Mode != ModeFreehand || f.Properties.DashArray != nil {
		t.Errorf("props = %+v", f.Properties)
	}
}

func TestFreehandModeDiscardsSinglePoint(t *testing.T) {
	c, h := withMode(t, ModeFreehand)
	h.fire(EventClick, 0, 0)
	h.fire(EventMove, 0, 0)
	h.fire(EventClick, 0, 0)
	if n := len(c.Features()); n != 0 {
		t.Fatalf("features = %d, want single point stroke removed", n)
	}
}

func TestFreehandModeLeaveFinishes(t *testing.T) {
	c, h := withMode(t, ModeFreehand)
	h.fire(EventClick, 0, 0)
	h.fire(EventMove, 1, 1)
	h.fire(EventLeave, 1, 1)
	h.fire(EventMove, 2, 2)
	if got := only(t, c).Geometry.LineString; len(got) != 2 {
		t.Fatalf("stroke = %v, want it finished on leave", got)
	}
}

func TestFreehandDashedMode(t *testing.T) {
	c, h := withMode(t, ModeFreehandDashed)
	c.SetDashArray([]float64{1, 3})
	h.fire(EventClick, 0, 0)
	h.fire(EventMove, 1, 1)
	c.Disable()
	f := only(t, c)
	if f.Properties.Mode != ModeFreehandDashed || !reflect.DeepEqual(f.Properties.DashArray, []float64{1, 3}) {
		t.Fatalf("props = %+v", f.Properties)
	}
}

func TestPolygonMode(t *testing.T) {
	c, h := withMode(t, ModePolygon)
	h.click(0, 0)
	if want := [][]Coord{{{0, 0}, {0, 0}, {0, 0}, {0, 0}}}; !reflect.DeepEqual(only(t, c).Geometry.Polygon, want) {
		t.Fatalf("first click ring = %v, want %v", only(t, c).Geometry.Polygon, want)
	}
	h.click(1, 0)
	h.click(1, 1)
	h.fire(EventMove, 0, 1)
	if want := [][]Coord{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}; !reflect.DeepEqual(only(t, c).Geometry.Polygon, want) {
		t.Fatalf("preview ring = %v, want %v", only(t, c).Geometry.Polygon, want)
	}
	if !h.fire(EventDoubleClick, 1, 1) {
		t.Error("double-click not default-prevented")
	}

	f := only(t, c)
	if f.Geometry.Type != Polygon || f.Properties.Mode != ModePolygon {
		t.Fatalf("feature = %+v", f)
	}
	if want := [][]Coord{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}; !reflect.DeepEqual(f.Geometry.Polygon, want) {
		t.Fatalf("ring = %v, want %v", f.Geometry.Polygon, want)
	}
}

func TestPolygonModeSecondaryClickFinishes(t *testing.T) {
	c, h := withMode(t, ModePolygon)
	for _, p := range []Coord{{0, 0}, {2, 0}, {2, 2}, {0, 2}} {
		h.click(p[0], p[1])
	}
	h.fire(EventSecondaryClick, 5, 5)
	ring := only(t, c).Geometry.Polygon[0]
	if len(ring) != 5 || ring[0] != ring[4] {
		t.Fatalf("ring = %v, want closed 5-vertex ring", ring)
	}
	h.click(9, 9)
	if n := len(c.Features()); n != 2 {
		t.Fatalf("features = %d, want a second polygon started", n)
	}
}

func TestPolygonModeAbandoned(t *testing.T) {
	c, h := withMode(t, ModePolygon)
	h.click(0, 0)
	h.click(1, 0)
	c.Disable()
	if n := len(c.Features()); n != 0 {
		t.Fatalf("features = %d, want 2-vertex polygon removed", n)
	}
}

func TestPolygonModeFinishBelowMinimum(t *testing.T) {
	c, h := withMode(t, ModePolygon)
	h.click(0, 0)
	h.click(1, 0)
	h.fire(EventDoubleClick, 1, 0)
	if n := len(c.Features()); n != 0 {
		t.Fatalf("features = %d, want 2-vertex polygon discarded", n)
	}
}

func TestPolygonModeCancelClosesRing(t *testing.T) {
	c, h := withMode(t, ModePolygon)
	h.click(0, 0)
	h.click(1, 0)
	h.click(1, 1)
	h.fire(EventMove, 7, 7)
	c.Disable()
	if want := [][]Coord{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}; !reflect.DeepEqual(only(t, c).Geometry.Polygon, want) {
		t.Fatalf("ring = %v, want %v", only(t, c).Geometry.Polygon, want)
	}
}

func TestSelectDragLine(t *testing.T) {
	c, h := withMode(t, ModeSelect)
	id := c.AddFeature(lineFeature(Coord{0, 0}, Coord{2, 2}))

	if !h.fire(EventPress, 0, 0) {
		t.Error("press on a feature not default-prevented")
	}
	if h.cursor != CursorMove {
		t.Errorf("cursor while dragging = %q, want move", h.cursor)
	}
	h.fire(EventMove, 0.5, 0)
	h.fire(EventMove, 1, 0)
	h.fire(EventMove, 1, 0)
	h.fire(EventRelease, 1, 0)

	f, _ := c.store.GetFeature(id)
	if want := []Coord{{1, 0}, {3, 2}}; !reflect.DeepEqual(f.Geometry.LineString, want) {
		t.Fatalf("dragged = %v, want %v", f.Geometry.LineString, want)
	}
	if h.cursor != CursorPointer {
		t.Errorf("cursor after release = %q, want pointer", h.cursor)
	}
	h.fire(EventMove, 5, 5)
	f, _ = c.store.GetFeature(id)
	if f.Geometry.LineString[0] != (Coord{1, 0}) {
		t.Fatal("move after release still dragged the feature")
	}
}

func TestSelectDragPolygon(t *testing.T) {
	c, h := withMode(t, ModeSelect)
	ring := []Coord{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	id := c.AddFeature(NewPolygon([][]Coord{ring}, Properties{Mode: ModePolygon, Color: "#000", Thickness: 1}))

	h.fire(EventPress, 2, 2)
	h.fire(EventMove, 3, 1)
	h.fire(EventRelease, 3, 1)

	f, _ := c.store.GetFeature(id)
	want := [][]Coord{{{1, -1}, {5, -1}, {5, 3}, {1, 3}, {1, -1}}}
	if !reflect.DeepEqual(f.Geometry.Polygon, want) {
		t.Fatalf("dragged = %v, want %v", f.Geometry.Polygon, want)
	}
}

func TestSelectClick(t *testing.T) {
	c, h := withMode(t, ModeSelect)
	c.AddFeature(lineFeature(Coord{0, 0}, Coord{10, 0}))
	poly := c.AddFeature(NewPolygon([][]Coord{{{0, 0}, {4, 0}, {4, 4}, {0, 0}}}, Properties{Mode: ModePolygon, Color: "#000", Thickness: 1}))

	h.fire(EventClick, 3, 1)
	sel, ok := c.Selected()
	if !ok || sel.ID != poly {
		t.Fatalf("selected = %+v, %v; want polygon", sel, ok)
	}
	if n := len(h.sources[SourceSelected].Features); n != 1 {
		t.Fatalf("highlight has %d features", n)
	}

	// both features contain (1, 0); store order wins
	h.fire(EventClick, 1, 0)
	if sel, _ := c.Selected(); sel.Properties.Mode != ModeLine {
		t.Fatalf("selected = %+v, want the first stored feature", sel)
	}

	h.fire(EventClick, 20, 20)
	if _, ok := c.Selected(); ok {
		t.Fatal("click on empty map kept the selection")
	}
	if n := len(h.sources[SourceSelected].Features); n != 0 {
		t.Fatalf("highlight has %d features after deselect", n)
	}
}

func TestSelectClickDuringDragIgnored(t *testing.T) {
	c, h := withMode(t, ModeSelect)
	id := c.AddFeature(lineFeature(Coord{0, 0}, Coord{2, 2}))
	h.fire(EventPress, 1, 1)
	h.fire(EventClick, 50, 50)
	if sel, ok := c.Selected(); !ok || sel.ID != id {
		t.Fatal("click during drag changed the selection")
	}
}

func TestSelectPressOnEmptyMap(t *testing.T) {
	c, h := withMode(t, ModeSelect)
	id := c.AddFeature(lineFeature(Coord{0, 0}, Coord{2, 2}))
	if h.fire(EventPress, 5, 0) {
		t.Error("press on empty map default-prevented")
	}
	h.fire(EventMove, 6, 0)
	f, _ := c.store.GetFeature(id)
	if f.Geometry.LineString[0] != (Coord{0, 0}) {
		t.Fatal("feature moved without a drag")
	}
}

func TestSelectDisableClearsSelection(t *testing.T) {
	c, h := withMode(t, ModeSelect)
	c.AddFeature(lineFeature(Coord{0, 0}, Coord{2, 2}))
	h.fire(EventClick, 1, 1)
	if err := c.SetMode(ModeLine); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Selected(); ok {
		t.Fatal("selection survived leaving select mode")
	}
	if n := len(h.sources[SourceSelected].Features); n != 0 {
		t.Fatalf("highlight has %d features", n)
	}
}

func TestRemoveSelectedFeature(t *testing.T) {
	c, h := withMode(t, ModeSelect)
	id := c.AddFeature(lineFeature(Coord{0, 0}, Coord{2, 2}))
	h.fire(EventClick, 1, 1)
	c.RemoveFeature(id)
	if _, ok := c.Selected(); ok {
		t.Fatal("removed feature still selected")
	}
	if n := len(h.sources[SourceFeatures].Features); n != 0 {
		t.Fatalf("rendered features = %d", n)
	}
}

func TestClearRestartsShapeInProgress(t *testing.T) {
	tests := []struct {
		mode   Mode
		before func(h *fakeHost)
		after  func(h *fakeHost)
		want   GeometryType
	}{
		{
			mode:   ModeLine,
			before: func(h *fakeHost) {
				h.click(0, 0)
				h.click(1, 1)
			},
			after: func(h *fakeHost) {
				h.click(2, 2)
				h.click(3, 3)
				h.fire(EventDoubleClick, 3, 3)
			},
			want: LineString,
		},
		{
			mode:   ModePolygon,
			before: func(h *fakeHost) { h.click(0, 0) },
			after: func(h *fakeHost) {
				h.click(0, 0)
				h.click(1, 0)
				h.click(1, 1)
				h.fire(EventDoubleClick, 1, 1)
			},
			want: Polygon,
		},
		{
			mode:   ModeFreehand,
			before: func(h *fakeHost) {
				h.click(0, 0)
				h.fire(EventMove, 1, 1)
			},
			after: func(h *fakeHost) {
				h.click(2, 2)
				h.fire(EventMove, 3, 3)
				h.click(3, 3)
			},
			want: LineString,
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c, h := withMode(t, tt.mode)
			tt.before(h)
			c.Clear()
			if n := len(c.Features()); n != 0 {
				t.Fatalf("features after Clear = %d", n)
			}
			if m, _ := c.Mode(); m != tt.mode {
				t.Fatalf("mode after Clear = %q, want %q", m, tt.mode)
			}
			tt.after(h)
			if f := only(t, c); f.Geometry.Type != tt.want {
				t.Fatalf("geometry = %s, want %s", f.Geometry.Type, tt.want)
			}
		})
	}
}
