package draw

import (
	"fmt"
	"log/slog"
	"slices"

	geojson "github.com/paulmach/go.geojson"

	"geodraw/internal/geom"
)

// Controller owns the feature store, the six modes and the shared options,
// and keeps exactly one mode active while enabled.
type Controller struct {
	host    Host
	store   *Store
	out     surface
	cfg     Config
	opts    Options
	log     *slog.Logger
	modes   map[Mode]mode
	sel     *selectMode
	current Mode
	enabled bool

	ready     bool
	destroyed bool
}

// New builds a controller on host. Layers are created right away when the
// host is loaded, otherwise once it reports loading finished.
func New(host Host, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	c := &Controller{
		host:  host,
		store: NewStore(),
		cfg:   cfg,
		opts:  cfg.Options.snapshot(),
		log:   cfg.Logger.With(slog.String("component", "draw")),
	}
	c.out = surface{host: host, store: c.store}
	c.initializeModes()
	if host.Loaded() {
		c.setup()
	} else {
		host.OnceLoaded(c.setup)
	}
	return c
}

func (c *Controller) initializeModes() {
	base := func() modeBase { return newModeBase(c.host, c.store, c.opts) }
	c.sel = newSelectMode(base(), c.cfg.HitTolerance)
	c.modes = map[Mode]mode{
		ModeLine:           newLineMode(base(), solidStamp(ModeLine)),
		ModeDashedLine:     newLineMode(base(), dashedStamp(ModeDashedLine)),
		ModeFreehand:       newFreehandMode(base(), solidStamp(ModeFreehand)),
		ModeFreehandDashed: newFreehandMode(base(), dashedStamp(ModeFreehandDashed)),
		ModePolygon:        newPolygonMode(base()),
		ModeSelect:         c.sel,
	}
}

func (c *Controller) setup() {
	if c.destroyed || c.ready {
		return
	}
	c.ready = true
	c.setupLayers()
	if c.cfg.Enabled {
		c.Enable()
	}
}

// Paint values of the form "{prop}" read the feature property of that name.
func (c *Controller) setupLayers() {
	if !c.host.HasSource(SourceFeatures) {
		c.host.AddSource(SourceFeatures, geojson.NewFeatureCollection())
		c.host.AddLayer(Layer{
			ID: LayerFeaturesLine, Type: LayerLine, Source: SourceFeatures,
			Filter: []Mode{ModeLine, ModeFreehand},
			Paint:  map[string]any{"line-color": "{color}", "line-width": "{thickness}"},
			Layout: c.lineLayout(),
		})
		c.host.AddLayer(Layer{
			ID: LayerFeaturesDashedLine, Type: LayerLine, Source: SourceFeatures,
			Filter: []Mode{ModeDashedLine, ModeFreehandDashed},
			Paint: map[string]any{
				"line-color": "{color}", "line-width": "{thickness}",
				"line-dasharray": slices.Clone(c.opts.DashArray),
			},
			Layout: c.lineLayout(),
		})
		c.host.AddLayer(Layer{
			ID: LayerFeaturesPolygon, Type: LayerFill, Source: SourceFeatures,
			Filter: []Mode{ModePolygon},
			Paint:  map[string]any{"fill-color": "{color}", "fill-opacity": 0.3},
		})
		c.host.AddLayer(Layer{
			ID: LayerFeaturesPolygonOutline, Type: LayerLine, Source: SourceFeatures,
			Filter: []Mode{ModePolygon},
			Paint:  map[string]any{"line-color": "{color}", "line-width": "{thickness}"},
			Layout: c.lineLayout(),
		})
	}
	if !c.host.HasSource(SourceSelected) {
		c.host.AddSource(SourceSelected, geojson.NewFeatureCollection())
		c.host.AddLayer(Layer{
			ID: LayerSelectedLine, Type: LayerLine, Source: SourceSelected,
			Paint: map[string]any{"line-color": SelectedColor, "line-width": 3.0, "line-dasharray": []float64{2, 2}},
		})
		c.host.AddLayer(Layer{
			ID: LayerSelectedPolygon, Type: LayerFill, Source: SourceSelected,
			Filter: []Mode{ModePolygon},
			Paint:  map[string]any{"fill-color": SelectedColor, "fill-opacity": 0.2},
		})
		c.host.AddLayer(Layer{
			ID: LayerSelectedPolygonOutline, Type: LayerLine, Source: SourceSelected,
			Filter: []Mode{ModePolygon},
			Paint:  map[string]any{"line-color": SelectedColor, "line-width": 3.0, "line-dasharray": []float64{2, 2}},
		})
	}
}

// lineLayout builds a fresh layout map for one line layer.
func (c *Controller) lineLayout() map[string]any {
	layout := map[string]any{}
	if c.opts.LineCap != "" {
		layout["line-cap"] = string(c.opts.LineCap)
	}
	if c.opts.LineJoin != "" {
		layout["line-join"] = string(c.opts.LineJoin)
	}
	return layout
}

// Enable activates the default mode. It is a no-op when already enabled
// and after Destroy.
func (c *Controller) Enable() {
	if c.enabled || c.destroyed {
		return
	}
	c.enabled = true
	c.log.Debug("enable", slog.String("mode", string(c.cfg.DefaultMode)))
	if err := c.SetMode(c.cfg.DefaultMode); err != nil {
		c.log.Warn("default mode rejected", slog.Any("err", err))
	}
}

// Disable deactivates the current mode, cancelling any shape in progress.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.enabled = false
	if m, ok := c.modes[c.current]; ok {
		m.disable()
	}
	c.current = ""
	c.log.Debug("disable")
}

// SetMode switches the active mode. The mode is validated before the
// current one is disabled, so a failed call changes nothing.
func (c *Controller) SetMode(id Mode) error {
	if !c.enabled {
		c.log.Warn("set mode while disabled", slog.String("mode", string(id)))
		return ErrInvalidState
	}
	next, ok := c.modes[id]
	if !ok {
		c.log.Warn("set unknown mode", slog.String("mode", string(id)))
		return fmt.Errorf("%w: %q", ErrInvalidMode, id)
	}
	if cur, ok := c.modes[c.current]; ok {
		cur.disable()
	}
	c.current = id
	next.setOptions(c.opts)
	next.enable()
	c.log.Debug("mode", slog.String("mode", string(id)))
	return nil
}

// Mode returns the active mode.
func (c *Controller) Mode() (Mode, bool) { return c.current, c.current != "" }

func (c *Controller) Enabled() bool { return c.enabled }

// Options returns a copy of the shared drawing options.
func (c *Controller) Options() Options { return c.opts.snapshot() }

func (c *Controller) SetColor(color string) {
	c.opts.Color = color
	c.pushOptions()
}

func (c *Controller) SetThickness(n float64) {
	c.opts.Thickness = n
	c.pushOptions()
}

// SetDashArray changes the dash pattern of new dashed features and of the
// dashed feature layer.
func (c *Controller) SetDashArray(pattern []float64) {
	c.opts.DashArray = slices.Clone(pattern)
	c.pushOptions()
	if c.host.HasLayer(LayerFeaturesDashedLine) {
		c.host.SetPaintProperty(LayerFeaturesDashedLine, "line-dasharray", slices.Clone(pattern))
	}
}

// SetLineCap changes the cap of every feature line layer.
func (c *Controller) SetLineCap(v LineCap) {
	c.opts.LineCap = v
	c.pushOptions()
	c.setLineLayout("line-cap", string(v))
}

// SetLineJoin changes the join of every feature line layer.
func (c *Controller) SetLineJoin(v LineJoin) {
	c.opts.LineJoin = v
	c.pushOptions()
	c.setLineLayout("line-join", string(v))
}

func (c *Controller) setLineLayout(name, value string) {
	for _, id := range featureLineLayers {
		if c.host.HasLayer(id) {
			c.host.SetLayoutProperty(id, name, value)
		}
	}
}

// SetHitTolerance changes the select distance. Hosts whose scale changes
// with zoom call it after every zoom step. Non-positive values restore
// geom.DefaultTolerance.
func (c *Controller) SetHitTolerance(tol float64) {
	if tol <= 0 {
		tol = geom.DefaultTolerance
	}
	c.sel.tolerance = tol
}

// pushOptions hands the current options to every mode, active or not.
func (c *Controller) pushOptions() {
	for _, m := range c.modes {
		m.setOptions(c.opts)
	}
}

func (c *Controller) Features() []Feature { return c.store.AllFeatures() }

func (c *Controller) GeoJSON() *geojson.FeatureCollection { return c.store.ExportGeoJSON() }

// ExportGeoJSON returns the marshalled FeatureCollection.
func (c *Controller) ExportGeoJSON() ([]byte, error) {
	return c.store.ExportGeoJSON().MarshalJSON()
}

// AddFeature stores f as drawn and re-renders.
func (c *Controller) AddFeature(f Feature) string {
	id := c.store.AddFeature(f)
	c.out.renderFeatures()
	return id
}

// RemoveFeature deletes a feature and re-renders; selection of it is lost.
func (c *Controller) RemoveFeature(id string) {
	c.store.RemoveFeature(id)
	c.out.renderFeatures()
	if sel, ok := c.sel.Selected(); ok && sel == id {
		c.sel.selected = ""
		c.out.renderSelection("")
	}
}

// ImportGeoJSON adds the line and polygon features of a FeatureCollection
// and returns how many were added.
func (c *Controller) ImportGeoJSON(b []byte) (int, error) {
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return 0, fmt.Errorf("import geojson: %w", err)
	}
	n := 0
	for _, in := range fc.Features {
		f, ok := FeatureFromGeoJSON(in, c.opts)
		if !ok {
			continue
		}
		c.store.AddFeature(f)
		n++
	}
	c.out.renderFeatures()
	c.log.Debug("import", slog.Int("features", n))
	return n, nil
}

// Selected returns the feature highlighted by select mode.
func (c *Controller) Selected() (Feature, bool) {
	id, ok := c.sel.Selected()
	if !ok {
		return Feature{}, false
	}
	return c.store.GetFeature(id)
}

// Clear removes every feature and empties both rendered sources. A shape
// in progress is dropped and the active mode starts over.
func (c *Controller) Clear() {
	m, active := c.modes[c.current]
	if active {
		m.disable()
	}
	c.store.Clear()
	c.out.clear()
	if active {
		m.enable()
	}
	c.log.Debug("clear")
}

// Destroy disables the controller and removes everything it added to the
// host. Calling it again is harmless.
func (c *Controller) Destroy() {
	c.Disable()
	c.store.Clear()
	c.destroyed = true
	for _, id := range layerIDs {
		if c.host.HasLayer(id) {
			c.host.RemoveLayer(id)
		}
	}
	for _, id := range []string{SourceFeatures, SourceSelected} {
		if c.host.HasSource(id) {
			c.host.RemoveSource(id)
		}
	}
	c.log.Debug("destroy")
}
