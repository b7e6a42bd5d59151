package draw

import (
	"log/slog"
	"slices"

	"geodraw/internal/geom"
)

type LineCap string

const (
	CapRound  LineCap = "round"
	CapButt   LineCap = "butt"
	CapSquare LineCap = "square"
)

type LineJoin string

const (
	JoinRound LineJoin = "round"
	JoinBevel LineJoin = "bevel"
	JoinMiter LineJoin = "miter"
)

const (
	DefaultColor     = "#3388ff"
	DefaultThickness = 2.0
)

// DefaultDashArray is the dash pattern used when none is configured.
var DefaultDashArray = []float64{5, 5}

// Options is the shared styling applied to newly created features.
type Options struct {
	Color     string
	Thickness float64
	DashArray []float64
	LineCap   LineCap
	LineJoin  LineJoin
}

// snapshot returns a copy safe to hand to a mode.
func (o Options) snapshot() Options {
	o.DashArray = slices.Clone(o.DashArray)
	return o
}

func (o Options) color() string {
	if o.Color == "" {
		return DefaultColor
	}
	return o.Color
}

func (o Options) thickness() float64 {
	if o.Thickness <= 0 {
		return DefaultThickness
	}
	return o.Thickness
}

func (o Options) dashArray() []float64 {
	if len(o.DashArray) == 0 {
		return slices.Clone(DefaultDashArray)
	}
	return slices.Clone(o.DashArray)
}

// Config is the construction bundle of a Controller.
type Config struct {
	Options

	// DefaultMode is activated by Enable. Empty means ModeLine.
	DefaultMode Mode
	// Enabled enables the controller as soon as the host is loaded.
	Enabled bool
	// HitTolerance is the near-line distance used by select mode, in
	// coordinate units. Zero means geom.DefaultTolerance.
	HitTolerance float64

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if c.Thickness <= 0 {
		c.Thickness = DefaultThickness
	}
	if len(c.DashArray) == 0 {
		c.DashArray = slices.Clone(DefaultDashArray)
	}
	if c.DefaultMode == "" {
		c.DefaultMode = ModeLine
	}
	if c.HitTolerance <= 0 {
		c.HitTolerance = geom.DefaultTolerance
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
