// Package config loads the geodraw settings from an optional TOML file and
// command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"geodraw/internal/draw"
)

type Config struct {
	Color        string    `toml:"color"`
	Thickness    float64   `toml:"thickness"`
	DashArray    []float64 `toml:"dash_array"`
	LineCap      string    `toml:"line_cap"`
	LineJoin     string    `toml:"line_join"`
	DefaultMode  string    `toml:"default_mode"`
	Enabled      bool      `toml:"enabled"`
	HitTolerance float64   `toml:"hit_tolerance"`
	LogFile      string    `toml:"log_file"`
	ExportPath   string    `toml:"export_path"`
}

// Default returns the settings used when no file or flag says otherwise.
func Default() Config {
	return Config{
		Color:       draw.DefaultColor,
		Thickness:   draw.DefaultThickness,
		DashArray:   append([]float64(nil), draw.DefaultDashArray...),
		LineCap:     string(draw.CapRound),
		LineJoin:    string(draw.JoinRound),
		DefaultMode: string(draw.ModeLine),
		Enabled:     true,
		ExportPath:  "drawing.geojson",
	}
}

// Parse decodes TOML over the defaults. Keys that are not part of Config
// are an error.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("parse config: unknown key %q", keys[0].String())
	}
	return cfg, nil
}

// Load reads path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Bind registers one flag per setting on fs, defaulting to the values
// already in c, so flags override the file.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Color, "color", c.Color, "stroke colour of new features")
	fs.Float64Var(&c.Thickness, "thickness", c.Thickness, "stroke thickness of new features")
	fs.Func("dash", "dash pattern of dashed modes, comma separated (default "+FormatDash(c.DashArray)+")", func(s string) error {
		d, err := ParseDash(s)
		if err != nil {
			return err
		}
		c.DashArray = d
		return nil
	})
	fs.StringVar(&c.LineCap, "cap", c.LineCap, "line cap: round, butt or square")
	fs.StringVar(&c.LineJoin, "join", c.LineJoin, "line join: round, bevel or miter")
	fs.StringVar(&c.DefaultMode, "mode", c.DefaultMode, "mode activated on start")
	fs.BoolVar(&c.Enabled, "enabled", c.Enabled, "start with drawing enabled")
	fs.Float64Var(&c.HitTolerance, "tolerance", c.HitTolerance, "select hit tolerance in degrees, 0 for one cell")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "write debug logs to this file")
	fs.StringVar(&c.ExportPath, "out", c.ExportPath, "GeoJSON export path")
}

// FromArgs builds the configuration for a command line. The file named by
// -config is applied first and every other flag on top of it. The returned
// FlagSet holds the positional arguments.
func FromArgs(name string, args []string) (Config, *flag.FlagSet, error) {
	newSet := func(c *Config, path *string) *flag.FlagSet {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.StringVar(path, "config", "", "TOML config file")
		c.Bind(fs)
		return fs
	}

	var path string
	scratch := Default()
	first := newSet(&scratch, &path)
	first.SetOutput(io.Discard)
	if err := first.Parse(args); err != nil {
		// report through the second pass so usage is printed once
		fs := newSet(&scratch, &path)
		return Config{}, fs, fs.Parse(args)
	}

	cfg, err := Load(path)
	if err != nil {
		return Config{}, first, err
	}
	fs := newSet(&cfg, &path)
	if err := fs.Parse(args); err != nil {
		return Config{}, fs, err
	}
	return cfg, fs, nil
}

var (
	ErrThickness = errors.New("thickness must be positive")
	ErrDash      = errors.New("invalid dash pattern")
)

// Validate checks every setting that would otherwise fail later.
func (c Config) Validate() error {
	if _, err := draw.ParseMode(c.DefaultMode); err != nil {
		return fmt.Errorf("default_mode: %w", err)
	}
	if c.Thickness <= 0 {
		return fmt.Errorf("%w: %v", ErrThickness, c.Thickness)
	}
	if len(c.DashArray) == 0 {
		return fmt.Errorf("%w: empty", ErrDash)
	}
	for _, v := range c.DashArray {
		if v < 0 {
			return fmt.Errorf("%w: negative length %v", ErrDash, v)
		}
	}
	switch draw.LineCap(c.LineCap) {
	case draw.CapRound, draw.CapButt, draw.CapSquare:
	default:
		return fmt.Errorf("unknown line cap %q", c.LineCap)
	}
	switch draw.LineJoin(c.LineJoin) {
	case draw.JoinRound, draw.JoinBevel, draw.JoinMiter:
	default:
		return fmt.Errorf("unknown line join %q", c.LineJoin)
	}
	if c.HitTolerance < 0 {
		return fmt.Errorf("hit_tolerance must not be negative: %v", c.HitTolerance)
	}
	return nil
}

// DrawConfig maps the settings onto a controller configuration. Call
// Validate first; an unknown mode falls back to line.
func (c Config) DrawConfig(log *slog.Logger) draw.Config {
	mode, err := draw.ParseMode(c.DefaultMode)
	if err != nil {
		mode = draw.ModeLine
	}
	return draw.Config{
		Options: draw.Options{
			Color:     c.Color,
			Thickness: c.Thickness,
			DashArray: append([]float64(nil), c.DashArray...),
			LineCap:   draw.LineCap(c.LineCap),
			LineJoin:  draw.LineJoin(c.LineJoin),
		},
		DefaultMode:  mode,
		Enabled:      c.Enabled,
		HitTolerance: c.HitTolerance,
		Logger:       log,
	}
}

// ParseDash reads "5,5" or "5 5" style patterns.
func ParseDash(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrDash, s)
	}
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrDash, s)
		}
		out = append(out, v)
	}
	return out, nil
}

func FormatDash(d []float64) string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
