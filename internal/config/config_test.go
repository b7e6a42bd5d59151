package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"geodraw/internal/draw"
)

func TestParse(t *testing.T) {
	input := `
color = "#ff0000"
thickness = 4.5
dash_array = [2.0, 1.0]
default_mode = "polygon"
enabled = false
export_path = "/tmp/out.geojson"
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Color != "#ff0000" {
		t.Errorf("color = %q", cfg.Color)
	}
	if cfg.Thickness != 4.5 {
		t.Errorf("thickness = %v", cfg.Thickness)
	}
	if !reflect.DeepEqual(cfg.DashArray, []float64{2, 1}) {
		t.Errorf("dash_array = %v", cfg.DashArray)
	}
	if cfg.DefaultMode != "polygon" || cfg.Enabled {
		t.Errorf("mode = %q enabled = %v", cfg.DefaultMode, cfg.Enabled)
	}
	if cfg.LineCap != "round" {
		t.Errorf("unset line_cap = %q, want the default", cfg.LineCap)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse(strings.NewReader(`colour = "#fff"`)); err == nil {
		t.Fatal("unknown key accepted")
	}
	if _, err := Parse(strings.NewReader(`thickness = "wide"`)); err == nil {
		t.Fatal("string thickness accepted")
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}

	path := filepath.Join(t.TempDir(), "geodraw.toml")
	if err := os.WriteFile(path, []byte(`default_mode = "select"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultMode != "select" {
		t.Errorf("mode = %q", cfg.DefaultMode)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`color = "#00ff00"
thickness = 3.0`))
	if err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-thickness", "6", "-dash", "4,2,1", "-mode", "freehand"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Color != "#00ff00" {
		t.Errorf("color = %q, want file value kept", cfg.Color)
	}
	if cfg.Thickness != 6 {
		t.Errorf("thickness = %v, want flag value", cfg.Thickness)
	}
	if !reflect.DeepEqual(cfg.DashArray, []float64{4, 2, 1}) {
		t.Errorf("dash = %v", cfg.DashArray)
	}
	if cfg.DefaultMode != "freehand" {
		t.Errorf("mode = %q", cfg.DefaultMode)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		want error
	}{
		{"defaults", func(*Config) {}, nil},
		{"unknown mode", func(c *Config) { c.DefaultMode = "circle" }, draw.ErrInvalidMode},
		{"zero thickness", func(c *Config) { c.Thickness = 0 }, ErrThickness},
		{"negative dash", func(c *Config) { c.DashArray = []float64{1, -1} }, ErrDash},
		{"empty dash", func(c *Config) { c.DashArray = nil }, ErrDash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate error = %v, want %v", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.LineCap = "pointy"
	if cfg.Validate() == nil {
		t.Error("unknown line cap accepted")
	}
	cfg = Default()
	cfg.LineJoin = "glued"
	if cfg.Validate() == nil {
		t.Error("unknown line join accepted")
	}
}

func TestDrawConfig(t *testing.T) {
	cfg := Default()
	cfg.DefaultMode = "dashed-line"
	cfg.LineCap = "butt"
	cfg.HitTolerance = 0.5
	dc := cfg.DrawConfig(nil)
	if dc.DefaultMode != draw.ModeDashedLine {
		t.Errorf("mode = %q", dc.DefaultMode)
	}
	if dc.LineCap != draw.CapButt || dc.HitTolerance != 0.5 || !dc.Enabled {
		t.Errorf("draw config = %+v", dc)
	}
	dc.DashArray[0] = 99
	if cfg.DashArray[0] == 99 {
		t.Error("DrawConfig shares the dash slice")
	}
}

func TestParseDash(t *testing.T) {
	tests := []struct {
		in   string
		want []float64
		ok   bool
	}{
		{"5,5", []float64{5, 5}, true},
		{"4 2 1", []float64{4, 2, 1}, true},
		{" 1.5, 0.5 ", []float64{1.5, 0.5}, true},
		{"", nil, false},
		{"a,b", nil, false},
		{"3,-1", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDash(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseDash(%q) error = %v", tt.in, err)
			}
			if tt.ok && !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseDash(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if got := FormatDash([]float64{5, 2.5}); got != "5,2.5" {
		t.Errorf("FormatDash = %q", got)
	}
}

func TestFromArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodraw.toml")
	if err := os.WriteFile(path, []byte("color = \"#123456\"\nthickness = 5.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, fs, err := FromArgs("geodraw", []string{"-thickness", "9", "-config", path, "drawing.geojson"})
	if err != nil {
		t.Fatalf("FromArgs: %v", err)
	}
	if cfg.Color != "#123456" {
		t.Errorf("color = %q, want the file value", cfg.Color)
	}
	if cfg.Thickness != 9 {
		t.Errorf("thickness = %v, want the flag to win over the file", cfg.Thickness)
	}
	if args := fs.Args(); len(args) != 1 || args[0] != "drawing.geojson" {
		t.Errorf("args = %v", args)
	}

	if _, _, err := FromArgs("geodraw", []string{"-config", filepath.Join(t.TempDir(), "nope.toml")}); err == nil {
		t.Error("missing config file accepted")
	}
}
