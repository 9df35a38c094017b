package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexrelief/internal/colorspace"
	"hexrelief/internal/grid"
	"hexrelief/internal/raster"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, grid.Layout{Rows: 5, Cols: 7, Radius: 5, Padding: 2}, cfg.Layout())
	assert.Equal(t, colorspace.Opaque(0, 255, 0), cfg.FlatColor())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relief.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"rows": 2,
		"padding": 0,
		"image": "logo.png",
		"height_function": "/abs/height.js"
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Rows)
	assert.Equal(t, 7, cfg.Cols)
	assert.Equal(t, 0.0, cfg.Padding)
	assert.Equal(t, filepath.Join(dir, "logo.png"), cfg.Image)
	assert.Equal(t, "/abs/height.js", cfg.HeightFunction)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows": "many"}`), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestResolve_FlagsOverride(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{Rows: 9, Color: "c.js", OutputDir: "dist", Workers: 3})
	assert.Equal(t, 9, cfg.Rows)
	assert.Equal(t, 7, cfg.Cols)
	assert.Equal(t, "c.js", cfg.ColorFunction)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Workers)

	var empty Config
	empty.Resolve(Flags{})
	assert.Equal(t, "out", empty.OutputDir)
	assert.Equal(t, raster.MaxDimension, empty.ImageMaxPixel)
	assert.Positive(t, empty.Workers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no rows", func(c *Config) { c.Rows = 0 }},
		{"no cols", func(c *Config) { c.Cols = -1 }},
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"negative padding", func(c *Config) { c.Padding = -0.1 }},
		{"two sides", func(c *Config) { c.Sides = 2 }},
		{"bad color", func(c *Config) { c.Color = "green" }},
		{"negative image width", func(c *Config) { c.ImageWidth = -5 }},
		{"bad timeout", func(c *Config) { c.ScriptTimeout = "soon" }},
		{"negative timeout", func(c *Config) { c.ScriptTimeout = "-1s" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPlacement(t *testing.T) {
	buf := raster.NewBuffer(40, 20)
	cfg := Default()
	assert.Equal(t, raster.Placement{Width: 40, Height: 20}, cfg.Placement(buf))

	cfg.ImageWidth = 100
	assert.Equal(t, raster.Placement{Width: 100, Height: 20}, cfg.Placement(buf))
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	cfg.ScriptTimeout = ""
	d, err = cfg.Timeout()
	require.NoError(t, err)
	assert.Zero(t, d)
}
