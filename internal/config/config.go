package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"hexrelief/internal/colorspace"
	"hexrelief/internal/grid"
	"hexrelief/internal/raster"
)

// Config holds the grid, image placement and output settings of one relief.
// A Config is treated as an immutable value: every run recomputes the whole
// relief from it.
type Config struct {
	// Grid
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`
	Radius  float64 `json:"radius"`
	Padding float64 `json:"padding"`
	Sides   int     `json:"sides"`
	Color   string  `json:"color"`
	StartX  float64 `json:"start_x"`
	StartZ  float64 `json:"start_z"`

	// Source image. ImageWidth/ImageHeight are world units; zero means one
	// unit per (scaled) pixel.
	Image         string  `json:"image,omitempty"`
	ImageWidth    float64 `json:"image_width,omitempty"`
	ImageHeight   float64 `json:"image_height,omitempty"`
	ImageMaxPixel int     `json:"image_max_pixels,omitempty"`

	// Mapping function source files
	HeightFunction string `json:"height_function,omitempty"`
	ColorFunction  string `json:"color_function,omitempty"`
	ScriptTimeout  string `json:"script_timeout,omitempty"` // duration string like "250ms"

	// Output
	OutputDir   string `json:"output_dir,omitempty"`
	PreviewSize int    `json:"preview_size,omitempty"`
	Supersample int    `json:"supersample,omitempty"`
	Workers     int    `json:"workers,omitempty"`
}

// Default returns the settings used when nothing else is configured:
// a 5x7 grid of 5 mm hexagons with 2 mm padding painted green.
func Default() Config {
	return Config{
		Rows:          5,
		Cols:          7,
		Radius:        5,
		Padding:       2,
		Sides:         6,
		Color:         "#00ff00",
		ImageMaxPixel: raster.MaxDimension,
		ScriptTimeout: "250ms",
		PreviewSize:   512,
		Supersample:   2,
	}
}

// Load reads a JSON config file. Fields not present in the file keep their
// Default values. Relative paths are resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes JSON on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as indented JSON.
func (c Config) Marshal() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Image     string
	Height    string
	Color     string
	OutputDir string
	Rows      int
	Cols      int
	Workers   int
}

// Resolve applies non-empty flags and fills in derived defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Image != "" {
		c.Image = flags.Image
	}
	if flags.Height != "" {
		c.HeightFunction = flags.Height
	}
	if flags.Color != "" {
		c.ColorFunction = flags.Color
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Rows > 0 {
		c.Rows = flags.Rows
	}
	if flags.Cols > 0 {
		c.Cols = flags.Cols
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.ImageMaxPixel <= 0 {
		c.ImageMaxPixel = raster.MaxDimension
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Image, &c.HeightFunction, &c.ColorFunction} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Validate reports the first setting that cannot produce a relief.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("config: grid must have at least one row and column, got %dx%d", c.Rows, c.Cols)
	}
	if !(c.Radius > 0) {
		return fmt.Errorf("config: radius must be positive, got %v", c.Radius)
	}
	if c.Padding < 0 {
		return fmt.Errorf("config: padding must not be negative, got %v", c.Padding)
	}
	if c.Sides < 3 {
		return fmt.Errorf("config: sides must be at least 3, got %d", c.Sides)
	}
	if c.ImageWidth < 0 || c.ImageHeight < 0 {
		return fmt.Errorf("config: image size must not be negative, got %vx%v", c.ImageWidth, c.ImageHeight)
	}
	if _, err := colorspace.ParseHex(c.Color); err != nil {
		return fmt.Errorf("config: color: %w", err)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Layout returns the grid layout described by the config.
func (c Config) Layout() grid.Layout {
	return grid.Layout{
		Rows:    c.Rows,
		Cols:    c.Cols,
		Radius:  c.Radius,
		Padding: c.Padding,
		OriginX: c.StartX,
		OriginZ: c.StartZ,
	}
}

// Placement returns where buf lies in world space. Without an explicit image
// size the image keeps one world unit per pixel.
func (c Config) Placement(buf *raster.Buffer) raster.Placement {
	if buf == nil {
		return raster.Placement{Width: c.ImageWidth, Height: c.ImageHeight}
	}
	p := raster.PixelPlacement(buf)
	if c.ImageWidth > 0 {
		p.Width = c.ImageWidth
	}
	if c.ImageHeight > 0 {
		p.Height = c.ImageHeight
	}
	return p
}

// FlatColor parses Color, falling back to colorspace.Neutral.
func (c Config) FlatColor() colorspace.RGBA {
	col, err := colorspace.ParseHex(c.Color)
	if err != nil {
		return colorspace.Neutral
	}
	return col
}

// Timeout parses ScriptTimeout. Empty means no deadline.
func (c Config) Timeout() (time.Duration, error) {
	if c.ScriptTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ScriptTimeout)
	if err != nil {
		return 0, fmt.Errorf("config: script_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: script_timeout must not be negative, got %s", d)
	}
	return d, nil
}
