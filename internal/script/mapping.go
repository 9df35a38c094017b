package script

import (
	"fmt"
	"math"
	"time"

	"github.com/dop251/goja"

	"hexrelief/internal/colorspace"
	"hexrelief/internal/monitoring"
	"hexrelief/internal/relief"
)

// CompileHeight compiles src into a HeightFunc. The function's result must be
// a finite number.
func CompileHeight(src string, timeout time.Duration) (relief.HeightFunc, error) {
	p, err := Compile("height", src, timeout)
	if err != nil {
		return nil, err
	}
	return func(row, col int, x, z float64, avg *colorspace.Sample, samples []colorspace.Sample) (float64, error) {
		v, err := p.Call(row, col, x, z, avg, samples)
		if err != nil {
			return 0, err
		}
		return toHeight(v)
	}, nil
}

// CompileColor compiles src into a ColorFunc. The function must return an
// object with numeric r, g, b (0–255) and optional a (0–1), or a hex string.
func CompileColor(src string, timeout time.Duration) (relief.ColorFunc, error) {
	p, err := Compile("color", src, timeout)
	if err != nil {
		return nil, err
	}
	return func(row, col int, x, z float64, avg *colorspace.Sample, samples []colorspace.Sample) (colorspace.RGBA, error) {
		v, err := p.Call(row, col, x, z, avg, samples)
		if err != nil {
			return colorspace.RGBA{}, err
		}
		return toColor(v)
	}, nil
}

// Functions is the pair of mapping functions for one relief.
type Functions struct {
	Height relief.HeightFunc
	Color  relief.ColorFunc
}

// Load compiles both sources. Empty height source means no height function;
// empty color source selects height-only mode. Source that fails to compile
// is logged and replaced by DefaultHeight or DefaultColor so the relief can
// still be generated.
func Load(heightSrc, colorSrc string, timeout time.Duration) Functions {
	var fns Functions
	if heightSrc != "" {
		fn, err := CompileHeight(heightSrc, timeout)
		if err != nil {
			monitoring.Logf("%v; using constant height 0", err)
			fn = DefaultHeight
		}
		fns.Height = fn
	}
	if colorSrc != "" {
		fn, err := CompileColor(colorSrc, timeout)
		if err != nil {
			monitoring.Logf("%v; using neutral color", err)
			fn = DefaultColor
		}
		fns.Color = fn
	}
	return fns
}

// DefaultHeight replaces a height function that failed to compile.
func DefaultHeight(int, int, float64, float64, *colorspace.Sample, []colorspace.Sample) (float64, error) {
	return 0, nil
}

// DefaultColor replaces a color function that failed to compile.
func DefaultColor(int, int, float64, float64, *colorspace.Sample, []colorspace.Sample) (colorspace.RGBA, error) {
	return colorspace.Neutral, nil
}

func toHeight(v goja.Value) (float64, error) {
	if isMissing(v) {
		return 0, fmt.Errorf("height: function returned %v", v)
	}
	f, ok := number(v)
	if !ok {
		return 0, fmt.Errorf("height: expected a number, got %s", v.ExportType())
	}
	return f, nil
}

func toColor(v goja.Value) (colorspace.RGBA, error) {
	if isMissing(v) {
		return colorspace.RGBA{}, fmt.Errorf("color: function returned %v", v)
	}
	if s, ok := v.Export().(string); ok {
		c, err := colorspace.ParseHex(s)
		if err != nil {
			return colorspace.RGBA{}, fmt.Errorf("color: %w", err)
		}
		return c, nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return colorspace.RGBA{}, fmt.Errorf("color: expected an object, got %s", v.ExportType())
	}

	var ch [3]uint8
	for i, key := range []string{"r", "g", "b"} {
		f, ok := number(obj.Get(key))
		if !ok {
			return colorspace.RGBA{}, fmt.Errorf("color: %q is not a number", key)
		}
		ch[i] = channel(f)
	}
	c := colorspace.Opaque(ch[0], ch[1], ch[2])

	if a := obj.Get("a"); !isMissing(a) {
		f, ok := number(a)
		if !ok {
			return colorspace.RGBA{}, fmt.Errorf("color: %q is not a number", "a")
		}
		c.A, c.HasAlpha = f, true
	}
	return c, nil
}

func isMissing(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

// number accepts JS numbers only; booleans and numeric strings are rejected.
func number(v goja.Value) (float64, bool) {
	if isMissing(v) {
		return 0, false
	}
	var f float64
	switch n := v.Export().(type) {
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// channel rounds half-up and clamps to a byte.
func channel(f float64) uint8 {
	v := math.Floor(f + 0.5)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
