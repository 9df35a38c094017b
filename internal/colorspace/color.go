package colorspace

import (
	"fmt"
	"strconv"
	"strings"
)

// Sample is one sampled pixel (or a region average): 8-bit RGB, alpha
// normalised to [0,1] and the derived HSL.
type Sample struct {
	R, G, B uint8
	A       float64
	HSL
}

// NewSample builds a Sample from raw RGBA bytes.
func NewSample(r, g, b, a uint8) Sample {
	return Sample{R: r, G: g, B: b, A: float64(a) / 255, HSL: RGBToHSL(r, g, b)}
}

// RGBA is a flat surface color. Alpha is optional; HasAlpha reports
// whether A was supplied.
type RGBA struct {
	R, G, B  uint8
	A        float64
	HasAlpha bool
}

// Opaque returns an RGBA without an alpha component.
func Opaque(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b}
}

// Alpha returns A when set, otherwise 1.
func (c RGBA) Alpha() float64 {
	if !c.HasAlpha {
		return 1
	}
	return c.A
}

// Fallback colors used when a mapping function cannot produce one.
var (
	// Magenta with zero alpha flags a failed color mapping in previews and exports.
	FaultColor = RGBA{R: 255, G: 0, B: 255, A: 0, HasAlpha: true}

	// Neutral is returned by the placeholder color function substituted for
	// source that failed to compile.
	Neutral = Opaque(128, 128, 128)
)

// ParseHex parses "#rrggbb" or "#rgb" (the leading '#' is optional).
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGBA{}, fmt.Errorf("colorspace: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("colorspace: invalid hex color %q: %w", s, err)
	}
	return Opaque(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Hex formats the color as "#rrggbb".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
