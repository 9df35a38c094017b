package colorspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSL
	}{
		{"black", 0, 0, 0, HSL{0, 0, 0}},
		{"white", 255, 255, 255, HSL{0, 0, 100}},
		{"red", 255, 0, 0, HSL{0, 100, 50}},
		{"green", 0, 255, 0, HSL{120, 100, 50}},
		{"blue", 0, 0, 255, HSL{240, 100, 50}},
		{"magenta wraps on red branch", 255, 0, 128, HSL{330, 100, 50}},
		{"yellow ties resolve to red", 255, 255, 0, HSL{60, 100, 50}},
		{"light pastel", 200, 100, 50, HSL{20, 60, 49}},
		{"high lightness split", 230, 200, 210, HSL{340, 37, 84}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBToHSL(tt.r, tt.g, tt.b))
		})
	}
}

func TestRGBToHSL_Achromatic(t *testing.T) {
	for v := 0; v <= 255; v++ {
		got := RGBToHSL(uint8(v), uint8(v), uint8(v))
		want := roundHalfUp(float64(v) / 255 * 100)
		assert.Equal(t, 0, got.H, "hue for %d", v)
		assert.Equal(t, 0, got.S, "saturation for %d", v)
		assert.Equal(t, want, got.L, "lightness for %d", v)
	}
}

func TestRoundMean(t *testing.T) {
	assert.Equal(t, uint8(0), RoundMean(10, 0))
	assert.Equal(t, uint8(3), RoundMean(5, 2)) // 2.5 rounds up
	assert.Equal(t, uint8(200), RoundMean(600, 3))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, Opaque(0, 255, 0), c)
	assert.Equal(t, "#00ff00", c.Hex())

	c, err = ParseHex("f80")
	require.NoError(t, err)
	assert.Equal(t, Opaque(255, 136, 0), c)

	_, err = ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)
}

func TestRGBAAlpha(t *testing.T) {
	assert.Equal(t, 1.0, Opaque(1, 2, 3).Alpha())
	assert.Equal(t, 0.0, FaultColor.Alpha())
}

func TestNewSample(t *testing.T) {
	s := NewSample(255, 0, 0, 255)
	assert.Equal(t, 1.0, s.A)
	assert.Equal(t, HSL{0, 100, 50}, s.HSL)
}
