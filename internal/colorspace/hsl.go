package colorspace

import "math"

// HSL holds hue in degrees (0–360) and saturation/lightness in percent (0–100).
type HSL struct {
	H, S, L int
}

// RGBToHSL converts 8-bit RGB to rounded HSL.
// The branch order (red, green, blue) decides ties between equal maxima and
// must stay as is so outputs match the reference values bit for bit.
func RGBToHSL(r8, g8, b8 uint8) HSL {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		case b:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSL{
		H: roundHalfUp(h * 360),
		S: roundHalfUp(s * 100),
		L: roundHalfUp(l * 100),
	}
}

// roundHalfUp rounds .5 toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// RoundMean returns sum/n rounded half-up and clamped to a byte.
func RoundMean(sum, n int) uint8 {
	if n <= 0 {
		return 0
	}
	v := roundHalfUp(float64(sum) / float64(n))
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
