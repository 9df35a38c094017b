package preview

import (
	"math"

	"hexrelief/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are in view
// space (x right, y up, z toward the viewer).
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	HalfMain mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig is a key light from the upper right plus a dim rim light.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{0.45, 0.75, 0.5}.Normalize()
	rimDir := mathutil.Vec3{-0.6, 0.3, -0.7}.Normalize()
	viewDir := mathutil.Vec3{0, 0, 1}

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		HalfMain: lightDir.Add(viewDir).Normalize(),
		Ambient:  0.35,
		Hemi:     0.25,
		Direct:   0.75,
		Rim:      0.20,
		SpecInt:  0.15,
		SpecPow:  16.0,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit face normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill, brighter for upward-facing surfaces
	hemi := normal[1]*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	specular := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + specular
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// Shade lights an sRGB color and returns it tone mapped and re-encoded.
func (lc *LightConfig) Shade(r, g, b uint8, shade float64) (uint8, uint8, uint8) {
	k := shade * lc.Exposure
	out := func(c uint8) uint8 {
		return clamp255(math.Pow(ACESTonemap(srgbToLinear[c]*k), lc.InvGamma) * 255)
	}
	return out(r), out(g), out(b)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
