// Package preview rasterizes reliefs on the CPU into small still images.
package preview

import (
	"image"
	"math"

	"hexrelief/internal/mathutil"
	"hexrelief/internal/solid"
)

// Options controls the preview camera and output size.
type Options struct {
	Size        int     // output width and height in pixels
	Supersample int     // render at Size*Supersample then downsample
	Yaw         float64 // radians around world +y
	Pitch       float64 // radians of camera elevation
	Light       *LightConfig
}

// DefaultOptions is a three-quarter view from the front right, above the grid.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		Yaw:         mathutil.Deg2Rad(-30),
		Pitch:       mathutil.Deg2Rad(35),
	}
}

// ViewMatrix maps world space to view space (x right, y up, z toward the
// viewer).
func (o Options) ViewMatrix() mathutil.Mat3 {
	return mathutil.Mat3Mul(mathutil.RotX(o.Pitch), mathutil.RotY(o.Yaw))
}

// Render draws solids orthographically, fitted to the frame. Solid alpha is
// ignored so that faulted cells stay visible. An empty scene yields a fully
// transparent image.
func Render(solids []*solid.Solid, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	if len(solids) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	}

	R := opts.ViewMatrix()
	renderSize := opts.Size * opts.Supersample

	// Transform once, remembering per-solid offsets into the flat slice
	var view []mathutil.Vec3
	offsets := make([]int, len(solids))
	allMin := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, s := range solids {
		offsets[i] = len(view)
		for _, v := range s.Vertices {
			tv := R.MulVec3(v)
			view = append(view, tv)
			for k := 0; k < 3; k++ {
				allMin[k] = math.Min(allMin[k], tv[k])
				allMax[k] = math.Max(allMax[k], tv[k])
			}
		}
	}

	center := allMin.Add(allMax).Scale(0.5)
	span := math.Max(allMax[0]-allMin[0], allMax[1]-allMin[1])
	if span < 0.001 {
		span = 0.001
	}

	margin := 16 * opts.Supersample
	if 2*margin >= renderSize {
		margin = 0
	}
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	project := func(v mathutil.Vec3) [3]float64 {
		return [3]float64{
			(v[0]-center[0])*scale + half,
			-(v[1]-center[1])*scale + half,
			(v[2] - center[2]) * scale,
		}
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := opts.Light
	if lc == nil {
		def := DefaultLightConfig()
		lc = &def
	}

	for i, s := range solids {
		base := offsets[i]
		c := s.Color
		for _, f := range s.Faces {
			if len(f) < 3 {
				continue
			}
			a, b, d := view[base+f[0]], view[base+f[1]], view[base+f[2]]
			normal := b.Sub(a).Cross(d.Sub(a)).Normalize()
			r, g, bl := lc.Shade(c.R, c.G, c.B, lc.ComputeShade(normal))

			p0 := project(view[base+f[0]])
			for k := 1; k+1 < len(f); k++ {
				RasterizeTriangle(fb, p0, project(view[base+f[k]]), project(view[base+f[k+1]]), r, g, bl)
			}
		}
	}

	img := fb.Image()
	if opts.Supersample > 1 {
		return Downsample(img, opts.Size)
	}
	return img
}
