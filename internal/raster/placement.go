package raster

import "math"

// Placement positions the raster in world space: Width x Height world units,
// centered on the world origin and lying in the XZ plane.
//
// Canonical mapping: +x runs left to right across the image (not mirrored)
// and +z runs from the top row to the bottom row, so pixel (0,0) sits in the
// world corner (-Width/2, -Height/2). This matches an image plane rotated
// -90° about X and viewed from above.
type Placement struct {
	Width  float64
	Height float64
}

// PixelPlacement places the buffer one world unit per pixel.
func PixelPlacement(b *Buffer) Placement {
	return Placement{Width: float64(b.Width), Height: float64(b.Height)}
}

// WorldToPixel maps a world position to the pixel containing it. The result
// may lie outside the buffer.
func (p Placement) WorldToPixel(b *Buffer, x, z float64) (px, py int) {
	u := (x + p.Width/2) / p.Width
	v := (z + p.Height/2) / p.Height
	return int(math.Floor(u * float64(b.Width))), int(math.Floor(v * float64(b.Height)))
}

// PixelToWorld returns the world position of the center of pixel (px, py).
func (p Placement) PixelToWorld(b *Buffer, px, py int) (x, z float64) {
	x = (float64(px)+0.5)/float64(b.Width)*p.Width - p.Width/2
	z = (float64(py)+0.5)/float64(b.Height)*p.Height - p.Height/2
	return x, z
}
