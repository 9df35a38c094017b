package preview

import (
	"image"
	"math"
)

// FrameBuffer is a square render target: straight-alpha RGBA pixels plus a
// depth value per pixel where larger means closer to the camera.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8
	ZBuf   []float64
}

// NewFrameBuffer returns a transparent w x h target with every depth at -inf.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		ZBuf:   make([]float64, w*h),
	}
	for i := range fb.ZBuf {
		fb.ZBuf[i] = math.Inf(-1)
	}
	return fb
}

// Image wraps the color plane without copying.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    fb.Color,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// Coverage is the fraction of pixels some triangle has been drawn into.
func (fb *FrameBuffer) Coverage() float64 {
	if len(fb.ZBuf) == 0 {
		return 0
	}
	n := 0
	for _, z := range fb.ZBuf {
		if !math.IsInf(z, -1) {
			n++
		}
	}
	return float64(n) / float64(len(fb.ZBuf))
}
