package raster

import (
	"fmt"
	"image"
)

// Buffer is a decoded source image held as flat RGBA bytes, row-major with
// the origin at the top-left pixel. Callers own it; sampling only reads.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, len = W*H*4
}

// NewBuffer allocates a zeroed (transparent black) buffer.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
}

// FromPix wraps an existing RGBA slice after checking its length.
func FromPix(w, h int, pix []uint8) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", w, h)
	}
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("raster: pixel data is %d bytes, want %d for %dx%d", len(pix), w*h*4, w, h)
	}
	return &Buffer{Width: w, Height: h, Pix: pix}, nil
}

// FromNRGBA copies a non-premultiplied image into a Buffer.
func FromNRGBA(img *image.NRGBA) *Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(buf.Pix[y*w*4:(y+1)*w*4], img.Pix[src:src+w*4])
	}
	return buf
}

// At returns the RGBA bytes of pixel (x, y). The caller bounds-checks.
func (b *Buffer) At(x, y int) (r, g, bl, a uint8) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes pixel (x, y).
func (b *Buffer) Set(x, y int, r, g, bl, a uint8) {
	i := (y*b.Width + x) * 4
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = r, g, bl, a
}

// Contains reports whether (x, y) is a valid pixel coordinate.
func (b *Buffer) Contains(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Fill sets every pixel to the same color.
func (b *Buffer) Fill(r, g, bl, a uint8) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = r, g, bl, a
	}
}
