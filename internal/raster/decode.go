package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// MaxDimension is the default cap applied to both sides of an ingested image.
const MaxDimension = 200

type decoder struct {
	format string
	match  func([]byte) bool
	decode func(io.Reader) (image.Image, error)
}

// decoders are tried in order. TGA has no magic number and must stay last.
// The tga package registers an empty magic with image.RegisterFormat, so
// image.Decode is not used here.
var decoders = []decoder{
	{"png", prefix("\x89PNG\r\n\x1a\n"), png.Decode},
	{"jpeg", prefix("\xff\xd8"), jpeg.Decode},
	{"gif", prefix("GIF8"), gif.Decode},
	{"bmp", prefix("BM"), bmp.Decode},
	{"tiff", func(b []byte) bool { return prefix("II*\x00")(b) || prefix("MM\x00*")(b) }, tiff.Decode},
	{"webp", isWebP, webp.Decode},
	{"tga", func([]byte) bool { return true }, tga.Decode},
}

func prefix(magic string) func([]byte) bool {
	return func(b []byte) bool { return bytes.HasPrefix(b, []byte(magic)) }
}

func isWebP(b []byte) bool {
	return len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP"
}

// Sniff returns the format Decode would use for data.
func Sniff(data []byte) string {
	for _, d := range decoders {
		if d.match(data) {
			return d.format
		}
	}
	return ""
}

// Decode decodes PNG, JPEG, GIF, BMP, TIFF, WebP or TGA data and scales it
// down so neither side exceeds maxDim pixels. maxDim <= 0 disables scaling.
func Decode(data []byte, maxDim int) (*Buffer, string, error) {
	var (
		img    image.Image
		format string
		err    error
	)
	for _, d := range decoders {
		if d.match(data) {
			format = d.format
			img, err = d.decode(bytes.NewReader(data))
			break
		}
	}
	if err != nil {
		return nil, format, fmt.Errorf("raster: decode %s: %w", format, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, format, fmt.Errorf("raster: decode: empty %s image", format)
	}

	nrgba := toNRGBA(img)
	if maxDim > 0 {
		nrgba = Shrink(nrgba, maxDim)
	}
	return FromNRGBA(nrgba), format, nil
}

// ScaledSize returns the size after fitting w x h inside maxDim x maxDim
// without ever enlarging.
func ScaledSize(w, h, maxDim int) (int, int) {
	scale := math.Min(1, math.Min(float64(maxDim)/float64(w), float64(maxDim)/float64(h)))
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

// Shrink reduces img to fit maxDim using CatmullRom resampling.
// Images already small enough are returned unchanged.
func Shrink(img *image.NRGBA, maxDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := ScaledSize(b.Dx(), b.Dy(), maxDim)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// toNRGBA converts any image to NRGBA with its origin moved to (0,0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
