package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks img to targetSize square, filtering in premultiplied
// alpha so transparent background does not darken solid edges.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			for k := 0; k < 3; k++ {
				premul.Pix[di+k] = uint8(float64(img.Pix[si+k])*a + 0.5)
			}
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := float64(dst.Pix[i+3])
		if a > 1 {
			inv := 255.0 / a
			for k := 0; k < 3; k++ {
				out.Pix[i+k] = clamp255(float64(dst.Pix[i+k]) * inv)
			}
		}
		out.Pix[i+3] = dst.Pix[i+3]
	}
	return out
}
