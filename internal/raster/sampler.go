package raster

import "hexrelief/internal/colorspace"

// Region is the result of sampling one cell footprint.
type Region struct {
	Average *colorspace.Sample // nil when nothing could be sampled
	Samples []colorspace.Sample
}

// SampleRegion collects the pixels whose centers fall inside the circle of the
// given radius around (cx, cz) and averages them.
//
// Large footprints are sampled every 4th pixel; footprints narrower than 4
// pixels in either direction are sampled exhaustively. If no pixel center lands
// inside the circle the pixel under (cx, cz) is used instead, and if that one is
// outside the raster too the region is empty.
func SampleRegion(buf *Buffer, place Placement, cx, cz, radius float64) Region {
	if buf == nil || buf.Width == 0 || buf.Height == 0 || place.Width <= 0 || place.Height <= 0 {
		return Region{}
	}

	x0, y0 := place.WorldToPixel(buf, cx-radius, cz-radius)
	x1, y1 := place.WorldToPixel(buf, cx+radius, cz+radius)
	startX, endX := max(0, x0), min(buf.Width-1, x1)
	startY, endY := max(0, y0), min(buf.Height-1, y1)

	step := 4
	if endX-startX < 4 || endY-startY < 4 {
		step = 1
	}

	var sumR, sumG, sumB, n int
	var sumA float64
	var samples []colorspace.Sample
	r2 := radius * radius

	for py := startY; py <= endY; py += step {
		for px := startX; px <= endX; px += step {
			wx, wz := place.PixelToWorld(buf, px, py)
			dx, dz := wx-cx, wz-cz
			if dx*dx+dz*dz > r2 {
				continue
			}
			r, g, b, a := buf.At(px, py)
			s := colorspace.NewSample(r, g, b, a)
			sumR += int(r)
			sumG += int(g)
			sumB += int(b)
			sumA += s.A
			n++
			samples = append(samples, s)
		}
	}

	if n == 0 {
		px, py := place.WorldToPixel(buf, cx, cz)
		if !buf.Contains(px, py) {
			return Region{}
		}
		s := colorspace.NewSample(buf.At(px, py))
		avg := s
		return Region{Average: &avg, Samples: []colorspace.Sample{s}}
	}

	r := colorspace.RoundMean(sumR, n)
	g := colorspace.RoundMean(sumG, n)
	b := colorspace.RoundMean(sumB, n)
	avg := colorspace.Sample{R: r, G: g, B: b, A: sumA / float64(n), HSL: colorspace.RGBToHSL(r, g, b)}
	return Region{Average: &avg, Samples: samples}
}
