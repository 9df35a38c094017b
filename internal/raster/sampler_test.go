package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexrelief/internal/colorspace"
)

func uniform(w, h int, r, g, b, a uint8) *Buffer {
	buf := NewBuffer(w, h)
	buf.Fill(r, g, b, a)
	return buf
}

func TestSampleRegion_NoRaster(t *testing.T) {
	region := SampleRegion(nil, Placement{Width: 10, Height: 10}, 0, 0, 5)
	assert.Nil(t, region.Average)
	assert.Empty(t, region.Samples)
}

func TestSampleRegion_UniformAverage(t *testing.T) {
	buf := uniform(100, 80, 200, 100, 50, 255)
	place := PixelPlacement(buf)

	tests := []struct {
		name       string
		cx, cz, r  float64
		minSamples int
	}{
		{"large footprint uses stride 4", 0, 0, 30, 2},
		{"small footprint uses stride 1", 3.2, -7.9, 1.5, 1},
		{"footprint crossing the edge", 49, 39, 10, 1},
		{"sub-pixel footprint falls back to center", 0.1, 0.1, 0.01, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := SampleRegion(buf, place, tt.cx, tt.cz, tt.r)
			require.NotNil(t, region.Average)
			assert.GreaterOrEqual(t, len(region.Samples), tt.minSamples)

			avg := *region.Average
			assert.Equal(t, uint8(200), avg.R)
			assert.Equal(t, uint8(100), avg.G)
			assert.Equal(t, uint8(50), avg.B)
			assert.Equal(t, 1.0, avg.A)
			assert.Equal(t, colorspace.RGBToHSL(200, 100, 50), avg.HSL)
		})
	}
}

func TestSampleRegion_StrideOnLargeRegion(t *testing.T) {
	buf := uniform(200, 200, 10, 10, 10, 255)
	place := PixelPlacement(buf)

	dense := SampleRegion(buf, place, 0, 0, 1.6)
	sparse := SampleRegion(buf, place, 0, 0, 40)

	// radius 1.6 spans a 4x4 pixel box sampled exhaustively; radius 40 is
	// sampled every 4th pixel.
	assert.Len(t, dense.Samples, 12)
	assert.Less(t, len(sparse.Samples), 80*80/4)
	assert.Greater(t, len(sparse.Samples), 0)
}

func TestSampleRegion_OutsideRaster(t *testing.T) {
	buf := uniform(20, 20, 1, 2, 3, 255)
	region := SampleRegion(buf, PixelPlacement(buf), 500, -500, 5)
	assert.Nil(t, region.Average)
	assert.Empty(t, region.Samples)
}

func TestSampleRegion_CenterFallback(t *testing.T) {
	// One pixel per 10 world units: a radius-1 circle around a point away from
	// pixel centers contains none of them.
	buf := uniform(4, 4, 0, 0, 0, 255)
	buf.Set(0, 0, 255, 0, 0, 128)
	place := Placement{Width: 40, Height: 40}

	region := SampleRegion(buf, place, -11, -11, 1)
	require.NotNil(t, region.Average)
	require.Len(t, region.Samples, 1)
	assert.Equal(t, uint8(255), region.Average.R)
	assert.InDelta(t, 128.0/255, region.Average.A, 1e-12)
	assert.Equal(t, *region.Average, region.Samples[0])
}

func TestSampleRegion_AveragesAndRounds(t *testing.T) {
	// Left half 0, right half 255 on a 2x1 raster: mean 127.5 rounds to 128.
	buf := NewBuffer(2, 1)
	buf.Set(0, 0, 0, 0, 0, 0)
	buf.Set(1, 0, 255, 255, 255, 255)
	place := Placement{Width: 2, Height: 1}

	region := SampleRegion(buf, place, 0, 0, 1)
	require.NotNil(t, region.Average)
	require.Len(t, region.Samples, 2)
	assert.Equal(t, uint8(128), region.Average.R)
	assert.Equal(t, 0.5, region.Average.A)
	assert.Equal(t, colorspace.RGBToHSL(128, 128, 128), region.Average.HSL)
}

// Pixel (0,0) is the top-left of the image and must land in the world corner
// with the smallest x and z.
func TestPlacementOrientation(t *testing.T) {
	buf := uniform(10, 10, 0, 0, 0, 255)
	buf.Set(0, 0, 255, 0, 0, 255)
	place := Placement{Width: 100, Height: 100}

	x, z := place.PixelToWorld(buf, 0, 0)
	assert.Equal(t, -45.0, x)
	assert.Equal(t, -45.0, z)

	px, py := place.WorldToPixel(buf, -49, -49)
	assert.Equal(t, 0, px)
	assert.Equal(t, 0, py)

	marker := SampleRegion(buf, place, -45, -45, 4)
	require.NotNil(t, marker.Average)
	assert.Equal(t, uint8(255), marker.Average.R)

	opposite := SampleRegion(buf, place, 45, 45, 4)
	require.NotNil(t, opposite.Average)
	assert.Equal(t, uint8(0), opposite.Average.R)

	mirrored := SampleRegion(buf, place, 45, -45, 4)
	require.NotNil(t, mirrored.Average)
	assert.Equal(t, uint8(0), mirrored.Average.R)
}
