// Package relief turns a configuration, an optional raster and two mapping
// functions into one extruded solid per grid cell.
package relief

import (
	"fmt"
	"math"

	"hexrelief/internal/colorspace"
	"hexrelief/internal/monitoring"
	"hexrelief/internal/raster"
)

// HeightFunc maps one cell to an extrusion depth. It receives the cell's row,
// column, world-space center, the average sampled color (nil when nothing
// was sampled) and the individual samples (possibly empty).
type HeightFunc func(row, col int, x, z float64, avg *colorspace.Sample, samples []colorspace.Sample) (float64, error)

// ColorFunc maps one cell to its surface color. Same arguments as HeightFunc.
type ColorFunc func(row, col int, x, z float64, avg *colorspace.Sample, samples []colorspace.Sample) (colorspace.RGBA, error)

// DefaultHeight is used for a cell whose height mapping failed.
const DefaultHeight = 0.0

// Result is the evaluation of a single cell.
type Result struct {
	Row, Col int
	X, Z     float64
	Height   float64
	Color    colorspace.RGBA

	Average     *colorspace.Sample
	SampleCount int

	// Set when the mapping function failed and the default was substituted.
	HeightFault error
	ColorFault  error
}

// Evaluator samples a cell footprint and runs the mapping functions on it.
// A nil Height yields DefaultHeight everywhere; a nil Color paints every cell
// FlatColor.
type Evaluator struct {
	Raster    *raster.Buffer
	Placement raster.Placement
	Radius    float64
	Height    HeightFunc
	Color     ColorFunc
	FlatColor colorspace.RGBA
}

// Evaluate computes the height and color of cell (row, col) centered at (x, z).
// Failures inside the mapping functions never escape: they are logged and the
// cell gets the default height or colorspace.FaultColor.
func (e *Evaluator) Evaluate(row, col int, x, z float64) Result {
	region := raster.SampleRegion(e.Raster, e.Placement, x, z, e.Radius)
	samples := region.Samples
	if samples == nil {
		samples = []colorspace.Sample{}
	}

	res := Result{
		Row:         row,
		Col:         col,
		X:           x,
		Z:           z,
		Height:      DefaultHeight,
		Color:       e.FlatColor,
		Average:     region.Average,
		SampleCount: len(region.Samples),
	}

	if e.Height != nil {
		h, err := callHeight(e.Height, row, col, x, z, region.Average, samples)
		if err != nil {
			monitoring.Logf("relief: height function failed for cell (%d,%d): %v", row, col, err)
			res.HeightFault = err
		} else {
			res.Height = h
		}
	}

	if e.Color != nil {
		c, err := callColor(e.Color, row, col, x, z, region.Average, samples)
		if err != nil {
			monitoring.Logf("relief: color function failed for cell (%d,%d): %v", row, col, err)
			res.ColorFault = err
			res.Color = colorspace.FaultColor
		} else {
			res.Color = c
		}
	}

	return res
}

func callHeight(fn HeightFunc, row, col int, x, z float64, avg *colorspace.Sample, samples []colorspace.Sample) (h float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			h, err = DefaultHeight, fmt.Errorf("panic: %v", r)
		}
	}()
	h, err = fn(row, col, x, z, avg, samples)
	if err != nil {
		return DefaultHeight, err
	}
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return DefaultHeight, fmt.Errorf("non-finite height %v", h)
	}
	return h, nil
}

func callColor(fn ColorFunc, row, col int, x, z float64, avg *colorspace.Sample, samples []colorspace.Sample) (c colorspace.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = colorspace.FaultColor, fmt.Errorf("panic: %v", r)
		}
	}()
	c, err = fn(row, col, x, z, avg, samples)
	if err != nil {
		return colorspace.FaultColor, err
	}
	if c.HasAlpha && (math.IsNaN(c.A) || c.A < 0 || c.A > 1) {
		return colorspace.FaultColor, fmt.Errorf("alpha %v outside [0,1]", c.A)
	}
	return c, nil
}
