package relief

import (
	"fmt"
	"math"

	"hexrelief/internal/config"
	"hexrelief/internal/grid"
	"hexrelief/internal/mathutil"
	"hexrelief/internal/raster"
	"hexrelief/internal/solid"
)

// Upright rotates a solid's local extrusion axis onto world +y so cells rise
// out of the XZ plane the image lies in.
var Upright = mathutil.Vec3{-math.Pi / 2, 0, 0}

// Model is a fully evaluated relief. Cells and Solids are in row-major order
// and share indices.
type Model struct {
	Layout grid.Layout
	Cells  []Result
	Solids []*solid.Solid
}

// Generate evaluates every cell of cfg's grid and extrudes it. buf may be nil
// when no image is configured. Mapping-function failures are absorbed per
// cell; geometry that cannot be built aborts the whole run.
func Generate(cfg config.Config, buf *raster.Buffer, height HeightFunc, color ColorFunc) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout := cfg.Layout()
	ev := &Evaluator{
		Raster:    buf,
		Placement: cfg.Placement(buf),
		Radius:    cfg.Radius,
		Height:    height,
		Color:     color,
		FlatColor: cfg.FlatColor(),
	}

	m := &Model{
		Layout: layout,
		Cells:  make([]Result, 0, layout.Len()),
		Solids: make([]*solid.Solid, 0, layout.Len()),
	}
	for _, c := range layout.Cells() {
		x, z := layout.CellCenter(c.Row, c.Col)
		res := ev.Evaluate(c.Row, c.Col, x, z)

		s, err := solid.Build(solid.Params{
			Center:   mathutil.Vec3{x, 0, z},
			Sides:    cfg.Sides,
			Radius:   cfg.Radius,
			Depth:    res.Height,
			Rotation: Upright,
			Color:    res.Color,
		})
		if err != nil {
			return nil, fmt.Errorf("relief: cell (%d,%d): %w", c.Row, c.Col, err)
		}
		m.Cells = append(m.Cells, res)
		m.Solids = append(m.Solids, s)
	}
	return m, nil
}
