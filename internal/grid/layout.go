// Package grid lays out the staggered hex tiling the relief is built on.
//
// Cells are flat-top hexagons packed in columns: columns advance by 3/4 of
// the cell width and every odd column is pushed half a cell down along z.
// The whole grid is centered on the world origin and then shifted by the
// configured origin offset.
package grid

import "math"

// Layout describes a rows x cols grid of cells with the given circumradius.
type Layout struct {
	Rows    int
	Cols    int
	Radius  float64
	Padding float64
	OriginX float64
	OriginZ float64
}

// Coord addresses one cell.
type Coord struct {
	Row, Col int
}

// CellWidth is the horizontal extent of one cell including padding.
func (l Layout) CellWidth() float64 {
	return 2*l.Radius + l.Padding
}

// CellHeight is the vertical extent of one cell including padding.
func (l Layout) CellHeight() float64 {
	return math.Sqrt(3)*l.Radius + l.Padding
}

// CellCenter returns the world-space (x, z) center of cell (row, col).
func (l Layout) CellCenter(row, col int) (x, z float64) {
	w := l.CellWidth()
	h := l.CellHeight()

	x = float64(col) * w * 0.75
	z = float64(row) * h
	if col%2 == 1 {
		z += h / 2
	}

	x -= float64(l.Cols) * w * 0.75 / 2
	z -= float64(l.Rows) * h / 2
	return x + l.OriginX, z + l.OriginZ
}

// Cells lists every coordinate in row-major order.
func (l Layout) Cells() []Coord {
	if l.Rows <= 0 || l.Cols <= 0 {
		return nil
	}
	out := make([]Coord, 0, l.Rows*l.Cols)
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			out = append(out, Coord{Row: row, Col: col})
		}
	}
	return out
}

// Len is the number of cells.
func (l Layout) Len() int {
	if l.Rows <= 0 || l.Cols <= 0 {
		return 0
	}
	return l.Rows * l.Cols
}
