// Package solid extrudes regular polygons into flat-capped prisms.
package solid

import (
	"errors"
	"fmt"
	"math"

	"hexrelief/internal/colorspace"
	"hexrelief/internal/mathutil"
)

// ErrInvalidGeometry is returned for parameters that cannot produce a
// renderable solid.
var ErrInvalidGeometry = errors.New("solid: invalid geometry")

// Params describes one extruded polygon.
type Params struct {
	Center   mathutil.Vec3 // world position of the polygon center at depth 0
	Sides    int
	Radius   float64 // circumradius
	Depth    float64 // extrusion along local +z; negative extrudes the other way
	Rotation mathutil.Vec3
	Color    colorspace.RGBA
}

// Solid is a built prism. It is not modified after Build returns.
type Solid struct {
	Params

	// Vertices holds the bottom ring (indices 0..Sides-1) followed by the
	// top ring (Sides..2*Sides-1), in world space.
	Vertices []mathutil.Vec3

	// Faces are polygons of vertex indices wound counter-clockwise when seen
	// from outside the solid.
	Faces [][]int
}

// Build validates p and generates the solid's geometry.
func Build(p Params) (*Solid, error) {
	if p.Sides < 3 {
		return nil, fmt.Errorf("%w: %d sides (need at least 3)", ErrInvalidGeometry, p.Sides)
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidGeometry, p.Radius)
	}
	if math.IsNaN(p.Depth) || math.IsInf(p.Depth, 0) {
		return nil, fmt.Errorf("%w: depth %v", ErrInvalidGeometry, p.Depth)
	}
	if !p.Center.IsFinite() || !p.Rotation.IsFinite() {
		return nil, fmt.Errorf("%w: non-finite position or rotation", ErrInvalidGeometry)
	}

	n := p.Sides
	rot := mathutil.EulerXYZ(p.Rotation)
	verts := make([]mathutil.Vec3, 0, 2*n)
	for _, z := range [2]float64{0, p.Depth} {
		for i := 0; i < n; i++ {
			angle := float64(i) / float64(n) * 2 * math.Pi
			local := mathutil.Vec3{p.Radius * math.Cos(angle), p.Radius * math.Sin(angle), z}
			verts = append(verts, rot.MulVec3(local).Add(p.Center))
		}
	}

	faces := make([][]int, 0, n+2)
	bottom := make([]int, n)
	top := make([]int, n)
	for i := 0; i < n; i++ {
		bottom[i] = n - 1 - i
		top[i] = n + i
	}
	faces = append(faces, bottom, top)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces, []int{i, j, n + j, n + i})
	}

	// With a negative depth the top ring lies below the bottom one and every
	// face would point inward.
	if p.Depth < 0 {
		for _, f := range faces {
			reverse(f)
		}
	}

	return &Solid{Params: p, Vertices: verts, Faces: faces}, nil
}

// Triangles fan-triangulates every face and returns vertex triples.
func (s *Solid) Triangles() [][3]mathutil.Vec3 {
	var out [][3]mathutil.Vec3
	for _, f := range s.Faces {
		for k := 1; k+1 < len(f); k++ {
			out = append(out, [3]mathutil.Vec3{s.Vertices[f[0]], s.Vertices[f[k]], s.Vertices[f[k+1]]})
		}
	}
	return out
}

func reverse(f []int) {
	for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
		f[i], f[j] = f[j], f[i]
	}
}
