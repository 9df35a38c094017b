package meshio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/unixpickle/model3d/model3d"

	"hexrelief/internal/mathutil"
	"hexrelief/internal/solid"
)

// STLFileName is the name WriteSTLFile uses inside the output directory.
const STLFileName = "scene.stl"

// Triangles flattens all solids into STL facets, in solid then face order.
// STL carries no color, so per-cell materials are dropped.
func Triangles(solids []*solid.Solid) []*model3d.Triangle {
	var tris []*model3d.Triangle
	for _, s := range solids {
		for _, t := range s.Triangles() {
			tris = append(tris, &model3d.Triangle{coord(t[0]), coord(t[1]), coord(t[2])})
		}
	}
	return tris
}

// WriteSTL writes the solids as binary STL. Output is identical for
// identical input.
func WriteSTL(w io.Writer, solids []*solid.Solid) error {
	if err := model3d.WriteSTL(w, Triangles(solids)); err != nil {
		return fmt.Errorf("meshio: write stl: %w", err)
	}
	return nil
}

// WriteSTLFile writes dir/STLFileName.
func WriteSTLFile(dir string, solids []*solid.Solid) error {
	f, err := os.Create(filepath.Join(dir, STLFileName))
	if err != nil {
		return fmt.Errorf("meshio: create %s: %w", STLFileName, err)
	}
	defer f.Close()
	if err := WriteSTL(f, solids); err != nil {
		return err
	}
	return f.Close()
}

func coord(v mathutil.Vec3) model3d.Coord3D {
	return model3d.XYZ(v[0], v[1], v[2])
}
