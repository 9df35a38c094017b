// Package meshio serializes solids for 3D asset pipelines: Wavefront OBJ with
// a companion MTL material library, and binary STL.
package meshio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hexrelief/internal/solid"
)

// Fixed output names. The OBJ document always references
// MaterialLibraryName so the pair stays linked after export.
const (
	MeshFileName        = "scene.obj"
	MaterialLibraryName = "scene.mtl"
)

// Document is one export: OBJ geometry text plus its MTL library text.
type Document struct {
	Mesh     string
	Material string
}

// ObjectName returns the OBJ object name of the i-th solid.
func ObjectName(i int) string { return fmt.Sprintf("cell_%d", i) }

// MaterialName returns the material assigned to the i-th solid. Every solid
// gets its own material, even when colors repeat.
func MaterialName(i int) string { return fmt.Sprintf("material_%d", i) }

// Export writes every solid as its own object with its own material.
func Export(solids []*solid.Solid) Document {
	var mesh, mtl strings.Builder

	fmt.Fprintf(&mesh, "# hexrelief\n")
	fmt.Fprintf(&mesh, "mtllib %s\n", MaterialLibraryName)

	fmt.Fprintf(&mtl, "# hexrelief\n")
	fmt.Fprintf(&mtl, "# Material Count: %d\n", len(solids))

	offset := 1 // OBJ indices are 1-based and global
	for i, s := range solids {
		fmt.Fprintf(&mesh, "o %s\n", ObjectName(i))
		fmt.Fprintf(&mesh, "usemtl %s\n", MaterialName(i))
		for _, v := range s.Vertices {
			fmt.Fprintf(&mesh, "v %.6f %.6f %.6f\n", v[0], v[1], v[2])
		}
		for _, f := range s.Faces {
			mesh.WriteString("f")
			for _, idx := range f {
				fmt.Fprintf(&mesh, " %d", idx+offset)
			}
			mesh.WriteString("\n")
		}
		offset += len(s.Vertices)

		c := s.Color
		fmt.Fprintf(&mtl, "\nnewmtl %s\n", MaterialName(i))
		fmt.Fprintf(&mtl, "Kd %.6f %.6f %.6f\n", float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		if c.HasAlpha {
			fmt.Fprintf(&mtl, "d %.6f\n", c.A)
		}
		fmt.Fprintf(&mtl, "illum 1\n")
	}

	return Document{Mesh: mesh.String(), Material: mtl.String()}
}

// WriteFiles writes the document to dir as MeshFileName and
// MaterialLibraryName, creating dir if needed.
func WriteFiles(dir string, doc Document) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("meshio: create %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, MeshFileName), []byte(doc.Mesh), 0644); err != nil {
		return fmt.Errorf("meshio: write %s: %w", MeshFileName, err)
	}
	if err := os.WriteFile(filepath.Join(dir, MaterialLibraryName), []byte(doc.Material), 0644); err != nil {
		return fmt.Errorf("meshio: write %s: %w", MaterialLibraryName, err)
	}
	return nil
}
