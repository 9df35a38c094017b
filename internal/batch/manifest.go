package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hexrelief/internal/meshio"
	"hexrelief/internal/preview"
)

// ManifestFileName is written to the batch output directory.
const ManifestFileName = "manifest.json"

// ManifestEntry describes one processed archive and where its files landed.
type ManifestEntry struct {
	Result
	Mesh     string `json:"mesh,omitempty"`
	Material string `json:"material,omitempty"`
	STL      string `json:"stl,omitempty"`
	Preview  string `json:"preview,omitempty"`
}

// Entries pairs results with their output paths relative to the batch
// output directory. Failed results carry no paths.
func Entries(results []Result, withPreview bool) []ManifestEntry {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{Result: r}
		if !r.Success {
			continue
		}
		entries[i].Mesh = filepath.ToSlash(filepath.Join(r.Name, meshio.MeshFileName))
		entries[i].Material = filepath.ToSlash(filepath.Join(r.Name, meshio.MaterialLibraryName))
		entries[i].STL = filepath.ToSlash(filepath.Join(r.Name, meshio.STLFileName))
		if withPreview {
			entries[i].Preview = filepath.ToSlash(filepath.Join(r.Name, preview.FileName))
		}
	}
	return entries
}

// WriteManifest writes manifest.json into dir.
func WriteManifest(dir string, entries []ManifestEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}
