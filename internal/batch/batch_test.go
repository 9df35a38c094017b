package batch

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexrelief/internal/config"
	"hexrelief/internal/meshio"
	"hexrelief/internal/monitoring"
	"hexrelief/internal/preview"
	"hexrelief/internal/project"
)

func newProject(heightSrc string) *project.Project {
	cfg := config.Default()
	cfg.Rows, cfg.Cols = 2, 2
	cfg.PreviewSize = 32
	cfg.Supersample = 1

	p := project.New(cfg)
	p.HeightSource = heightSrc
	p.ColorSource = "() => ({r: 255, g: 0, b: 0})"
	return p
}

func saveProject(t *testing.T, dir, name string, p *project.Project) string {
	t.Helper()
	path := filepath.Join(dir, name+project.Extension)
	require.NoError(t, project.SaveFile(path, p))
	return path
}

func writeProject(t *testing.T, dir, name, heightSrc string) string {
	t.Helper()
	return saveProject(t, dir, name, newProject(heightSrc))
}

// withImage bundles a uniform 40x40 PNG, large enough to cover a 2x2 grid.
func withImage(t *testing.T, p *project.Project, c color.NRGBA) *project.Project {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	p.Image = buf.Bytes()
	p.ImageName = "swatch.png"
	return p
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "b", "() => 1")
	writeProject(t, dir, "a", "() => 1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"+project.Extension), 0o755))

	got, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a"+project.Extension),
		filepath.Join(dir, "b"+project.Extension),
	}, got)
}

func TestRun(t *testing.T) {
	lines, restore := monitoring.Capture()
	defer restore()

	in := t.TempDir()
	out := t.TempDir()
	good := writeProject(t, in, "good", "(row, col) => row + col + 1")
	faulty := writeProject(t, in, "faulty", "(row) => { if (row === 0) throw new Error('boom'); return 1; }")
	broken := filepath.Join(in, "broken"+project.Extension)
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0o644))

	results := Run(Config{OutputDir: out, Workers: 2}, []string{good, faulty, broken})
	require.Len(t, results, 3)

	assert.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, "good", results[0].Name)
	assert.Equal(t, 4, results[0].Cells)
	assert.Zero(t, results[0].HeightFaults)
	assert.NotEmpty(t, results[0].ID)

	assert.True(t, results[1].Success, results[1].Error)
	assert.Equal(t, 2, results[1].HeightFaults)
	assert.NotEmpty(t, *lines)

	assert.False(t, results[2].Success)
	assert.NotEmpty(t, results[2].Error)

	for _, f := range []string{meshio.MeshFileName, meshio.MaterialLibraryName, meshio.STLFileName, preview.FileName} {
		assert.FileExists(t, filepath.Join(out, "good", f))
	}
	assert.NoDirExists(t, filepath.Join(out, "broken"))
}

func TestProcessImageProject(t *testing.T) {
	p := withImage(t, newProject("(row, col, x, z, avg) => avg ? avg.r / 100 : -1"), color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	p.ColorSource = "(row, col, x, z, avg) => ({r: avg.r, g: avg.g, b: avg.b})"
	path := saveProject(t, t.TempDir(), "swatch", p)

	loaded, err := project.Open(path)
	require.NoError(t, err)

	out := t.TempDir()
	summary, err := Process(loaded, out, false)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Cells)
	assert.Equal(t, summary.Cells, summary.Sampled)
	assert.Zero(t, summary.HeightFaults)
	assert.Zero(t, summary.ColorFaults)
	assert.Equal(t, 2.0, summary.MinHeight)
	assert.Equal(t, 2.0, summary.MaxHeight)

	mtl, err := os.ReadFile(filepath.Join(out, meshio.MaterialLibraryName))
	require.NoError(t, err)
	assert.Contains(t, string(mtl), "Kd 0.784314 0.392157 0.196078")
}

func TestRunImageProject(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	p := withImage(t, newProject("(row, col, x, z, avg) => avg.l / 10"), color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	path := saveProject(t, in, "img", p)

	results := Run(Config{OutputDir: out, Workers: 1}, []string{path})
	require.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, 4, results[0].Sampled)
	assert.Zero(t, results[0].HeightFaults)
	assert.FileExists(t, filepath.Join(out, "img", meshio.STLFileName))
}

func TestRunOverrides(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := writeProject(t, in, "grid", "() => 1")

	results := Run(Config{OutputDir: out, Workers: 1, NoPreview: true, Overrides: config.Flags{Rows: 3, Cols: 5}}, []string{path})
	require.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, 15, results[0].Cells)
}

func TestRunNoPreview(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := writeProject(t, in, "plain", "() => 2")

	results := Run(Config{OutputDir: out, Workers: 1, NoPreview: true}, []string{path})
	require.True(t, results[0].Success, results[0].Error)
	assert.FileExists(t, filepath.Join(out, "plain", meshio.MeshFileName))
	assert.NoFileExists(t, filepath.Join(out, "plain", preview.FileName))
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	results := []Result{
		{Name: "ok", Cells: 4, Success: true},
		{Name: "bad", Error: "project: open: boom"},
	}
	entries := Entries(results, true)
	require.NoError(t, WriteManifest(dir, entries))

	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "ok/scene.obj", got[0]["mesh"])
	assert.Equal(t, "ok/preview.webp", got[0]["preview"])
	assert.Equal(t, float64(4), got[0]["cells"])
	assert.NotContains(t, got[1], "mesh")
	assert.Equal(t, "project: open: boom", got[1]["error"])
}
