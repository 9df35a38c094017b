// Package project bundles a relief configuration, its mapping function
// sources and its source image into a single zip archive.
package project

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"hexrelief/internal/config"
	"hexrelief/internal/raster"
)

// Archive entry names.
const (
	ManifestEntry = "project.json"
	HeightEntry   = "height.js"
	ColorEntry    = "color.js"
	imageDir      = "image/"
)

// Extension is the file suffix used for project archives.
const Extension = ".hexrelief"

// Project is everything needed to regenerate one relief.
type Project struct {
	ID           uuid.UUID
	Config       config.Config
	HeightSource string
	ColorSource  string
	Image        []byte // raw encoded image, nil when none is configured
	ImageName    string
}

// manifest is the JSON document stored as project.json.
type manifest struct {
	ID     uuid.UUID     `json:"id"`
	Image  string        `json:"image,omitempty"`
	Config config.Config `json:"config"`
}

type entry struct {
	name string
	data []byte
}

// New returns an empty project with a fresh ID.
func New(cfg config.Config) *Project {
	return &Project{ID: uuid.New(), Config: cfg}
}

// FromConfig assembles a project from cfg and the files it names. Relative
// paths are resolved against baseDir.
func FromConfig(cfg config.Config, baseDir string) (*Project, error) {
	p := New(cfg)

	read := func(name string) ([]byte, error) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(baseDir, name)
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("project: read %s: %w", name, err)
		}
		return data, nil
	}

	if cfg.HeightFunction != "" {
		src, err := read(cfg.HeightFunction)
		if err != nil {
			return nil, err
		}
		p.HeightSource = string(src)
	}
	if cfg.ColorFunction != "" {
		src, err := read(cfg.ColorFunction)
		if err != nil {
			return nil, err
		}
		p.ColorSource = string(src)
	}
	if cfg.Image != "" {
		data, err := read(cfg.Image)
		if err != nil {
			return nil, err
		}
		p.Image = data
		p.ImageName = filepath.Base(cfg.Image)
	}
	return p, nil
}

// Apply overrides p with CLI flags. Grid flags change the config; image and
// function flags replace the bundled file contents. Output and worker flags
// are left to the caller.
func (p *Project) Apply(flags config.Flags) error {
	if flags.Rows > 0 {
		p.Config.Rows = flags.Rows
	}
	if flags.Cols > 0 {
		p.Config.Cols = flags.Cols
	}
	if flags.Height != "" {
		src, err := os.ReadFile(flags.Height)
		if err != nil {
			return fmt.Errorf("project: read %s: %w", flags.Height, err)
		}
		p.HeightSource = string(src)
	}
	if flags.Color != "" {
		src, err := os.ReadFile(flags.Color)
		if err != nil {
			return fmt.Errorf("project: read %s: %w", flags.Color, err)
		}
		p.ColorSource = string(src)
	}
	if flags.Image != "" {
		data, err := os.ReadFile(flags.Image)
		if err != nil {
			return fmt.Errorf("project: read %s: %w", flags.Image, err)
		}
		p.Image = data
		p.ImageName = filepath.Base(flags.Image)
	}
	return nil
}

// Raster decodes the bundled image. It returns nil without error when the
// project has no image. Every call returns a fresh buffer.
func (p *Project) Raster() (*raster.Buffer, error) {
	if len(p.Image) == 0 {
		return nil, nil
	}
	buf, _, err := raster.Decode(p.Image, p.Config.ImageMaxPixel)
	if err != nil {
		return nil, fmt.Errorf("project: image %s: %w", p.ImageName, err)
	}
	return buf, nil
}

// Save writes p as a zip archive. File paths in the stored config are
// cleared since their contents travel inside the archive.
func Save(w io.Writer, p *Project) error {
	cfg := p.Config
	cfg.Image = ""
	cfg.HeightFunction = ""
	cfg.ColorFunction = ""
	cfg.OutputDir = ""

	m := manifest{ID: p.ID, Config: cfg}
	if len(p.Image) > 0 {
		m.Image = p.ImageName
		if m.Image == "" {
			m.Image = "image"
		}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("project: encode manifest: %w", err)
	}

	zw := zip.NewWriter(w)
	entries := []entry{
		{ManifestEntry, data},
		{HeightEntry, []byte(p.HeightSource)},
		{ColorEntry, []byte(p.ColorSource)},
	}
	if m.Image != "" {
		entries = append(entries, entry{imageDir + m.Image, p.Image})
	}
	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("project: create %s: %w", e.name, err)
		}
		if _, err := f.Write(e.data); err != nil {
			return fmt.Errorf("project: write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("project: finish archive: %w", err)
	}
	return nil
}

// SaveFile writes p to path.
func SaveFile(path string, p *Project) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("project: create %s: %w", path, err)
	}
	if err := Save(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads an archive written by Save.
func Load(r io.ReaderAt, size int64) (*Project, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("project: open archive: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	mf, ok := files[ManifestEntry]
	if !ok {
		return nil, fmt.Errorf("project: archive has no %s", ManifestEntry)
	}
	data, err := readEntry(mf)
	if err != nil {
		return nil, err
	}

	m := manifest{Config: config.Default()}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("project: parse %s: %w", ManifestEntry, err)
	}
	p := &Project{ID: m.ID, Config: m.Config}

	if f, ok := files[HeightEntry]; ok {
		src, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		p.HeightSource = string(src)
	}
	if f, ok := files[ColorEntry]; ok {
		src, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		p.ColorSource = string(src)
	}
	if m.Image != "" {
		name := imageDir + path.Base(m.Image)
		f, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("project: archive has no %s", name)
		}
		img, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		p.Image = img
		p.ImageName = path.Base(m.Image)
	}
	return p, nil
}

// Open reads the archive at path.
func Open(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("project: open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("project: stat %s: %w", path, err)
	}
	p, err := Load(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("project: open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", f.Name, err)
	}
	return data, nil
}
