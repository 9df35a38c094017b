// Package batch regenerates many project archives concurrently.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"hexrelief/internal/config"
	"hexrelief/internal/meshio"
	"hexrelief/internal/monitoring"
	"hexrelief/internal/preview"
	"hexrelief/internal/project"
	"hexrelief/internal/relief"
	"hexrelief/internal/script"
)

// Config holds the shared settings of a batch run.
type Config struct {
	OutputDir string
	Workers   int
	Progress  time.Duration // progress log interval, 0 disables it
	NoPreview bool

	// Overrides are applied to every archive before it is processed.
	Overrides config.Flags
}

// Result holds the outcome of processing one archive.
type Result struct {
	Name         string `json:"name"`
	Archive      string `json:"archive"`
	ID           string `json:"id,omitempty"`
	Cells        int    `json:"cells"`
	Sampled      int    `json:"sampled"`
	HeightFaults int    `json:"height_faults"`
	ColorFaults  int    `json:"color_faults"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// Discover lists the project archives directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), project.Extension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Name returns the output directory name for an archive path.
func Name(archive string) string {
	base := filepath.Base(archive)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run processes all archives using a worker pool. Results are in the same
// order as archives. A failing archive never stops the others.
func Run(cfg Config, archives []string) []Result {
	total := len(archives)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						monitoring.Logf("batch: [%d/%d] %.1f projects/sec", p, total, rate)
					}
				}
			}
		}()
	}

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processArchive(cfg, archives[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range archives {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func processArchive(cfg Config, archive string) Result {
	res := Result{Name: Name(archive), Archive: archive}

	p, err := project.Open(archive)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.ID = p.ID.String()
	if err := p.Apply(cfg.Overrides); err != nil {
		res.Error = err.Error()
		return res
	}

	summary, err := Process(p, filepath.Join(cfg.OutputDir, res.Name), !cfg.NoPreview)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Cells = summary.Cells
	res.Sampled = summary.Sampled
	res.HeightFaults = summary.HeightFaults
	res.ColorFaults = summary.ColorFaults
	res.Success = true
	return res
}

// Process regenerates one project into dir. Each call compiles its own
// scripts so concurrent calls share no JavaScript runtime.
func Process(p *project.Project, dir string, withPreview bool) (relief.Summary, error) {
	cfg := p.Config
	cfg.Resolve(config.Flags{})

	buf, err := p.Raster()
	if err != nil {
		return relief.Summary{}, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return relief.Summary{}, err
	}

	fns := script.Load(p.HeightSource, p.ColorSource, timeout)
	model, err := relief.Generate(cfg, buf, fns.Height, fns.Color)
	if err != nil {
		return relief.Summary{}, err
	}
	if err := WriteOutputs(dir, model, cfg, withPreview); err != nil {
		return relief.Summary{}, err
	}
	return relief.Summarize(model), nil
}

// WriteOutputs writes the OBJ/MTL pair, the STL and optionally the preview
// of model into dir, creating it if needed.
func WriteOutputs(dir string, model *relief.Model, cfg config.Config, withPreview bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("batch: create %s: %w", dir, err)
	}
	if err := meshio.WriteFiles(dir, meshio.Export(model.Solids)); err != nil {
		return err
	}
	if err := meshio.WriteSTLFile(dir, model.Solids); err != nil {
		return err
	}
	if !withPreview {
		return nil
	}

	opts := preview.DefaultOptions()
	if cfg.PreviewSize > 0 {
		opts.Size = cfg.PreviewSize
	}
	if cfg.Supersample > 0 {
		opts.Supersample = cfg.Supersample
	}
	img := preview.Render(model.Solids, opts)
	_, err := preview.WriteFile(dir, img)
	return err
}
