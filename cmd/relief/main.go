package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"hexrelief/internal/batch"
	"hexrelief/internal/config"
	"hexrelief/internal/project"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	projectFile := flag.String("project", "", "Path to a project archive (overrides -config)")
	batchDir := flag.String("batch", "", "Regenerate every project archive in this directory")
	testN := flag.Int("test", 0, "Batch only the first N archives for testing")
	image := flag.String("image", "", "Source image to sample")
	height := flag.String("height", "", "Height function (JavaScript file)")
	color := flag.String("color", "", "Color function (JavaScript file)")
	rows := flag.Int("rows", 0, "Grid rows")
	cols := flag.Int("cols", 0, "Grid columns")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	noPreview := flag.Bool("no-preview", false, "Skip the WebP preview")

	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override the config file, or the archive config in
	// -project and -batch modes
	overrides := config.Flags{
		Image:     *image,
		Height:    *height,
		Color:     *color,
		OutputDir: *outputDir,
		Rows:      *rows,
		Cols:      *cols,
		Workers:   *workers,
	}
	cfg.Resolve(overrides)

	if *batchDir != "" {
		os.Exit(runBatch(*batchDir, cfg, overrides, *testN, *noPreview))
	}

	var (
		p   *project.Project
		err error
	)
	if *projectFile != "" {
		p, err = project.Open(*projectFile)
		if err == nil {
			err = p.Apply(overrides)
		}
	} else {
		p, err = project.FromConfig(cfg, "")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	summary, err := batch.Process(p, cfg.OutputDir, !*noPreview)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(summary)
	fmt.Printf("Output: %s (%.2fs)\n", cfg.OutputDir, time.Since(start).Seconds())
}

func runBatch(dir string, cfg config.Config, overrides config.Flags, testN int, noPreview bool) int {
	archives, err := batch.Discover(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if testN > 0 && testN < len(archives) {
		archives = archives[:testN]
	}
	if len(archives) == 0 {
		fmt.Println("No project archives found.")
		return 0
	}

	fmt.Printf("Projects: %d, Workers: %d\n", len(archives), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Progress:  2 * time.Second,
		NoPreview: noPreview,
		Overrides: overrides,
	}, archives)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	var failed []batch.Result
	faults := 0
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
		faults += r.HeightFaults + r.ColorFaults
	}
	fmt.Printf("Generated: %d/%d (%d cell faults)\n", len(results)-len(failed), len(results), faults)

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := 20
		if len(failed) < limit {
			limit = len(failed)
		}
		for _, r := range failed[:limit] {
			fmt.Printf("  %s: %s\n", r.Name, r.Error)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else if err := batch.WriteManifest(cfg.OutputDir, batch.Entries(results, !noPreview)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s/%s\n", cfg.OutputDir, batch.ManifestFileName)
	}

	if len(failed) > 0 {
		return 1
	}
	return 0
}
