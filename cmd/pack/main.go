package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hexrelief/internal/config"
	"hexrelief/internal/project"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file (required)")
	out := flag.String("o", "", "Output archive (default: <config name>"+project.Extension+")")
	image := flag.String("image", "", "Source image to bundle")
	height := flag.String("height", "", "Height function (JavaScript file)")
	color := flag.String("color", "", "Color function (JavaScript file)")
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -config is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{Image: *image, Height: *height, Color: *color})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p, err := project.FromConfig(cfg, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path := *out
	if path == "" {
		base := filepath.Base(*configFile)
		path = strings.TrimSuffix(base, filepath.Ext(base)) + project.Extension
	}
	if err := project.SaveFile(path, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Project %s -> %s\n", p.ID, path)
	fmt.Printf("  Grid: %dx%d, radius %.2f, padding %.2f, %d sides\n", cfg.Rows, cfg.Cols, cfg.Radius, cfg.Padding, cfg.Sides)
	if p.ImageName != "" {
		fmt.Printf("  Image: %s (%d bytes)\n", p.ImageName, len(p.Image))
	}
	fmt.Printf("  Height function: %d bytes, color function: %d bytes\n", len(p.HeightSource), len(p.ColorSource))
}
