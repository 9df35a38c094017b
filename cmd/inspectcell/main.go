package main

import (
	"flag"
	"fmt"
	"os"

	"hexrelief/internal/config"
	"hexrelief/internal/project"
	"hexrelief/internal/raster"
	"hexrelief/internal/relief"
	"hexrelief/internal/script"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	projectFile := flag.String("project", "", "Path to a project archive (overrides -config)")
	row := flag.Int("row", 0, "Cell row")
	col := flag.Int("col", 0, "Cell column")
	all := flag.Bool("samples", false, "Print every sampled pixel")
	flag.Parse()

	var (
		p   *project.Project
		err error
	)
	if *projectFile != "" {
		p, err = project.Open(*projectFile)
	} else {
		cfg := config.Default()
		if *configFile != "" {
			cfg, err = config.Load(*configFile)
		}
		if err == nil {
			cfg.Resolve(config.Flags{})
			p, err = project.FromConfig(cfg, "")
		}
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cfg := p.Config
	cfg.Resolve(config.Flags{})
	if *row < 0 || *row >= cfg.Rows || *col < 0 || *col >= cfg.Cols {
		fmt.Printf("Error: cell (%d,%d) outside %dx%d grid\n", *row, *col, cfg.Rows, cfg.Cols)
		os.Exit(1)
	}

	buf, err := p.Raster()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	layout := cfg.Layout()
	x, z := layout.CellCenter(*row, *col)
	place := cfg.Placement(buf)

	fmt.Printf("Cell (%d,%d) center: x=%.3f z=%.3f radius=%.3f\n", *row, *col, x, z, cfg.Radius)
	if buf == nil {
		fmt.Println("Image: none")
	} else {
		px, py := place.WorldToPixel(buf, x, z)
		fmt.Printf("Image: %dx%d px over %.1fx%.1f world units, center pixel (%d,%d)\n",
			buf.Width, buf.Height, place.Width, place.Height, px, py)
	}

	region := raster.SampleRegion(buf, place, x, z, cfg.Radius)
	fmt.Printf("Samples: %d\n", len(region.Samples))
	if avg := region.Average; avg != nil {
		fmt.Printf("  Average: rgb(%d,%d,%d) a=%.3f hsl(%d,%d%%,%d%%)\n",
			avg.R, avg.G, avg.B, avg.A, avg.H, avg.S, avg.L)
	} else {
		fmt.Println("  Average: none")
	}
	if *all {
		for i, s := range region.Samples {
			fmt.Printf("  [%d] rgb(%d,%d,%d) a=%.3f\n", i, s.R, s.G, s.B, s.A)
		}
	}

	fns := script.Load(p.HeightSource, p.ColorSource, timeout)
	ev := &relief.Evaluator{
		Raster:    buf,
		Placement: place,
		Radius:    cfg.Radius,
		Height:    fns.Height,
		Color:     fns.Color,
		FlatColor: cfg.FlatColor(),
	}
	res := ev.Evaluate(*row, *col, x, z)
	fmt.Printf("Height: %.4f", res.Height)
	if res.HeightFault != nil {
		fmt.Printf(" (fault: %v)", res.HeightFault)
	}
	fmt.Println()
	fmt.Printf("Color: %s alpha=%.3f", res.Color.Hex(), res.Color.Alpha())
	if res.ColorFault != nil {
		fmt.Printf(" (fault: %v)", res.ColorFault)
	}
	fmt.Println()
}
