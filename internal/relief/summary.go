package relief

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the height distribution and failure counts of a model.
type Summary struct {
	Cells        int
	Sampled      int // cells with an average color
	HeightFaults int
	ColorFaults  int
	MinHeight    float64
	MaxHeight    float64
	MeanHeight   float64
	StdDev       float64
}

// Summarize computes a Summary over m's cells.
func Summarize(m *Model) Summary {
	var s Summary
	if m == nil || len(m.Cells) == 0 {
		return s
	}

	heights := make([]float64, len(m.Cells))
	for i, c := range m.Cells {
		heights[i] = c.Height
		if c.Average != nil {
			s.Sampled++
		}
		if c.HeightFault != nil {
			s.HeightFaults++
		}
		if c.ColorFault != nil {
			s.ColorFaults++
		}
	}

	s.Cells = len(heights)
	s.MinHeight = floats.Min(heights)
	s.MaxHeight = floats.Max(heights)
	s.MeanHeight = stat.Mean(heights, nil)
	s.StdDev = math.Sqrt(stat.PopVariance(heights, nil))
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d cells (%d sampled), height %.3g..%.3g mean %.3g sd %.3g, faults: %d height / %d color",
		s.Cells, s.Sampled, s.MinHeight, s.MaxHeight, s.MeanHeight, s.StdDev, s.HeightFaults, s.ColorFaults)
}
