package advanced

import (
	"github.com/osuushi/chamfer/internal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the reachable values of a distance map.
type Summary struct {
	// Reachable counts the values that are not the sentinel.
	Reachable int
	// Unreachable counts the sentinel values.
	Unreachable int

	Min, Max, Mean, StdDev float64
}

// Summarize2D summarizes a 2D distance map. Sentinel values are counted but
// left out of the statistics.
func Summarize2D[T Number](grid *Grid2D[T]) Summary {
	return summarize(grid.Data, nil)
}

// Summarize3D summarizes a 3D distance map.
func Summarize3D[T Number](grid *Grid3D[T]) Summary {
	return summarize(grid.Data, nil)
}

// SummarizeRegion2D summarizes the values of a geodesic map inside region,
// leaving out the zero values of forbidden positions.
func SummarizeRegion2D[T Number](grid *Grid2D[T], region Binary2D) Summary {
	_, allowed := foreground2D(region)
	return summarize(grid.Data, allowed)
}

// SummarizeRegion3D is SummarizeRegion2D for 3D maps.
func SummarizeRegion3D[T Number](grid *Grid3D[T], region Binary3D) Summary {
	_, allowed := foreground3D(region)
	return summarize(grid.Data, allowed)
}

func summarize[T Number](values []T, keep []bool) Summary {
	acc := internal.NewAccumulator[T]()
	var s Summary
	reachable := make([]float64, 0, len(values))
	for i, v := range values {
		if keep != nil && !keep[i] {
			continue
		}
		if acc.IsSentinel(v) {
			s.Unreachable++
			continue
		}
		reachable = append(reachable, float64(v))
	}
	s.Reachable = len(reachable)
	if s.Reachable == 0 {
		return s
	}
	s.Min = floats.Min(reachable)
	s.Max = floats.Max(reachable)
	if s.Reachable == 1 {
		s.Mean = reachable[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(reachable, nil)
	return s
}
