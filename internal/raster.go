package internal

// Shape is the extent of a grid. 2D grids have a Depth of 1. Positions are
// stored flat in raster order: x varies fastest, then y, then z.
type Shape struct {
	Width, Height, Depth int
}

func (s Shape) Len() int {
	return s.Width * s.Height * s.Depth
}

func (s Shape) Index(x, y, z int) int {
	return (z*s.Height+y)*s.Width + x
}

func (s Shape) Contains(x, y, z int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height && z >= 0 && z < s.Depth
}

// Step is a mask offset prepared for a sweep: its displacement together with
// the weight in both numeric policies.
type Step struct {
	DX, DY, DZ int
	Int        int64
	Float      float64
}

// Direction selects the raster order of a sweep.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// Sweep visits every position of shape once in the given raster order and
// lowers its value to the smallest (neighbor value + step weight) over steps.
// The steps must all point at positions that precede the current one in
// that order, so every neighbor is already relaxed when it is read.
//
// When region is not nil, only positions where region is true are relaxed,
// and only neighbors where region is true are read. It returns the number of
// positions whose value changed.
func Sweep[T Number](shape Shape, steps []Step, values []T, region []bool, dir Direction, acc Accumulator[T]) int {
	deltas := make([]int, len(steps))
	for i, s := range steps {
		deltas[i] = (s.DZ*shape.Height+s.DY)*shape.Width + s.DX
	}

	changed := 0
	relax := func(x, y, z int) {
		i := shape.Index(x, y, z)
		if region != nil && !region[i] {
			return
		}
		current := values[i]
		best := current
		for k, s := range steps {
			if !shape.Contains(x+s.DX, y+s.DY, z+s.DZ) {
				continue
			}
			n := i + deltas[k]
			if region != nil && !region[n] {
				continue
			}
			if candidate := acc.Add(values[n], s); candidate < best {
				best = candidate
			}
		}
		if best < current {
			values[i] = best
			changed++
		}
	}

	if dir == Forward {
		for z := 0; z < shape.Depth; z++ {
			for y := 0; y < shape.Height; y++ {
				for x := 0; x < shape.Width; x++ {
					relax(x, y, z)
				}
			}
		}
	} else {
		for z := shape.Depth - 1; z >= 0; z-- {
			for y := shape.Height - 1; y >= 0; y-- {
				for x := shape.Width - 1; x >= 0; x-- {
					relax(x, y, z)
				}
			}
		}
	}
	return changed
}
