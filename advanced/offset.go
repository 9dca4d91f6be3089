package advanced

import (
	"fmt"
	"math"

	"github.com/osuushi/chamfer/internal"
)

// An Offset is a displacement to a neighbor together with the cost of the
// step. Weight is used when accumulating into integer grids and FloatWeight
// when accumulating into float grids. 2D offsets have DZ == 0.
type Offset struct {
	DX, DY, DZ  int
	Weight      int
	FloatWeight float64
}

// Norm2 is the squared Euclidean length of the displacement.
func (o Offset) Norm2() int {
	return o.DX*o.DX + o.DY*o.DY + o.DZ*o.DZ
}

// Norm is the Euclidean length of the displacement.
func (o Offset) Norm() float64 {
	return math.Sqrt(float64(o.Norm2()))
}

// Mirror returns the opposite displacement, with the same weights.
func (o Offset) Mirror() Offset {
	return Offset{-o.DX, -o.DY, -o.DZ, o.Weight, o.FloatWeight}
}

// Forward reports whether the offset points at a position that a forward
// raster scan visits before the current one. These are the offsets read by
// the forward sweep; their mirrors are read by the backward sweep.
func (o Offset) Forward() bool {
	if o.DZ != 0 {
		return o.DZ < 0
	}
	if o.DY != 0 {
		return o.DY < 0
	}
	return o.DX < 0
}

func (o Offset) String() string {
	return fmt.Sprintf("(%d,%d,%d)=%d/%g", o.DX, o.DY, o.DZ, o.Weight, o.FloatWeight)
}

type displacement struct {
	dx, dy, dz int
}

func (o Offset) displacement() displacement {
	return displacement{o.DX, o.DY, o.DZ}
}

func (o Offset) step() internal.Step {
	return internal.Step{DX: o.DX, DY: o.DY, DZ: o.DZ, Int: int64(o.Weight), Float: o.FloatWeight}
}

// Lexicographic comparison used to order offsets within a shell: by z, then
// y, then x, the same order the raster scan uses.
func (o Offset) before(other Offset) bool {
	if o.DZ != other.DZ {
		return o.DZ < other.DZ
	}
	if o.DY != other.DY {
		return o.DY < other.DY
	}
	return o.DX < other.DX
}
