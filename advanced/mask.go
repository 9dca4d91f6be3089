package advanced

import (
	"math"

	"github.com/osuushi/chamfer/internal"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// A Mask is an immutable table of chamfer offsets. It is closed under
// mirroring, and split into the half read by the forward sweep and the half
// read by the backward sweep.
//
// Masks built through this package satisfy, for every offset:
//   - mirrored offsets carry the same weight
//   - offsets of equal length carry the same weight
//   - a longer offset never weighs less than a shorter one
//   - an offset that is the sum of two other offsets weighs at most their sum
//
// The last rule is what keeps two raster sweeps sufficient for masks with
// knight moves.
type Mask struct {
	dim      int
	forward  []Offset
	backward []Offset
	table    map[displacement]Offset
}

// Shells, given as the sorted absolute displacement of one representative.
var (
	orthogonalShell   = [3]int{1, 0, 0}
	diagonalShell     = [3]int{1, 1, 0}
	cubeDiagonalShell = [3]int{1, 1, 1}
	knightShell       = [3]int{2, 1, 0}
	extendedShell     = [3]int{2, 1, 1}
)

var shells2D = map[int][][3]int{
	2: {orthogonalShell, diagonalShell},
	3: {orthogonalShell, diagonalShell, knightShell},
}

var shells3D = map[int][][3]int{
	3: {orthogonalShell, diagonalShell, cubeDiagonalShell},
	4: {orthogonalShell, diagonalShell, cubeDiagonalShell, extendedShell},
	5: {orthogonalShell, diagonalShell, cubeDiagonalShell, knightShell, extendedShell},
}

// NewMask2D builds a 2D mask from the integer weights of its shells:
// orthogonal and diagonal, and optionally the (2,1) knight moves. The float
// weights are the same values.
func NewMask2D(weights ...int) (*Mask, error) {
	return NewMask2DFloat(weights, toFloats(weights))
}

// NewMask2DFloat is NewMask2D with distinct weights for float accumulation.
func NewMask2DFloat(weights []int, floatWeights []float64) (*Mask, error) {
	return newShellMask(2, shells2D, weights, floatWeights)
}

// NewMask3D builds a 3D mask from the integer weights of its shells:
// orthogonal, face-diagonal and cube-diagonal. A fourth weight adds the
// (2,1,1) shell. With five weights, the fourth is for (2,1,0) and the fifth
// for (2,1,1).
func NewMask3D(weights ...int) (*Mask, error) {
	return NewMask3DFloat(weights, toFloats(weights))
}

// NewMask3DFloat is NewMask3D with distinct weights for float accumulation.
func NewMask3DFloat(weights []int, floatWeights []float64) (*Mask, error) {
	return newShellMask(3, shells3D, weights, floatWeights)
}

func newShellMask(dim int, layouts map[int][][3]int, weights []int, floatWeights []float64) (*Mask, error) {
	layout, ok := layouts[len(weights)]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidMask, "%d weights given for a %dD mask", len(weights), dim)
	}
	if len(floatWeights) != len(weights) {
		return nil, errors.Wrapf(ErrInvalidMask, "%d float weights given for %d integer weights", len(floatWeights), len(weights))
	}

	var offsets []Offset
	for i, base := range layout {
		offsets = append(offsets, shell(dim, base, weights[i], floatWeights[i])...)
	}
	return NewMaskFromOffsets(dim, offsets)
}

// Every signed permutation of base, restricted to the plane for 2D.
func shell(dim int, base [3]int, weight int, floatWeight float64) []Offset {
	var result []Offset
	zRange := 0
	if dim == 3 {
		zRange = 2
	}
	for dz := -zRange; dz <= zRange; dz++ {
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				if sortedAbs(dx, dy, dz) == base {
					result = append(result, Offset{dx, dy, dz, weight, floatWeight})
				}
			}
		}
	}
	return result
}

// Largest first.
func sortedAbs(dx, dy, dz int) [3]int {
	a, b, c := abs(dx), abs(dy), abs(dz)
	if a < b {
		a, b = b, a
	}
	if b < c {
		b, c = c, b
	}
	if a < b {
		a, b = b, a
	}
	return [3]int{a, b, c}
}

// NewMaskFromOffsets builds a mask from an explicit table. Offsets whose
// mirror is missing get it added with the same weights.
func NewMaskFromOffsets(dim int, offsets []Offset) (mask *Mask, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			mask = nil
			err = recoveredErr
		}
	}()
	return buildMask(dim, offsets), nil
}

func buildMask(dim int, offsets []Offset) *Mask {
	if dim != 2 && dim != 3 {
		internal.Throwf(ErrInvalidMask, "unsupported dimension %d", dim)
	}

	table := make(map[displacement]Offset)
	for _, o := range offsets {
		checkOffset(dim, o)
		addOffset(table, o)
		addOffset(table, o.Mirror())
	}

	checkOrthogonalShell(dim, table)
	checkShellWeights(table)
	checkTriangleInequality(table)

	mask := &Mask{dim: dim, table: table}
	for _, o := range table {
		if o.Forward() {
			mask.forward = append(mask.forward, o)
		}
	}
	slices.SortFunc(mask.forward, func(a, b Offset) bool {
		if a.Norm2() != b.Norm2() {
			return a.Norm2() < b.Norm2()
		}
		return a.before(b)
	})
	mask.backward = make([]Offset, len(mask.forward))
	for i, o := range mask.forward {
		mask.backward[i] = o.Mirror()
	}
	return mask
}

func checkOffset(dim int, o Offset) {
	if o.DX == 0 && o.DY == 0 && o.DZ == 0 {
		internal.Throwf(ErrInvalidMask, "zero offset")
	}
	if dim == 2 && o.DZ != 0 {
		internal.Throwf(ErrInvalidMask, "offset %v has a z component in a 2D mask", o)
	}
	if o.Weight < 0 || o.FloatWeight < 0 || math.IsNaN(o.FloatWeight) || math.IsInf(o.FloatWeight, 0) {
		internal.Throwf(ErrInvalidMask, "offset %v has an invalid weight", o)
	}
}

// Duplicates are fine as long as they agree.
func addOffset(table map[displacement]Offset, o Offset) {
	key := o.displacement()
	if existing, ok := table[key]; ok {
		if existing.Weight != o.Weight || existing.FloatWeight != o.FloatWeight {
			internal.Throwf(ErrInvalidMask, "conflicting weights %v and %v", existing, o)
		}
		return
	}
	table[key] = o
}

func checkOrthogonalShell(dim int, table map[displacement]Offset) {
	for _, o := range shell(dim, orthogonalShell, 0, 0) {
		if _, ok := table[o.displacement()]; !ok {
			internal.Throwf(ErrInvalidMask, "missing orthogonal offset (%d,%d,%d)", o.DX, o.DY, o.DZ)
		}
	}
}

// Equal lengths must weigh the same, and weights must not decrease with
// length.
func checkShellWeights(table map[displacement]Offset) {
	byNorm := make(map[int]Offset)
	for _, o := range table {
		if other, ok := byNorm[o.Norm2()]; ok {
			if other.Weight != o.Weight || other.FloatWeight != o.FloatWeight {
				internal.Throwf(ErrInvalidMask, "offsets %v and %v have the same length but different weights", other, o)
			}
			continue
		}
		byNorm[o.Norm2()] = o
	}

	norms := make([]int, 0, len(byNorm))
	for n := range byNorm {
		norms = append(norms, n)
	}
	slices.Sort(norms)
	for i := 1; i < len(norms); i++ {
		shorter, longer := byNorm[norms[i-1]], byNorm[norms[i]]
		if longer.Weight < shorter.Weight || longer.FloatWeight < shorter.FloatWeight {
			internal.Throwf(ErrInvalidMask, "offset %v weighs less than the shorter %v", longer, shorter)
		}
	}
}

const floatTolerance = 1e-9

func checkTriangleInequality(table map[displacement]Offset) {
	for _, a := range table {
		for _, b := range table {
			sum, ok := table[displacement{a.DX + b.DX, a.DY + b.DY, a.DZ + b.DZ}]
			if !ok {
				continue
			}
			// Weights are non-negative, so the difference cannot overflow
			if sum.Weight-a.Weight > b.Weight || sum.FloatWeight > a.FloatWeight+b.FloatWeight+floatTolerance {
				internal.Throwf(ErrInvalidMask, "offset %v weighs more than %v and %v combined", sum, a, b)
			}
		}
	}
}

// Dim is 2 or 3.
func (m *Mask) Dim() int {
	return m.dim
}

// Offsets returns a copy of the offsets read by the forward sweep, or by the
// backward sweep. Both are ordered by length, then in raster order.
func (m *Mask) Offsets(forward bool) []Offset {
	src := m.backward
	if forward {
		src = m.forward
	}
	result := make([]Offset, len(src))
	copy(result, src)
	return result
}

// Len is the number of offsets, both halves included.
func (m *Mask) Len() int {
	return len(m.table)
}

// Weight returns the integer weight of the offset (dx, dy, dz).
func (m *Mask) Weight(dx, dy, dz int) (int, error) {
	o, err := m.lookup(dx, dy, dz)
	if err != nil {
		return 0, err
	}
	return o.Weight, nil
}

// FloatWeight returns the float weight of the offset (dx, dy, dz).
func (m *Mask) FloatWeight(dx, dy, dz int) (float64, error) {
	o, err := m.lookup(dx, dy, dz)
	if err != nil {
		return 0, err
	}
	return o.FloatWeight, nil
}

func (m *Mask) lookup(dx, dy, dz int) (Offset, error) {
	o, ok := m.table[displacement{dx, dy, dz}]
	if !ok {
		return Offset{}, errors.Wrapf(ErrInvalidOffset, "(%d,%d,%d)", dx, dy, dz)
	}
	return o, nil
}

// NormalizationWeight is the orthogonal integer weight. Dividing an integer
// distance map by it gives values in pixel units.
func (m *Mask) NormalizationWeight() int {
	return m.table[displacement{1, 0, 0}].Weight
}

// FloatNormalizationWeight is the orthogonal float weight, usually 1.
func (m *Mask) FloatNormalizationWeight() float64 {
	return m.table[displacement{1, 0, 0}].FloatWeight
}

// Radius is the largest displacement along any axis.
func (m *Mask) Radius() int {
	r := 0
	for _, o := range m.forward {
		r = max(r, abs(o.DX), abs(o.DY), abs(o.DZ))
	}
	return r
}

func (m *Mask) steps(forward bool) []internal.Step {
	src := m.backward
	if forward {
		src = m.forward
	}
	steps := make([]internal.Step, len(src))
	for i, o := range src {
		steps[i] = o.step()
	}
	return steps
}

func toFloats(ints []int) []float64 {
	result := make([]float64, len(ints))
	for i, v := range ints {
		result[i] = float64(v)
	}
	return result
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
