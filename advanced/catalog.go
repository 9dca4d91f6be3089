package advanced

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// An Entry is a named mask of a catalog.
type Entry struct {
	Label string
	Mask  *Mask
}

// A Catalog is a fixed, ordered list of named masks.
type Catalog struct {
	entries []Entry
}

// Entries returns the masks in catalog order.
func (c *Catalog) Entries() []Entry {
	result := make([]Entry, len(c.entries))
	copy(result, c.entries)
	return result
}

// Labels returns the display labels in catalog order.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.entries))
	for i, e := range c.entries {
		labels[i] = e.Label
	}
	return labels
}

// Lookup finds a mask by label, ignoring case.
func (c *Catalog) Lookup(label string) (*Mask, error) {
	for _, e := range c.entries {
		if strings.EqualFold(e.Label, label) {
			return e.Mask, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownMask, "%q", label)
}

// Named 2D masks.
var (
	// Chessboard2D uses weight 1 for orthogonal and diagonal neighbors.
	Chessboard2D = mustMask(NewMask2D(1, 1))

	// CityBlock2D uses 1 for orthogonal and 2 for diagonal neighbors, which
	// is the 4-connected distance.
	CityBlock2D = mustMask(NewMask2D(1, 2))

	// QuasiEuclidean2D uses 1 and sqrt(2) in float, 10 and 14 in integer.
	QuasiEuclidean2D = mustMask(NewMask2DFloat([]int{10, 14}, []float64{1, math.Sqrt2}))

	// Borgefors2D uses 3 and 4, the best approximation in a 3x3 window.
	Borgefors2D = mustMask(NewMask2D(3, 4))

	// Weights23 uses 2 and 3, a diagonal of 1.5 once normalized.
	Weights23 = mustMask(NewMask2D(2, 3))

	// Weights57 uses 5 and 7, with a normalized diagonal of 1.4.
	Weights57 = mustMask(NewMask2D(5, 7))

	// ChessKnight2D adds 11 for the (2,1) knight moves to weights 5 and 7.
	ChessKnight2D = mustMask(NewMask2D(5, 7, 11))
)

// Named 3D masks.
var (
	Chessboard3D     = mustMask(NewMask3D(1, 1, 1))
	CityBlock3D      = mustMask(NewMask3D(1, 2, 3))
	QuasiEuclidean3D = mustMask(NewMask3DFloat([]int{10, 14, 17}, []float64{1, math.Sqrt2, math.Sqrt(3)}))
	Borgefors3D      = mustMask(NewMask3D(3, 4, 5))

	// Svensson3D adds 7 for the (2,1,1) shifts, which keeps a low
	// orthogonal weight.
	Svensson3D = mustMask(NewMask3D(3, 4, 5, 7))

	// Five-weight masks in a 5x5x5 window.
	Weights8To20  = mustMask(NewMask3D(8, 11, 14, 18, 20))
	Weights13To31 = mustMask(NewMask3D(13, 18, 22, 29, 31))
)

// Masks2D lists the named 2D masks.
var Masks2D = &Catalog{entries: []Entry{
	{"Chessboard (1,1)", Chessboard2D},
	{"City-Block (1,2)", CityBlock2D},
	{"Quasi-Euclidean (1,1.41)", QuasiEuclidean2D},
	{"Borgefors (3,4)", Borgefors2D},
	{"Weights (2,3)", Weights23},
	{"Weights (5,7)", Weights57},
	{"Chessknight (5,7,11)", ChessKnight2D},
}}

// Masks3D lists the named 3D masks.
var Masks3D = &Catalog{entries: []Entry{
	{"Chessboard (1,1,1)", Chessboard3D},
	{"City-Block (1,2,3)", CityBlock3D},
	{"Quasi-Euclidean (1,1.41,1.73)", QuasiEuclidean3D},
	{"Borgefors (3,4,5)", Borgefors3D},
	{"Svensson <3,4,5,7>", Svensson3D},
	{"<8,11,14,18,20>", Weights8To20},
	{"<13,18,22,29,31>", Weights13To31},
}}

func mustMask(mask *Mask, err error) *Mask {
	if err != nil {
		panic(err)
	}
	return mask
}
