package advanced

import (
	"github.com/osuushi/chamfer/internal"
)

// Number is the set of sample types a grid can hold.
type Number = internal.Number

// Binary2D is a read-only foreground view of a 2D grid.
type Binary2D interface {
	Size() (width, height int)
	Foreground(x, y int) bool
}

// Binary3D is a read-only foreground view of a 3D grid.
type Binary3D interface {
	Size() (width, height, depth int)
	Foreground(x, y, z int) bool
}

// Grid2D is a dense 2D array of samples in row-major order.
type Grid2D[T Number] struct {
	Width, Height int
	Data          []T
}

// NewGrid2D allocates a zeroed grid.
func NewGrid2D[T Number](width, height int) *Grid2D[T] {
	return &Grid2D[T]{width, height, make([]T, width*height)}
}

func (g *Grid2D[T]) Size() (int, int) {
	return g.Width, g.Height
}

func (g *Grid2D[T]) At(x, y int) T {
	return g.Data[y*g.Width+x]
}

func (g *Grid2D[T]) Set(x, y int, v T) {
	g.Data[y*g.Width+x] = v
}

// Fill sets every sample of the rectangle [x0,x1) x [y0,y1) to v.
func (g *Grid2D[T]) Fill(x0, y0, x1, y1 int, v T) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.Set(x, y, v)
		}
	}
}

// Foreground treats positive samples as foreground.
func (g *Grid2D[T]) Foreground(x, y int) bool {
	return g.At(x, y) > 0
}

func (g *Grid2D[T]) Clone() *Grid2D[T] {
	clone := NewGrid2D[T](g.Width, g.Height)
	copy(clone.Data, g.Data)
	return clone
}

// Grid3D is a dense 3D array of samples, row-major within each plane and
// planes in order of z.
type Grid3D[T Number] struct {
	Width, Height, Depth int
	Data                 []T
}

// NewGrid3D allocates a zeroed grid.
func NewGrid3D[T Number](width, height, depth int) *Grid3D[T] {
	return &Grid3D[T]{width, height, depth, make([]T, width*height*depth)}
}

func (g *Grid3D[T]) Size() (int, int, int) {
	return g.Width, g.Height, g.Depth
}

func (g *Grid3D[T]) At(x, y, z int) T {
	return g.Data[(z*g.Height+y)*g.Width+x]
}

func (g *Grid3D[T]) Set(x, y, z int, v T) {
	g.Data[(z*g.Height+y)*g.Width+x] = v
}

// Fill sets every sample of the box [x0,x1) x [y0,y1) x [z0,z1) to v.
func (g *Grid3D[T]) Fill(x0, y0, z0, x1, y1, z1 int, v T) {
	for z := z0; z < z1; z++ {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				g.Set(x, y, z, v)
			}
		}
	}
}

// Foreground treats positive samples as foreground.
func (g *Grid3D[T]) Foreground(x, y, z int) bool {
	return g.At(x, y, z) > 0
}

func (g *Grid3D[T]) Clone() *Grid3D[T] {
	clone := NewGrid3D[T](g.Width, g.Height, g.Depth)
	copy(clone.Data, g.Data)
	return clone
}

// Slice returns a copy of plane z.
func (g *Grid3D[T]) Slice(z int) *Grid2D[T] {
	plane := NewGrid2D[T](g.Width, g.Height)
	copy(plane.Data, g.Data[z*g.Width*g.Height:(z+1)*g.Width*g.Height])
	return plane
}

type threshold2D[T Number] struct {
	grid  *Grid2D[T]
	level T
}

func (t threshold2D[T]) Size() (int, int) { return t.grid.Size() }

func (t threshold2D[T]) Foreground(x, y int) bool { return t.grid.At(x, y) > t.level }

// Threshold2D views grid as foreground wherever a sample exceeds level.
func Threshold2D[T Number](grid *Grid2D[T], level T) Binary2D {
	return threshold2D[T]{grid, level}
}

type threshold3D[T Number] struct {
	grid  *Grid3D[T]
	level T
}

func (t threshold3D[T]) Size() (int, int, int) { return t.grid.Size() }

func (t threshold3D[T]) Foreground(x, y, z int) bool { return t.grid.At(x, y, z) > t.level }

// Threshold3D views grid as foreground wherever a sample exceeds level.
func Threshold3D[T Number](grid *Grid3D[T], level T) Binary3D {
	return threshold3D[T]{grid, level}
}

// Flatten the foreground of a view into raster order.
func foreground2D(image Binary2D) (internal.Shape, []bool) {
	w, h := image.Size()
	shape := internal.Shape{Width: w, Height: h, Depth: 1}
	result := make([]bool, shape.Len())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			result[shape.Index(x, y, 0)] = image.Foreground(x, y)
		}
	}
	return shape, result
}

func foreground3D(image Binary3D) (internal.Shape, []bool) {
	w, h, d := image.Size()
	shape := internal.Shape{Width: w, Height: h, Depth: d}
	result := make([]bool, shape.Len())
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				result[shape.Index(x, y, z)] = image.Foreground(x, y, z)
			}
		}
	}
	return shape, result
}
