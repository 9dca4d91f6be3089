package advanced

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disk(size, cx, cy, r int) *Grid2D[uint8] {
	grid := NewGrid2D[uint8](size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				grid.Set(x, y, 1)
			}
		}
	}
	return grid
}

// All foreground except for a single background pixel.
func hole(width, height, x, y int) *Grid2D[uint8] {
	grid := NewGrid2D[uint8](width, height)
	grid.Fill(0, 0, width, height, 1)
	grid.Set(x, y, 0)
	return grid
}

func maxOf[T Number](values []T) T {
	m := values[0]
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

func TestDistanceMap_Exact(t *testing.T) {
	ctx := context.Background()

	grid, err := NewDistanceTransform2D[uint16](Borgefors2D).DistanceMap(ctx, hole(7, 7, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, []uint16{
		12, 11, 10, 9, 10, 11, 12,
		11, 8, 7, 6, 7, 8, 11,
		10, 7, 4, 3, 4, 7, 10,
		9, 6, 3, 0, 3, 6, 9,
		10, 7, 4, 3, 4, 7, 10,
		11, 8, 7, 6, 7, 8, 11,
		12, 11, 10, 9, 10, 11, 12,
	}, grid.Data)

	grid, err = NewDistanceTransform2D[uint16](ChessKnight2D).DistanceMap(ctx, hole(7, 7, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, []uint16{
		21, 18, 16, 15, 16, 18, 21,
		18, 14, 11, 10, 11, 14, 18,
		16, 11, 7, 5, 7, 11, 16,
		15, 10, 5, 0, 5, 10, 15,
		16, 11, 7, 5, 7, 11, 16,
		18, 14, 11, 10, 11, 14, 18,
		21, 18, 16, 15, 16, 18, 21,
	}, grid.Data)
}

func TestDistanceMap_Disk(t *testing.T) {
	ctx := context.Background()
	image := disk(31, 15, 15, 10)

	for _, tc := range []struct {
		mask     *Mask
		raw      uint16
		expected uint16
	}{
		{Borgefors2D, 31, 10},
		{ChessKnight2D, 51, 10},
		{Chessboard2D, 8, 8},
		{CityBlock2D, 11, 11},
	} {
		raw, err := NewDistanceTransform2D[uint16](tc.mask).DistanceMap(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, tc.raw, maxOf(raw.Data))
		assert.Equal(t, tc.raw, raw.At(15, 15))

		normalized, err := NewDistanceTransform2D[uint16](tc.mask, WithNormalization(true)).DistanceMap(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, normalized.At(15, 15))
		assert.InDelta(t, 10, float64(normalized.At(15, 15)), 2)
	}

	grid, err := NewDistanceTransform2D[float64](QuasiEuclidean2D, WithNormalization(true)).DistanceMap(ctx, image)
	require.NoError(t, err)
	assert.InDelta(t, 10.414, grid.At(15, 15), 1e-3)
}

func TestDistanceMap_BackgroundIsZero(t *testing.T) {
	image := disk(21, 10, 10, 6)
	grid, err := NewDistanceTransform2D[int32](Borgefors2D).DistanceMap(context.Background(), image)
	require.NoError(t, err)
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			if image.Foreground(x, y) {
				assert.Positive(t, grid.At(x, y))
			} else {
				assert.Zero(t, grid.At(x, y))
			}
		}
	}
}

func TestDistanceMap_InputUntouchedAndRepeatable(t *testing.T) {
	ctx := context.Background()
	image := disk(21, 10, 10, 6)
	original := image.Clone()
	transform := NewDistanceTransform2D[uint16](ChessKnight2D, WithNormalization(true))

	first, err := transform.DistanceMap(ctx, image)
	require.NoError(t, err)
	second, err := transform.DistanceMap(ctx, image)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, original, image)
}

func TestDistanceMap_Inverted(t *testing.T) {
	ctx := context.Background()
	point := NewGrid2D[uint8](7, 7)
	point.Set(3, 3, 1)

	inverted, err := NewDistanceTransform2D[uint16](Borgefors2D, WithInverted(true)).DistanceMap(ctx, point)
	require.NoError(t, err)
	plain, err := NewDistanceTransform2D[uint16](Borgefors2D).DistanceMap(ctx, hole(7, 7, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, plain, inverted)
}

func TestDistanceMap_NoSource(t *testing.T) {
	ctx := context.Background()
	full := NewGrid2D[uint8](4, 3)
	full.Fill(0, 0, 4, 3, 1)

	grid, err := NewDistanceTransform2D[uint16](Borgefors2D, WithNormalization(true)).DistanceMap(ctx, full)
	require.NoError(t, err)
	for _, v := range grid.Data {
		assert.Equal(t, uint16(math.MaxUint16), v)
	}

	floats, err := NewDistanceTransform2D[float32](QuasiEuclidean2D).DistanceMap(ctx, full)
	require.NoError(t, err)
	for _, v := range floats.Data {
		assert.True(t, math.IsInf(float64(v), 1))
	}

	// Inverted with no foreground at all
	empty := NewGrid2D[uint8](4, 3)
	grid, err = NewDistanceTransform2D[uint16](Borgefors2D, WithInverted(true)).DistanceMap(ctx, empty)
	require.NoError(t, err)
	assert.Equal(t, uint16(math.MaxUint16), grid.At(2, 1))
}

func TestDistanceMap_Saturates(t *testing.T) {
	row := NewGrid2D[uint8](100, 1)
	row.Fill(1, 0, 100, 1, 1)

	grid, err := NewDistanceTransform2D[uint8](Borgefors2D).DistanceMap(context.Background(), row)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), grid.At(0, 0))
	assert.Equal(t, uint8(3), grid.At(1, 0))
	assert.Equal(t, uint8(252), grid.At(84, 0))
	assert.Equal(t, uint8(255), grid.At(85, 0))
	// Would have wrapped around to 2 without saturation
	assert.Equal(t, uint8(255), grid.At(86, 0))
	assert.Equal(t, uint8(255), grid.At(99, 0))
}

func TestDistanceMap_3D(t *testing.T) {
	ctx := context.Background()
	image := NewGrid3D[uint8](9, 9, 9)
	image.Fill(0, 0, 0, 9, 9, 9, 1)
	image.Set(4, 4, 4, 0)

	for _, tc := range []struct {
		mask                    *Mask
		corner, face, edge, mid uint16
	}{
		{Borgefors3D, 20, 12, 16, 15},
		{Svensson3D, 20, 12, 16, 14},
		{Weights8To20, 56, 32, 44, 38},
	} {
		grid, err := NewDistanceTransform3D[uint16](tc.mask).DistanceMap(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, uint16(0), grid.At(4, 4, 4))
		assert.Equal(t, tc.corner, grid.At(0, 0, 0))
		assert.Equal(t, tc.corner, grid.At(8, 8, 8))
		assert.Equal(t, tc.face, grid.At(0, 4, 4))
		assert.Equal(t, tc.edge, grid.At(0, 0, 4))
		assert.Equal(t, tc.mid, grid.At(3, 2, 0))
		assert.Equal(t, tc.corner, maxOf(grid.Data))
	}

	grid, err := NewDistanceTransform3D[uint16](Borgefors3D, WithNormalization(true)).DistanceMap(ctx, image)
	require.NoError(t, err)
	assert.Equal(t, uint16(7), grid.At(0, 0, 0))
	assert.Equal(t, uint16(4), grid.At(0, 4, 4))
}

func TestDistanceMap_Errors(t *testing.T) {
	image := hole(5, 5, 2, 2)

	_, err := NewDistanceTransform2D[uint16](Borgefors3D).DistanceMap(context.Background(), image)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = NewDistanceTransform3D[uint16](Borgefors2D).DistanceMap(context.Background(), NewGrid3D[uint8](2, 2, 2))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = NewDistanceTransform2D[uint16](nil).DistanceMap(context.Background(), image)
	assert.True(t, errors.Is(err, ErrInvalidMask))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	grid, err := NewDistanceTransform2D[uint16](Borgefors2D).DistanceMap(ctx, image)
	assert.Nil(t, grid)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDistanceTransform_Mask(t *testing.T) {
	assert.Same(t, Borgefors2D, NewDistanceTransform2D[uint8](Borgefors2D).Mask())
	assert.Same(t, Borgefors3D, NewDistanceTransform3D[uint8](Borgefors3D).Mask())
}

func TestThreshold(t *testing.T) {
	grid := NewGrid2D[uint16](3, 1)
	grid.Data = []uint16{10, 200, 128}
	view := Threshold2D(grid, 127)
	w, h := view.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 1, h)
	assert.False(t, view.Foreground(0, 0))
	assert.True(t, view.Foreground(1, 0))
	assert.True(t, view.Foreground(2, 0))

	volume := NewGrid3D[float32](1, 1, 2)
	volume.Data = []float32{0.25, 0.75}
	view3 := Threshold3D(volume, 0.5)
	assert.False(t, view3.Foreground(0, 0, 0))
	assert.True(t, view3.Foreground(0, 0, 1))
}

func TestGrid3D_Slice(t *testing.T) {
	grid := NewGrid3D[uint8](2, 2, 2)
	grid.Fill(0, 0, 1, 2, 2, 2, 5)
	plane := grid.Slice(1)
	assert.Equal(t, []uint8{5, 5, 5, 5}, plane.Data)
	assert.Equal(t, []uint8{0, 0, 0, 0}, grid.Slice(0).Data)

	plane.Set(0, 0, 9)
	assert.Equal(t, uint8(5), grid.At(0, 0, 1))
}
