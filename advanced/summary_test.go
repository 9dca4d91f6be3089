package advanced

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize2D(t *testing.T) {
	grid := NewGrid2D[uint16](4, 1)
	grid.Data = []uint16{0, 3, 6, math.MaxUint16}
	assert.Equal(t, Summary{
		Reachable:   3,
		Unreachable: 1,
		Min:         0,
		Max:         6,
		Mean:        3,
		StdDev:      3,
	}, Summarize2D(grid))

	single := NewGrid2D[float32](2, 1)
	single.Data = []float32{2.5, float32(math.Inf(1))}
	assert.Equal(t, Summary{Reachable: 1, Unreachable: 1, Min: 2.5, Max: 2.5, Mean: 2.5}, Summarize2D(single))

	none := NewGrid2D[uint8](2, 2)
	none.Fill(0, 0, 2, 2, math.MaxUint8)
	assert.Equal(t, Summary{Unreachable: 4}, Summarize2D(none))
}

func TestSummarizeRegion2D(t *testing.T) {
	ctx := context.Background()
	region := hangingWall(16, 8)
	region.Fill(10, 0, 13, 8, 0)
	marker := points2D(16, 8, [2]int{0, 0})

	grid, err := NewGeodesicDistanceTransform2D[uint16](Borgefors2D).GeodesicDistanceMap(ctx, marker, region)
	require.NoError(t, err)

	summary := SummarizeRegion2D(grid, region)
	// Columns 13 to 15 are cut off
	assert.Equal(t, 3*8, summary.Unreachable)
	assert.Equal(t, 16*8-4*6-3*8-3*8, summary.Reachable)
	assert.Equal(t, 0.0, summary.Min)
	assert.Equal(t, 51.0, summary.Max)

	whole := Summarize2D(grid)
	assert.Equal(t, summary.Unreachable, whole.Unreachable)
	assert.Equal(t, summary.Reachable+4*6+3*8, whole.Reachable)
}

func TestSummarize3D(t *testing.T) {
	grid := NewGrid3D[int16](2, 1, 2)
	grid.Data = []int16{1, 2, 3, 4}
	summary := Summarize3D(grid)
	assert.Equal(t, 4, summary.Reachable)
	assert.Equal(t, 2.5, summary.Mean)
	assert.InDelta(t, 1.2909944, summary.StdDev, 1e-6)

	region := NewGrid3D[uint8](2, 1, 2)
	region.Data = []uint8{0, 1, 1, 0}
	summary = SummarizeRegion3D(grid, region)
	assert.Equal(t, 2, summary.Reachable)
	assert.Equal(t, 2.0, summary.Min)
	assert.Equal(t, 3.0, summary.Max)
}
