package internal

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type depth uint16

func TestLimitsOf(t *testing.T) {
	assert.Equal(t, Limits{Max: math.MaxUint8}, LimitsOf[uint8]())
	assert.Equal(t, Limits{Max: math.MaxInt16}, LimitsOf[int16]())
	assert.Equal(t, Limits{Max: math.MaxUint16}, LimitsOf[uint16]())
	assert.Equal(t, Limits{Max: math.MaxInt32}, LimitsOf[int32]())
	assert.Equal(t, Limits{Max: math.MaxInt64}, LimitsOf[uint64]())
	assert.Equal(t, Limits{Float: true}, LimitsOf[float32]())
	assert.Equal(t, Limits{Float: true}, LimitsOf[float64]())

	// Named types resolve like their underlying type
	assert.Equal(t, Limits{Max: math.MaxUint16}, LimitsOf[depth]())
}

func TestLimitsOf_PlatformWidth(t *testing.T) {
	signed, unsigned := Limits{Max: math.MaxInt64}, Limits{Max: math.MaxInt64}
	if strconv.IntSize == 32 {
		signed, unsigned = Limits{Max: math.MaxInt32}, Limits{Max: math.MaxUint32}
	}
	assert.Equal(t, signed, LimitsOf[int]())
	assert.Equal(t, unsigned, LimitsOf[uint]())
	assert.Equal(t, unsigned, LimitsOf[uintptr]())

	// The sentinel must survive the conversion back to T
	ints := NewAccumulator[int]()
	assert.Positive(t, ints.Sentinel)
	assert.Equal(t, int64(ints.Sentinel), ints.Limits.Max)
	assert.Equal(t, ints.Sentinel, ints.Add(ints.Sentinel-2, Step{Int: 5, Float: 5}))

	uints := NewAccumulator[uint]()
	assert.Equal(t, uint64(uints.Sentinel), uint64(uints.Limits.Max))
	assert.Equal(t, uints.Sentinel, uints.Add(uints.Sentinel-2, Step{Int: 5, Float: 5}))
	assert.True(t, uints.IsSentinel(uints.Add(uints.Sentinel, Step{Int: 3, Float: 3})))
}

func TestAccumulator_Saturates(t *testing.T) {
	acc := NewAccumulator[uint8]()
	assert.Equal(t, uint8(255), acc.Sentinel)

	step := Step{Int: 10, Float: 10}
	assert.Equal(t, uint8(15), acc.Add(5, step))
	assert.Equal(t, uint8(245), acc.Add(235, step))
	// Would wrap to 0 without the check
	assert.Equal(t, uint8(255), acc.Add(246, step))
	assert.Equal(t, uint8(255), acc.Add(255, step))
	assert.True(t, acc.IsSentinel(acc.Add(250, step)))

	wide := NewAccumulator[int64]()
	assert.Equal(t, int64(math.MaxInt64), wide.Add(math.MaxInt64-3, step))
}

func TestAccumulator_Float(t *testing.T) {
	acc := NewAccumulator[float32]()
	assert.True(t, math.IsInf(float64(acc.Sentinel), 1))

	step := Step{Int: 14, Float: math.Sqrt2}
	assert.InDelta(t, 1+math.Sqrt2, float64(acc.Add(1, step)), 1e-6)
	assert.True(t, acc.IsSentinel(acc.Add(acc.Sentinel, step)))
}

func TestAccumulator_Normalize(t *testing.T) {
	t.Run("integer rounds half up", func(t *testing.T) {
		acc := NewAccumulator[uint16]()
		values := []uint16{0, 51, 81, 1254, 15, acc.Sentinel}
		acc.Normalize(values[:4], nil, 3, 3)
		assert.Equal(t, []uint16{0, 17, 27, 418, 15, acc.Sentinel}, values)

		values = []uint16{81, 1254, 15, acc.Sentinel}
		acc.Normalize(values, nil, 5, 5)
		assert.Equal(t, []uint16{16, 251, 3, acc.Sentinel}, values)
	})

	t.Run("keep mask", func(t *testing.T) {
		acc := NewAccumulator[int32]()
		values := []int32{30, 30}
		acc.Normalize(values, []bool{true, false}, 3, 3)
		assert.Equal(t, []int32{10, 30}, values)
	})

	t.Run("float", func(t *testing.T) {
		acc := NewAccumulator[float64]()
		values := []float64{81, acc.Sentinel}
		acc.Normalize(values, nil, 5, 5)
		assert.InDelta(t, 16.2, values[0], 1e-9)
		assert.True(t, math.IsInf(values[1], 1))
	})

	t.Run("unit weight is a no-op", func(t *testing.T) {
		acc := NewAccumulator[float64]()
		values := []float64{1.5}
		acc.Normalize(values, nil, 10, 1)
		assert.Equal(t, []float64{1.5}, values)
	})
}
