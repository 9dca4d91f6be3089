package internal

import (
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Number is the set of sample types a grid can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Limits describes how a numeric type accumulates chamfer weights. Integer
// types saturate at Max, which doubles as the "unreachable" value. Float
// types use +Inf instead and never clamp.
type Limits struct {
	Float bool
	Max   int64
}

// LimitsOf inspects the kind and width of T. Kinds are used rather than a
// type switch so that named types (type Depth uint16) resolve like their
// underlying type, and widths so that int and uint follow the platform.
// 64-bit unsigned types saturate at MaxInt64 so sums fit an int64.
func LimitsOf[T Number]() Limits {
	var zero T
	t := reflect.TypeOf(zero)
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return Limits{Float: true}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Limits{Max: math.MaxInt64 >> (64 - t.Bits())}
	default:
		if t.Bits() >= 64 {
			return Limits{Max: math.MaxInt64}
		}
		return Limits{Max: int64(1)<<t.Bits() - 1}
	}
}

// Accumulator adds weights to values of type T under its numeric policy.
type Accumulator[T Number] struct {
	Limits   Limits
	Sentinel T
}

func NewAccumulator[T Number]() Accumulator[T] {
	limits := LimitsOf[T]()
	var sentinel T
	if limits.Float {
		sentinel = T(math.Inf(1))
	} else {
		sentinel = T(limits.Max)
	}
	return Accumulator[T]{Limits: limits, Sentinel: sentinel}
}

// Add returns v plus the weight of step. Integer sums are checked against
// the saturation value before adding, so they clamp instead of wrapping.
func (a Accumulator[T]) Add(v T, step Step) T {
	if a.Limits.Float {
		return T(float64(v) + step.Float)
	}
	sum := int64(v)
	if sum >= a.Limits.Max || sum > a.Limits.Max-step.Int {
		return a.Sentinel
	}
	return T(sum + step.Int)
}

// IsSentinel reports whether v is the unreachable value.
func (a Accumulator[T]) IsSentinel(v T) bool {
	if a.Limits.Float {
		return math.IsInf(float64(v), 1)
	}
	return int64(v) >= a.Limits.Max
}

// Normalize divides every reachable value in place by the normalization
// weight of the policy. Integer results are rounded half up. Positions
// where keep is false are left alone, as are sentinel values.
func (a Accumulator[T]) Normalize(values []T, keep []bool, intWeight int64, floatWeight float64) {
	if a.Limits.Float {
		if floatWeight == 0 || floatWeight == 1 {
			return
		}
		for i, v := range values {
			if keep != nil && !keep[i] {
				continue
			}
			values[i] = T(float64(v) / floatWeight)
		}
		return
	}

	if intWeight <= 1 {
		return
	}
	half := intWeight / 2
	for i, v := range values {
		if keep != nil && !keep[i] {
			continue
		}
		if a.IsSentinel(v) {
			continue
		}
		values[i] = T((int64(v) + half) / intWeight)
	}
}
