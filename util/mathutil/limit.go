package mathutil

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Limit[T constraints.Ordered](v, min, max T) T {
	if v < min {
		return min
	} else if v > max {
		return max
	}
	return v
}

// Same as Limit, but accepts the bounds in any order.
func LimitAny[T constraints.Ordered](v, a, b T) T {
	if a > b {
		a, b = b, a
	}
	return Limit(v, a, b)
}

//----------

type Signed interface {
	constraints.Signed | constraints.Float
}

func Abs[T Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Returns -1, 0 or 1.
func Sign[T Signed](v T) int {
	if v < 0 {
		return -1
	} else if v > 0 {
		return 1
	}
	return 0
}

//----------

// Linear interpolation between a and b (t=0 gives a).
func Lerp(a, b int, t float64) int {
	return int(math.Round(float64(a)*(1-t) + float64(b)*t))
}
