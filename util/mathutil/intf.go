package mathutil

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Integer based float. Based on fixed.Int52_12.
type Intf int64

func Intf1(x int) Intf { return Intf(x) << 12 }
func Intf2(f float64) Intf {
	return Intf(math.Round(f * (1 << 12)))
}

// Ties are rounded up.
func (x Intf) Round() int { return fixed.Int52_12(x).Round() }

func (x Intf) Float64() float64 {
	return float64(x) / (1 << 12)
}

// Formatted as "int:frac" with frac in 1/4096 units.
func (x Intf) String() string {
	return fixed.Int52_12(x).String()
}

//----------

// Moves x towards target by at most step (step>=0). Never overshoots.
func (x Intf) Approach(target, step Intf) Intf {
	if x < target {
		if target-x <= step {
			return target
		}
		return x + step
	}
	if x-target <= step {
		return target
	}
	return x - step
}
