// Package fling models the distance a natural, friction decelerated scroll travels for a given flick velocity (and the inverse).
//
// The deceleration curve is a spline with two asymptotic lines that cross at (Inflexion, 1). The physical coefficient is derived once from the display density.
package fling

import (
	"math"
	"time"
)

const (
	Gravity   = 9.80665 // m/s^2
	Inflexion = 0.35    // tension lines cross at (Inflexion, 1)
	Friction  = 0.015   // default scroll friction
)

// ln(0.78)/ln(0.9)
var DecelerationRate = math.Log(0.78) / math.Log(0.9)

//----------

type Model struct {
	friction float64
	coeff    float64 // physical coefficient
}

func New(densityDPI float64) *Model {
	m := &Model{friction: Friction}
	// look and feel tuning
	m.coeff = Gravity * 39.37 * densityDPI * 0.84
	return m
}

func (m *Model) SetFriction(f float64) {
	m.friction = f
}

func (m *Model) Friction() float64 { return m.friction }

//----------

// Distance travelled by a fling with velocity v (pixels/second). Always >=0.
func (m *Model) Distance(v float64) float64 {
	l := m.decelLog(v)
	if math.IsInf(l, -1) {
		return 0
	}
	r := DecelerationRate
	return m.mk() * math.Exp(r/(r-1)*l)
}

// Inverse of Distance. The result has the sign of d.
func (m *Model) Velocity(d float64) float64 {
	if d == 0 || m.mk() == 0 {
		return 0
	}
	r := DecelerationRate
	v := m.mk() / Inflexion * math.Exp((r-1)/r*math.Log(math.Abs(d)/m.mk()))
	if d < 0 {
		return -v
	}
	return v
}

// Duration of a fling with velocity v.
func (m *Model) Duration(v float64) time.Duration {
	l := m.decelLog(v)
	if math.IsInf(l, -1) {
		return 0
	}
	ms := 1000 * math.Exp(l/(DecelerationRate-1))
	return time.Duration(ms * float64(time.Millisecond))
}

// Reports whether a fling with velocity v travels farther than |d|.
func (m *Model) Exceeds(v, d float64) bool {
	return m.Distance(v) > math.Abs(d)
}

//----------

func (m *Model) mk() float64 {
	return m.friction * m.coeff
}

func (m *Model) decelLog(v float64) float64 {
	if v == 0 || m.mk() == 0 {
		return math.Inf(-1)
	}
	return math.Log(Inflexion * math.Abs(v) / m.mk())
}
