package sheet

import (
	"github.com/jmigpin/sheet/util/mathutil"
)

type Anchors struct {
	Expanded     int
	Collapsed    int
	HalfExpanded int // valid if HasHalf
	HasHalf      bool
}

func ComputeAnchors(axis Axis, panel, container, peek int, half bool, ratio float64) Anchors {
	e, c := axis.Anchors(panel, container, peek)
	a := Anchors{Expanded: e, Collapsed: c}
	if half && axis.SupportsHalf() {
		a.HasHalf = true
		a.HalfExpanded = mathutil.Lerp(c, e, ratio)
	}
	return a
}

//----------

// Sign of an offset displacement that moves the panel towards expanded.
func (a *Anchors) openDir() int {
	return mathutil.Sign(a.Expanded - a.Collapsed)
}

func (a *Anchors) Clamp(offset int) int {
	return mathutil.LimitAny(offset, a.Expanded, a.Collapsed)
}

// Offset of a stable state.
func (a *Anchors) Offset(st State) (int, bool) {
	switch st {
	case Expanded:
		return a.Expanded, true
	case Collapsed:
		return a.Collapsed, true
	case HalfExpanded:
		return a.HalfExpanded, a.HasHalf
	}
	return 0, false
}

// Slide fraction: 0 at collapsed, 1 at expanded.
func (a *Anchors) Fraction(offset int) float64 {
	d := a.Collapsed - a.Expanded
	if d == 0 {
		return 1
	}
	f := float64(a.Collapsed-offset) / float64(d)
	return mathutil.Limit(f, 0, 1)
}

//----------

type anchorPoint struct {
	st     State
	offset int
}

// Ordered from expanded to collapsed; ties are resolved with this order.
func (a *Anchors) points() []anchorPoint {
	u := []anchorPoint{{Expanded, a.Expanded}}
	if a.HasHalf {
		u = append(u, anchorPoint{HalfExpanded, a.HalfExpanded})
	}
	u = append(u, anchorPoint{Collapsed, a.Collapsed})
	return u
}

// Nearest anchor, ties broken towards expanded.
func (a *Anchors) Nearest(offset int) State {
	best := anchorPoint{}
	bestD := -1
	for _, p := range a.points() {
		d := mathutil.Abs(p.offset - offset)
		if bestD < 0 || d < bestD {
			best, bestD = p, d
		}
	}
	return best.st
}

// Next anchor strictly beyond offset in the direction dir (offset units). If there is none, returns the last anchor in that direction.
func (a *Anchors) Next(offset int, dir int) State {
	pts := a.points()
	var best, last anchorPoint
	bestD, lastV := -1, 0
	for i, p := range pts {
		v := p.offset * dir
		if i == 0 || v > lastV {
			last, lastV = p, v
		}
		d := (p.offset - offset) * dir
		if d > 0 && (bestD < 0 || d < bestD) {
			best, bestD = p, d
		}
	}
	if bestD < 0 {
		return last.st
	}
	return best.st
}
