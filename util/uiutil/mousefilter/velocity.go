package mousefilter

import (
	"image"
	"time"

	"github.com/jmigpin/sheet/util/uiutil/event"
)

// Estimates the pointer velocity from timestamped pointer events. Used when the host does not provide a velocity on pointer up.
type VelocityTracker struct {
	Window time.Duration // samples older than this (relative to the last) are discarded

	pid     event.PointerId
	samples []velSample
}

type velSample struct {
	p image.Point
	t time.Time
}

func NewVelocityTracker() *VelocityTracker {
	return &VelocityTracker{Window: 100 * time.Millisecond}
}

func (vt *VelocityTracker) Filter(ev any) {
	switch t := ev.(type) {
	case *event.PointerDown:
		vt.Reset()
		vt.pid = t.PointerId
		vt.add(t.Point, t.Time)
	case *event.PointerMove:
		if t.PointerId == vt.pid {
			vt.add(t.Point, t.Time)
		}
	case *event.PointerUp:
		if t.PointerId == vt.pid {
			vt.add(t.Point, t.Time)
		}
	}
}

func (vt *VelocityTracker) Reset() {
	vt.samples = vt.samples[:0]
}

func (vt *VelocityTracker) add(p image.Point, t time.Time) {
	if t.IsZero() {
		return // no time info
	}
	if n := len(vt.samples); n > 0 && t.Before(vt.samples[n-1].t) {
		vt.Reset() // clock went backwards
	}
	vt.samples = append(vt.samples, velSample{p, t})

	// discard old samples
	last := vt.samples[len(vt.samples)-1].t
	k := 0
	for k < len(vt.samples)-1 && last.Sub(vt.samples[k].t) > vt.Window {
		k++
	}
	if k > 0 {
		vt.samples = append(vt.samples[:0], vt.samples[k:]...)
	}
}

// Velocity in pixels per second. Zero if there is not enough information.
func (vt *VelocityTracker) Velocity() event.Velocity {
	if len(vt.samples) < 2 {
		return event.Velocity{}
	}
	a := vt.samples[0]
	b := vt.samples[len(vt.samples)-1]
	dt := b.t.Sub(a.t)
	if dt <= 0 {
		return event.Velocity{}
	}
	d := b.p.Sub(a.p)
	perSec := func(v int) float64 {
		return float64(v) * float64(time.Second) / float64(dt)
	}
	return event.Velocity{X: perSec(d.X), Y: perSec(d.Y)}
}
