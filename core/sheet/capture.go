package sheet

import (
	"image"

	"github.com/jmigpin/sheet/util/mathutil"
	"github.com/jmigpin/sheet/util/uiutil/event"
	"github.com/jmigpin/sheet/util/uiutil/mousefilter"
)

type axisLock int

const (
	lockNone axisLock = iota
	lockPrimary
	lockOrthogonal
)

// Per touch stream state, from the first pointer down until up/cancel.
type gestureSession struct {
	active         bool
	pid            event.PointerId
	start          image.Point
	last           image.Point // last point applied to the offset
	ignore         bool
	lock           axisLock // decided once past the slop
	touchingScroll bool     // stream owned by nested scroll content
	captured       bool
}

//----------

// Decides whether the panel steals the event stream from its children. Once it returns true, the host should deliver the rest of the stream (including this event) to HandleTouch.
func (c *Controller) InterceptTouch(ev any, st ScrollTarget) bool {
	defer c.flushPending()
	if !c.acceptsTouch() {
		return false
	}
	c.vt.Filter(ev)
	switch t := ev.(type) {
	case *event.PointerDown:
		c.touchDown(t, st)
	case *event.PointerMove:
		c.lastTouch = t.Point
		if !c.ownsPointer(t.PointerId) || c.gs.captured {
			return false
		}
		c.updateLock(t.Point)
		if c.gs.lock != lockPrimary || c.gs.touchingScroll {
			return false
		}
		d := c.axis.Along(t.Point) - c.axis.Along(c.gs.start)
		if mathutil.Sign(d) != c.anchors.openDir() {
			return false
		}
		return c.canCapture(st)
	case *event.PointerUp:
		c.lastTouch = t.Point
		if !c.gs.captured {
			c.touchEnd(t.PointerId)
		}
	case *event.PointerCancel:
		if !c.gs.captured {
			c.touchEnd(t.PointerId)
		}
	}
	return false
}

// Panel's own touch stream: events intercepted from children, or not consumed by them.
func (c *Controller) HandleTouch(ev any, st ScrollTarget) event.Handle {
	defer c.flushPending()
	if !c.acceptsTouch() {
		return event.NotHandled
	}
	c.vt.Filter(ev)
	switch t := ev.(type) {
	case *event.PointerDown:
		c.touchDown(t, st)
		if !c.gs.active || c.gs.ignore {
			return event.NotHandled
		}
		return event.Handled
	case *event.PointerMove:
		c.lastTouch = t.Point
		if !c.ownsPointer(t.PointerId) {
			return event.NotHandled
		}
		if !c.gs.captured {
			c.updateLock(t.Point)
			if c.gs.lock != lockPrimary || !c.canCapture(st) {
				return event.NotHandled
			}
			c.capture(t.Point)
			return event.Handled
		}
		c.dragTo(t.Point)
		return event.Handled
	case *event.PointerUp:
		c.lastTouch = t.Point
		if !c.gs.active || t.PointerId != c.gs.pid {
			Logf("ignoring up from pointer %v", t.PointerId)
			return event.NotHandled
		}
		if !c.gs.captured {
			c.touchEnd(t.PointerId)
			return event.NotHandled
		}
		c.dragTo(t.Point)
		v := t.Velocity
		if v.IsZero() {
			v = c.vt.Velocity()
		}
		c.gs = gestureSession{}
		c.release(c.alongVelocity(v))
		return event.Handled
	case *event.PointerCancel:
		if !c.gs.active || t.PointerId != c.gs.pid {
			return event.NotHandled
		}
		if !c.gs.captured {
			c.touchEnd(t.PointerId)
			return event.NotHandled
		}
		c.gs = gestureSession{}
		c.release(0)
		return event.Handled
	}
	return event.NotHandled
}

//----------

func (c *Controller) acceptsTouch() bool {
	return !c.detached && c.measured && c.draggable
}

func (c *Controller) ownsPointer(pid event.PointerId) bool {
	if !c.gs.active || c.gs.ignore {
		return false
	}
	if pid != c.gs.pid {
		Logf("ignoring pointer %v, session owned by %v", pid, c.gs.pid)
		return false
	}
	return true
}

func (c *Controller) touchDown(ev *event.PointerDown, st ScrollTarget) {
	c.lastTouch = ev.Point
	if c.gs.active && c.gs.captured {
		return // another finger, or a repeated delivery
	}
	c.gs = gestureSession{
		active: true,
		pid:    ev.PointerId,
		start:  ev.Point,
		last:   ev.Point,
	}
	c.gs.touchingScroll = targetContains(st, ev.Point)
	c.gs.ignore = !c.gs.touchingScroll && !ev.Point.In(c.Bounds())
	if c.gs.ignore {
		return
	}
	if c.settle != nil {
		// touch interrupts the animation at the current offset
		c.abortSettle()
	}
}

func (c *Controller) touchEnd(pid event.PointerId) {
	if !c.gs.active || pid != c.gs.pid {
		return
	}
	c.gs = gestureSession{}
	// a touch that interrupted a settle and never dragged
	if c.state == Dragging && !c.ns.moved && c.settle == nil {
		c.release(0)
	}
}

func (c *Controller) updateLock(p image.Point) {
	if c.gs.lock != lockNone {
		return
	}
	if !mousefilter.DetectMoveSlop(c.gs.start, p, c.cfg.TouchSlopPx()) {
		return
	}
	d := p.Sub(c.gs.start)
	if mathutil.Abs(c.axis.Along(d)) > mathutil.Abs(c.axis.Across(d)) {
		c.gs.lock = lockPrimary
	} else {
		c.gs.lock = lockOrthogonal
	}
}

func (c *Controller) canCapture(st ScrollTarget) bool {
	if c.state == Dragging && (c.gs.captured || c.ns.moved) {
		return false
	}
	if c.gs.touchingScroll {
		return false
	}
	// content scroll has priority while expanded
	if c.state == Expanded && targetContains(st, c.lastTouch) && canScroll(st, c.anchors.openDir()) {
		return false
	}
	return true
}

func (c *Controller) capture(p image.Point) {
	c.gs.captured = true
	c.gs.last = p
	c.settle = nil
	c.setStateInternal(Dragging)
}

func (c *Controller) dragTo(p image.Point) {
	d := c.axis.Along(p) - c.axis.Along(c.gs.last)
	c.gs.last = p
	if d == 0 {
		return
	}
	c.setOffset(c.anchors.Clamp(c.offset + d))
}

func (c *Controller) alongVelocity(v event.Velocity) float64 {
	if c.axis.Vertical() {
		return v.Y
	}
	return v.X
}
