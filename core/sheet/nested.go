package sheet

import (
	"image"

	"github.com/jmigpin/sheet/util/mathutil"
	"github.com/jmigpin/sheet/util/uiutil/event"
)

// Nested scroll session, from StartNestedScroll to StopNestedScroll.
type nestedSession struct {
	active bool
	moved  bool // panel moved by nested scroll deltas
	flung  bool
	last   int // sign of the last requested delta
}

// Content deltas are scroll amounts: positive scrolls the content towards its end. When the panel absorbs a delta d its offset moves by -d.

func (c *Controller) StartNestedScroll(axes ScrollAxes) bool {
	defer c.flushPending()
	if !c.acceptsTouch() {
		return false
	}
	want := ScrollHorizontal
	if c.axis.Vertical() {
		want = ScrollVertical
	}
	if !axes.Has(want) {
		return false
	}
	c.ns = nestedSession{active: true}
	return true
}

// Returns how much of delta the panel absorbs before the content scrolls. The content consumes the remainder.
func (c *Controller) PreScroll(delta image.Point, st ScrollTarget) (consumed image.Point) {
	defer c.flushPending()
	if !c.ns.active || !c.acceptsTouch() {
		return
	}
	d := c.axis.Along(delta)
	c.ns.last = mathutil.Sign(d)
	if d == 0 {
		return
	}
	if c.gs.captured {
		return // the touch drag owns the panel
	}

	move := -d
	if mathutil.Sign(move) != c.anchors.openDir() {
		// closing: only once the content can't scroll further back
		if canScroll(st, mathutil.Sign(d)) || c.offset == c.anchors.Collapsed {
			return
		}
	}
	target := c.anchors.Clamp(c.offset + move)
	used := c.offset - target
	if used == 0 {
		return
	}

	c.ns.moved = true
	c.settle = nil
	c.setStateInternal(Dragging)
	c.setOffset(target)

	if c.axis.Vertical() {
		return image.Point{0, used}
	}
	return image.Point{used, 0}
}

func (c *Controller) StopNestedScroll() {
	defer c.flushPending()
	ns := c.ns
	c.ns = nestedSession{}
	if !ns.active || ns.flung || !ns.moved {
		return
	}
	if c.state != Dragging || c.gs.captured || !c.measured {
		return
	}
	var target State
	if ns.last == 0 {
		target = c.anchors.Nearest(c.offset)
	} else {
		target = c.anchors.Next(c.offset, -ns.last)
	}
	Logf("nested stop: last=%v -> %v", ns.last, target)
	c.startSettle(target, 0)
}

// Content fling velocity (positive scrolls the content towards its end). Returns true if the panel consumed the fling by settling towards an anchor it has not reached.
func (c *Controller) PreFling(velocity event.Velocity) bool {
	defer c.flushPending()
	if !c.acceptsTouch() || c.state != Dragging || c.gs.captured {
		return false
	}
	v := -c.alongVelocity(velocity)
	dir := mathutil.Sign(v)
	if dir == 0 {
		return false
	}
	target := c.anchors.Next(c.offset, dir)
	o, _ := c.anchors.Offset(target)
	if (o-c.offset)*dir <= 0 {
		return false // already there
	}
	c.ns.flung = true
	Logf("nested fling: v=%v -> %v", v, target)
	c.startSettle(target, v)
	return true
}
