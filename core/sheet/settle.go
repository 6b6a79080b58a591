package sheet

import (
	"math"
	"time"

	"github.com/jmigpin/sheet/util/mathutil"
)

// Settle animation towards an anchor. Positions use fixed point so that frame steps smaller than a pixel accumulate.
type settler struct {
	target State
	to     int
	pos    mathutil.Intf
	speed  float64 // px/s
}

func (s *settler) retarget(a *Anchors) {
	o, ok := a.Offset(s.target)
	if !ok {
		s.target = Collapsed
		o = a.Collapsed
	}
	s.to = o
}

func (s *settler) done() bool {
	return s.pos == mathutil.Intf1(s.to)
}

//----------

func (c *Controller) startSettle(target State, velocity float64) {
	s := &settler{target: target, pos: mathutil.Intf1(c.offset)}
	s.retarget(&c.anchors)
	s.speed = math.Max(math.Abs(velocity), c.cfg.SettleSpeedPx())
	Logf("settle: %v -> %v (%v) speed=%v", s.pos, s.target, s.to, s.speed)

	c.settle = s
	c.setStateInternal(Settling)
	if c.settle == s && s.done() {
		c.finishSettle()
	}
}

func (c *Controller) finishSettle() {
	s := c.settle
	c.settle = nil
	c.setStateInternal(s.target)
}

// Advances the settle animation by dt. Returns true while the panel is still settling.
func (c *Controller) Frame(dt time.Duration) bool {
	defer c.flushPending()
	s := c.settle
	if s == nil || !c.measured || c.detached {
		return s != nil
	}
	if dt > 0 {
		step := mathutil.Intf2(s.speed * dt.Seconds())
		s.pos = s.pos.Approach(mathutil.Intf1(s.to), step)
		Logf("settle frame: pos=%v step=%v", s.pos, step)
		c.setOffset(s.pos.Round())
	}
	if c.settle == s && s.done() {
		c.finishSettle()
	}
	return c.settle != nil
}

// Runs frames until the panel rests. Returns the number of frames used.
func (c *Controller) SettleAll(frame time.Duration, maxFrames int) int {
	n := 0
	for ; n < maxFrames && c.settle != nil; n++ {
		if !c.Frame(frame) {
			n++
			break
		}
	}
	return n
}

// Aborts an in-flight settle leaving the panel at the current offset, in the dragging state. Calling it when not settling does nothing.
func (c *Controller) CancelSettle() {
	defer c.flushPending()
	if c.settle == nil {
		return
	}
	c.abortSettle()
}

func (c *Controller) abortSettle() {
	Logf("settle aborted at %v", c.offset)
	c.settle = nil
	c.setStateInternal(Dragging)
}
