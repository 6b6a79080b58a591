// Package sheet implements draggable panel controllers: a gesture driven state machine for panels that slide from a container edge, cooperating with scrollable content nested inside the panel.
//
// All methods must be called from the same goroutine (the UI thread). Settle animations advance only when the host calls Frame.
package sheet

import (
	"image"
	"math"

	"github.com/jmigpin/sheet/core/fling"
	"github.com/jmigpin/sheet/util/evreg"
	"github.com/jmigpin/sheet/util/mathutil"
	"github.com/jmigpin/sheet/util/uiutil/mousefilter"
	"github.com/pkg/errors"
)

type Controller struct {
	axis Axis
	cfg  Config

	state     State
	offset    int
	draggable bool

	measured  bool
	panel     image.Point
	container image.Point
	anchors   Anchors

	gs     gestureSession
	ns     nestedSession
	settle *settler
	vt     *mousefilter.VelocityTracker
	fling  *fling.Model

	reg     evreg.Register
	unr     evreg.Unregister
	pending *stateRequest

	lastTouch image.Point
	detached  bool
	dropped   bool // dragging session dropped while inert
}

func NewController(axis Axis, cfg Config) (*Controller, error) {
	if axis == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "missing axis")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		axis:      axis,
		cfg:       cfg,
		state:     cfg.InitialState,
		draggable: cfg.Draggable,
		vt:        mousefilter.NewVelocityTracker(),
		fling:     fling.New(cfg.DensityDPI),
	}
	if cfg.InitialState == HalfExpanded && !c.halfEnabled() {
		return nil, errors.Wrapf(ErrStateUnsupported, "initial state %v on %v axis", cfg.InitialState, axis)
	}
	return c, nil
}

//----------

func (c *Controller) Axis() Axis { return c.axis }
func (c *Controller) Config() Config { return c.cfg }
func (c *Controller) State() State { return c.state }
func (c *Controller) Offset() int { return c.offset }
func (c *Controller) Measured() bool { return c.measured }
func (c *Controller) Draggable() bool { return c.draggable }
func (c *Controller) Settling() bool { return c.settle != nil }
func (c *Controller) Detached() bool { return c.detached }
func (c *Controller) FlingModel() *fling.Model {
	return c.fling
}

// Anchors are valid only after a valid measure.
func (c *Controller) Anchors() (Anchors, bool) {
	return c.anchors, c.measured
}

// Slide fraction of the current offset: 0 at collapsed, 1 at expanded.
func (c *Controller) SlideFraction() float64 {
	if !c.measured {
		if c.state == Expanded {
			return 1
		}
		return 0
	}
	return c.anchors.Fraction(c.offset)
}

func (c *Controller) LastTouchPosition() image.Point {
	return c.lastTouch
}

// Panel rectangle in container coordinates.
func (c *Controller) Bounds() image.Rectangle {
	if !c.measured {
		return image.Rectangle{}
	}
	return c.axis.Bounds(c.offset, c.panel, c.container)
}

func (c *Controller) halfEnabled() bool {
	return c.cfg.HalfExpandedEnabled && c.axis.SupportsHalf()
}

//----------

// Called on every layout pass. Non positive extents along the drag axis leave the controller inert until a valid measure arrives.
func (c *Controller) Measure(panel, container image.Point) {
	defer c.flushPending()
	if c.detached {
		return
	}
	pe, ce := c.axis.Along(panel), c.axis.Along(container)
	if pe <= 0 || ce <= 0 {
		Logf("deferring anchors: panel=%v container=%v", panel, container)
		c.measured = false
		// the rest of the gesture can't be delivered while inert
		if c.gs.active || c.ns.active {
			c.gs = gestureSession{}
			c.ns = nestedSession{}
			c.dropped = c.state == Dragging && c.settle == nil
		}
		return
	}
	c.panel, c.container = panel, container
	c.anchors = ComputeAnchors(c.axis, pe, ce, c.cfg.PeekPx(), c.halfEnabled(), c.cfg.HalfExpandedRatio)
	c.measured = true
	dropped := c.dropped
	c.dropped = false

	switch {
	case c.state.Stable():
		o, ok := c.anchors.Offset(c.state)
		if !ok {
			o = c.anchors.Collapsed
		}
		c.offset = o
	case c.settle != nil:
		c.settle.retarget(&c.anchors)
		c.offset = c.anchors.Clamp(c.offset)
		c.settle.pos = mathutil.Intf1(c.offset)
	case dropped && c.state == Dragging:
		c.offset = c.anchors.Clamp(c.offset)
		c.release(0)
	default:
		c.offset = c.anchors.Clamp(c.offset)
	}
}

//----------

type stateRequest struct {
	st      State
	animate bool
}

// Requests a stable state. Calls made from inside a callback are applied after the callbacks return.
func (c *Controller) SetState(target State, animate bool) error {
	if !target.Stable() {
		return errors.Wrapf(ErrInvalidState, "set state %v", target)
	}
	if target == HalfExpanded && !c.halfEnabled() {
		return errors.Wrapf(ErrStateUnsupported, "%v on %v axis", target, c.axis)
	}
	if c.detached {
		return nil
	}
	if c.reg.Dispatching() {
		c.pending = &stateRequest{target, animate}
		return nil
	}
	c.setState(target, animate)
	c.flushPending()
	return nil
}

func (c *Controller) setState(target State, animate bool) {
	if c.state == target && c.settle == nil {
		return // already resting there
	}
	// an external request takes the panel from the current gesture
	if c.gs.captured {
		c.gs.captured = false
		c.gs.ignore = true
	}
	c.ns.moved = false

	if !c.measured {
		c.settle = nil
		c.setStateInternal(target)
		return
	}
	if animate {
		c.startSettle(target, 0)
		return
	}
	c.settle = nil
	o, _ := c.anchors.Offset(target)
	c.setOffset(o)
	c.setStateInternal(target)
}

func (c *Controller) SetDraggable(v bool) {
	defer c.flushPending()
	c.draggable = v
	if v {
		return
	}
	// the end of the gesture won't be delivered
	c.gs = gestureSession{}
	c.ns = nestedSession{}
	if c.state == Dragging && c.settle == nil {
		c.release(0)
	}
}

//----------

// Settle target for a release at offset with velocity (px/s along the drag axis, same sign convention as offsets). Slow releases go to the nearest anchor (ties towards expanded); fast releases go to the next anchor in the velocity direction regardless of the position.
func (c *Controller) DecideSettleTarget(offset int, velocity float64) State {
	if math.Abs(velocity) < c.cfg.FlingThresholdPx() {
		return c.anchors.Nearest(offset)
	}
	return c.anchors.Next(offset, mathutil.Sign(velocity))
}

// Reports whether a natural fling with velocity v (offset units) would carry the panel to the next anchor in its direction.
func (c *Controller) FlingReachesAnchor(v float64) bool {
	if !c.measured || v == 0 {
		return false
	}
	st := c.anchors.Next(c.offset, mathutil.Sign(v))
	o, _ := c.anchors.Offset(st)
	d := o - c.offset
	if mathutil.Sign(d) != mathutil.Sign(v) {
		return false
	}
	return c.fling.Exceeds(v, float64(d))
}

func (c *Controller) release(v float64) {
	if !c.measured {
		return
	}
	target := c.DecideSettleTarget(c.offset, v)
	Logf("release: offset=%v v=%v -> %v", c.offset, v, target)
	Dump(c.Snapshot())
	c.startSettle(target, v)
}

//----------

func (c *Controller) setOffset(o int) {
	if o == c.offset {
		return
	}
	c.offset = o
	c.dispatchSlide()
}

func (c *Controller) setStateInternal(st State) {
	if st == c.state {
		return
	}
	Logf("state: %v -> %v", c.state, st)
	c.state = st
	c.dispatchState()
}

//----------

// Unregisters all callbacks and stops reacting to input.
func (c *Controller) Detach() {
	c.unr.UnregisterAll()
	c.settle = nil
	c.pending = nil
	c.gs = gestureSession{}
	c.ns = nestedSession{}
	c.detached = true
}

//----------

type Snapshot struct {
	Axis      string
	State     State
	Offset    int
	Fraction  float64
	Measured  bool
	Anchors   Anchors
	Draggable bool
	Settling  bool
	LastTouch image.Point
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Axis:      c.axis.String(),
		State:     c.state,
		Offset:    c.offset,
		Fraction:  c.SlideFraction(),
		Measured:  c.measured,
		Anchors:   c.anchors,
		Draggable: c.draggable,
		Settling:  c.settle != nil,
		LastTouch: c.lastTouch,
	}
}
