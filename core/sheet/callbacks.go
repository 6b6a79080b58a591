package sheet

import "github.com/jmigpin/sheet/util/evreg"

const (
	evIdSlide = iota
	evIdStateChanged
)

type SlideEvent struct {
	Offset   int
	Fraction float64
}

type StateEvent struct {
	State State
}

//----------

// Called on every offset change. Fraction is 0 at collapsed and 1 at expanded.
func (c *Controller) OnSlide(fn func(offset int, fraction float64)) *evreg.Regist {
	r := c.reg.Add(evIdSlide, func(ev any) {
		e := ev.(*SlideEvent)
		fn(e.Offset, e.Fraction)
	})
	c.unr.Add(r)
	return r
}

func (c *Controller) OnStateChanged(fn func(State)) *evreg.Regist {
	r := c.reg.Add(evIdStateChanged, func(ev any) {
		fn(ev.(*StateEvent).State)
	})
	c.unr.Add(r)
	return r
}

//----------

func (c *Controller) dispatchSlide() {
	ev := &SlideEvent{Offset: c.offset, Fraction: c.SlideFraction()}
	c.reg.RunCallbacks(evIdSlide, ev)
}

func (c *Controller) dispatchState() {
	c.reg.RunCallbacks(evIdStateChanged, &StateEvent{State: c.state})
}

//----------

const maxPendingRuns = 16

// Applies state requests made from inside callbacks.
func (c *Controller) flushPending() {
	for i := 0; c.pending != nil && !c.reg.Dispatching(); i++ {
		p := c.pending
		c.pending = nil
		if i >= maxPendingRuns {
			Logf("dropping state request: %v", p.st)
			return
		}
		c.setState(p.st, p.animate)
	}
}
