package sheet

import (
	"image"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmigpin/sheet/util/mathutil"
	"github.com/jmigpin/sheet/util/uiutil/event"
)

func TestNestedScrollSequence(t *testing.T) {
	c, rec := newBottom(t, nil)
	st := bottomContent()
	if !c.StartNestedScroll(ScrollVertical) {
		t.Fatal("nested scroll rejected")
	}

	type in struct {
		delta    int
		canStart bool
		consumed int
		offset   int
	}
	w := []in{
		{30, false, 30, 70},   // opening
		{100, false, 70, 0},   // clamped at expanded, content gets the rest
		{40, false, 0, 0},     // fully expanded
		{-20, true, 0, 0},     // content scrolls back first
		{-20, false, -20, 20}, // content at its start: panel closes
	}
	for i, u := range w {
		st.CanStart = u.canStart
		got := c.PreScroll(image.Pt(0, u.delta), st)
		if got != image.Pt(0, u.consumed) || c.Offset() != u.offset {
			t.Fatalf("%v: consumed=%v\n%v", i, got, spew.Sdump(c.Snapshot()))
		}
		// never consumes more than requested
		if mathutil.Abs(got.Y) > mathutil.Abs(u.delta) || got.Y*u.delta < 0 {
			t.Fatalf("%v: consumed=%v", i, got)
		}
	}
	if c.State() != Dragging {
		t.Fatal(c.State())
	}

	// last delta was closing
	c.StopNestedScroll()
	runSettle(t, c)
	if c.State() != Collapsed || c.Offset() != 100 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	checkStates(t, rec, Dragging, Settling, Collapsed)
	checkSlides(t, rec, 70, 0, 20, 44, 68, 92, 100)
}

func TestNestedStopNearest(t *testing.T) {
	c, _ := newBottom(t, nil)
	c.StartNestedScroll(ScrollVertical)
	c.PreScroll(image.Pt(0, 30), nil)
	c.PreScroll(image.Pt(0, 0), nil)
	c.StopNestedScroll()
	runSettle(t, c)
	if c.State() != Collapsed {
		t.Fatal(c.State())
	}
}

func TestNestedClosingAtCollapsed(t *testing.T) {
	c, rec := newBottom(t, nil)
	c.StartNestedScroll(ScrollVertical)
	if got := c.PreScroll(image.Pt(0, -20), nil); got != (image.Point{}) {
		t.Fatal(got)
	}
	c.StopNestedScroll()
	if c.State() != Collapsed || len(rec.states) != 0 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
}

func TestNestedWrongAxis(t *testing.T) {
	c, _ := newBottom(t, nil)
	if c.StartNestedScroll(ScrollHorizontal) {
		t.Fatal("accepted horizontal scroll")
	}
	if got := c.PreScroll(image.Pt(30, 30), nil); got != (image.Point{}) {
		t.Fatal(got)
	}
	if !c.StartNestedScroll(ScrollVertical | ScrollHorizontal) {
		t.Fatal("rejected vertical scroll")
	}
}

func TestNestedRightAxis(t *testing.T) {
	c, _ := newTestController(t, Right, nil)
	c.Measure(image.Pt(300, 800), image.Pt(1000, 800))
	if !c.StartNestedScroll(ScrollHorizontal) {
		t.Fatal("nested scroll rejected")
	}
	if got := c.PreScroll(image.Pt(30, 5), nil); got != image.Pt(30, 0) {
		t.Fatal(got)
	}
	if c.Offset() != 770 {
		t.Fatal(c.Offset())
	}
}

//----------

func TestPreFling(t *testing.T) {
	c, rec := newBottom(t, nil)
	c.StartNestedScroll(ScrollVertical)
	c.PreScroll(image.Pt(0, 30), nil)
	if !c.PreFling(event.Velocity{Y: 3000}) {
		t.Fatal("fling not consumed")
	}
	if c.State() != Settling {
		t.Fatal(c.State())
	}
	c.StopNestedScroll() // fling already settles
	runSettle(t, c)
	if c.State() != Expanded || c.Offset() != 0 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	checkStates(t, rec, Dragging, Settling, Expanded)
	// 3000px/s at 16ms frames
	checkSlides(t, rec, 70, 22, 0)
}

func TestPreFlingNotConsumed(t *testing.T) {
	c, _ := newBottom(t, nil)
	c.StartNestedScroll(ScrollVertical)
	// not dragging
	if c.PreFling(event.Velocity{Y: 3000}) {
		t.Fatal("consumed fling while collapsed")
	}
	c.PreScroll(image.Pt(0, 200), nil)
	if c.Offset() != 0 || c.State() != Dragging {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	// already at the anchor: the content takes the fling
	if c.PreFling(event.Velocity{Y: 3000}) {
		t.Fatal("consumed fling at expanded")
	}
	if c.PreFling(event.Velocity{}) {
		t.Fatal("consumed zero fling")
	}
	c.StopNestedScroll()
	runSettle(t, c)
	if c.State() != Expanded {
		t.Fatal(c.State())
	}
}

func TestNestedDoesNotReleaseOnTouchEnd(t *testing.T) {
	c, _ := newBottom(t, nil)
	st := bottomContent()
	c.InterceptTouch(down(200, 700), st)
	c.StartNestedScroll(ScrollVertical)
	c.PreScroll(image.Pt(0, 30), st)
	// the content sees the up before the nested scroll stops
	c.InterceptTouch(up(200, 670, 0, 0), st)
	if c.State() != Dragging || c.Offset() != 70 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	c.StopNestedScroll()
	runSettle(t, c)
	if c.State() != Expanded {
		t.Fatal(c.State())
	}
}

func TestNestedClosingDetachedContent(t *testing.T) {
	c, rec := newBottom(t, nil)
	c.SetState(Expanded, false)
	st := &StaticScrollTarget{Rect: image.Rect(0, 500, 400, 1000), CanStart: true}
	c.StartNestedScroll(ScrollVertical)
	if got := c.PreScroll(image.Pt(0, -20), st); got != (image.Point{}) {
		t.Fatal(got)
	}
	// detached content has no scroll range left: the panel closes
	st.IsDetached = true
	if got := c.PreScroll(image.Pt(0, -20), st); got != image.Pt(0, -20) {
		t.Fatal(got)
	}
	if c.State() != Dragging || c.Offset() != 20 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	c.StopNestedScroll()
	runSettle(t, c)
	if c.State() != Collapsed {
		t.Fatal(c.State())
	}
	checkStates(t, rec, Expanded, Dragging, Settling, Collapsed)
}

func TestNestedTopAxis(t *testing.T) {
	c, rec := newTestController(t, Top, nil)
	c.Measure(image.Pt(400, 300), image.Pt(400, 1000))
	st := &StaticScrollTarget{Rect: image.Rect(0, 0, 400, 300)}
	if !c.StartNestedScroll(ScrollVertical) {
		t.Fatal("nested scroll rejected")
	}
	// opening moves the offset up towards 0
	if got := c.PreScroll(image.Pt(0, -30), st); got != image.Pt(0, -30) {
		t.Fatal(got)
	}
	if got := c.PreScroll(image.Pt(0, -100), st); got != image.Pt(0, -70) {
		t.Fatal(got)
	}
	if c.Offset() != 0 {
		t.Fatal(c.Offset())
	}

	// closing waits for the content to reach its end
	st.CanEnd = true
	if got := c.PreScroll(image.Pt(0, 20), st); got != (image.Point{}) {
		t.Fatal(got)
	}
	st.IsDetached = true
	if got := c.PreScroll(image.Pt(0, 20), st); got != image.Pt(0, 20) {
		t.Fatal(got)
	}
	if c.Offset() != -20 || c.State() != Dragging {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	c.StopNestedScroll()
	runSettle(t, c)
	if c.State() != Collapsed || c.Offset() != -100 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	checkStates(t, rec, Dragging, Settling, Collapsed)
	checkSlides(t, rec, -70, 0, -20, -44, -68, -92, -100)
}

func TestSetDraggableDuringNestedScroll(t *testing.T) {
	c, _ := newBottom(t, nil)
	c.StartNestedScroll(ScrollVertical)
	c.PreScroll(image.Pt(0, 30), nil)
	c.SetDraggable(false)
	if c.State() != Settling {
		t.Fatal(c.State())
	}
	// settles by position, the stop no longer applies
	c.StopNestedScroll()
	runSettle(t, c)
	if c.State() != Collapsed || c.Offset() != 100 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
}
