package sheet

import (
	"image"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmigpin/sheet/util/uiutil/event"
)

// collapsed bottom panel spans y=500..1100; content below the header
func bottomContent() *StaticScrollTarget {
	return &StaticScrollTarget{Rect: image.Rect(0, 600, 400, 1100)}
}

func TestInterceptOpening(t *testing.T) {
	c, rec := newBottom(t, nil)
	st := bottomContent()
	if c.InterceptTouch(down(200, 520), st) {
		t.Fatal("intercepted down")
	}
	if c.InterceptTouch(move(200, 516), st) {
		t.Fatal("intercepted within slop")
	}
	if !c.InterceptTouch(move(200, 500), st) {
		t.Fatal("expecting intercept")
	}
	// host redirects the stream
	if h := c.HandleTouch(move(200, 500), st); h != event.Handled {
		t.Fatal(h)
	}
	c.HandleTouch(move(200, 470), st)
	if c.State() != Dragging || c.Offset() != 70 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	if p := c.LastTouchPosition(); p != image.Pt(200, 470) {
		t.Fatal(p)
	}
	checkStates(t, rec, Dragging)
}

func TestInterceptClosing(t *testing.T) {
	c, _ := newBottom(t, nil)
	c.SetState(Expanded, false)
	// expanded panel spans y=400..1000
	st := &StaticScrollTarget{Rect: image.Rect(0, 500, 400, 1000)}
	c.InterceptTouch(down(200, 420), st)
	if c.InterceptTouch(move(200, 440), st) {
		t.Fatal("intercepted a closing drag")
	}
	if c.State() != Expanded {
		t.Fatal(c.State())
	}
}

func TestInterceptOrthogonal(t *testing.T) {
	c, _ := newBottom(t, nil)
	st := bottomContent()
	c.InterceptTouch(down(200, 520), st)
	if c.InterceptTouch(move(230, 522), st) {
		t.Fatal("intercepted orthogonal move")
	}
	// lock is kept for the rest of the stream
	if c.InterceptTouch(move(200, 400), st) {
		t.Fatal("intercepted after orthogonal lock")
	}
	if h := c.HandleTouch(move(200, 380), st); h != event.NotHandled {
		t.Fatal(h)
	}
	if c.State() != Collapsed || c.Offset() != 100 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
}

func TestInterceptContentTouch(t *testing.T) {
	c, _ := newBottom(t, nil)
	st := bottomContent()
	c.InterceptTouch(down(200, 700), st)
	if c.InterceptTouch(move(200, 650), st) {
		t.Fatal("intercepted a touch on scroll content")
	}
	// a detached target no longer owns the touch
	st.IsDetached = true
	c.InterceptTouch(down(200, 700), st)
	if !c.InterceptTouch(move(200, 650), st) {
		t.Fatal("expecting intercept")
	}
}

func TestInterceptOutsidePanel(t *testing.T) {
	c, _ := newBottom(t, nil)
	if c.InterceptTouch(down(200, 300), nil) {
		t.Fatal("intercepted down")
	}
	if c.InterceptTouch(move(200, 200), nil) {
		t.Fatal("intercepted outside the panel")
	}
	if h := c.HandleTouch(down(200, 300), nil); h != event.NotHandled {
		t.Fatal(h)
	}
	if h := c.HandleTouch(move(200, 200), nil); h != event.NotHandled {
		t.Fatal(h)
	}
}

func TestCaptureExpandedContentPriority(t *testing.T) {
	c, _ := newBottom(t, nil)
	c.SetState(Expanded, false)
	st := &StaticScrollTarget{Rect: image.Rect(0, 450, 400, 1000), CanStart: true}

	c.HandleTouch(down(200, 420), st)
	if h := c.HandleTouch(move(200, 470), st); h != event.NotHandled {
		t.Fatal("captured while content can scroll back")
	}
	c.HandleTouch(up(200, 470, 0, 0), st)

	st.CanStart = false
	c.HandleTouch(down(200, 420), st)
	if h := c.HandleTouch(move(200, 470), st); h != event.Handled {
		t.Fatal("expecting capture")
	}
	c.HandleTouch(move(200, 480), st)
	if c.State() != Dragging || c.Offset() != 10 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
}

func TestCaptureExpandedDetachedContent(t *testing.T) {
	c, _ := newBottom(t, nil)
	c.SetState(Expanded, false)
	// detached content has no scroll range left
	st := &StaticScrollTarget{Rect: image.Rect(0, 450, 400, 1000), CanStart: true, IsDetached: true}
	c.HandleTouch(down(200, 420), st)
	if h := c.HandleTouch(move(200, 470), st); h != event.Handled {
		t.Fatal("expecting capture")
	}
	c.HandleTouch(move(200, 480), st)
	if c.State() != Dragging || c.Offset() != 10 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
}

//----------

func TestStalePointer(t *testing.T) {
	c, _ := newBottom(t, nil)
	dragTo40(t, c)

	// second finger does not take over the captured session
	c.HandleTouch(withPointer(2, down(200, 800)), nil)
	c.HandleTouch(withPointer(2, move(200, 700)), nil)
	if h := c.HandleTouch(withPointer(2, up(200, 700, 0, 0)), nil); h != event.NotHandled {
		t.Fatal(h)
	}
	if c.State() != Dragging || c.Offset() != 40 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}

	c.HandleTouch(move(200, 470), nil)
	if c.Offset() != 30 {
		t.Fatal(c.Offset())
	}
	c.HandleTouch(up(200, 470, 0, 0), nil)
	runSettle(t, c)
	if c.State() != Expanded {
		t.Fatal(c.State())
	}
}

func TestCancelReleases(t *testing.T) {
	c, rec := newBottom(t, nil)
	dragTo40(t, c)
	if h := c.HandleTouch(&event.PointerCancel{PointerId: 1}, nil); h != event.Handled {
		t.Fatal(h)
	}
	runSettle(t, c)
	if c.State() != Expanded {
		t.Fatal(c.State())
	}
	checkStates(t, rec, Dragging, Settling, Expanded)
}

func TestInertDuringDrag(t *testing.T) {
	c, rec := newBottom(t, nil)
	dragTo40(t, c)
	c.Measure(image.Pt(400, 0), image.Pt(400, 1000))
	if h := c.HandleTouch(up(200, 480, 0, 0), nil); h != event.NotHandled {
		t.Fatal(h)
	}
	if c.State() != Dragging || c.Offset() != 40 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}

	// valid layout again: the dropped drag settles by position
	c.Measure(image.Pt(400, 600), image.Pt(400, 1000))
	if c.State() != Settling {
		t.Fatal(c.State())
	}
	runSettle(t, c)
	if c.State() != Expanded || c.Offset() != 0 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}

	// a new finger drags the panel
	c.HandleTouch(withPointer(7, down(200, 420)), nil)
	if h := c.HandleTouch(withPointer(7, move(200, 440)), nil); h != event.Handled {
		t.Fatal("move not captured")
	}
	c.HandleTouch(withPointer(7, move(200, 520)), nil)
	if c.State() != Dragging || c.Offset() != 80 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	c.HandleTouch(withPointer(7, up(200, 520, 0, 0)), nil)
	runSettle(t, c)
	if c.State() != Collapsed || c.Offset() != 100 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	checkStates(t, rec, Dragging, Settling, Expanded, Dragging, Settling, Collapsed)
}

func TestDragClamped(t *testing.T) {
	c, _ := newBottom(t, nil)
	dragTo40(t, c)
	c.HandleTouch(move(200, 100), nil)
	if c.Offset() != 0 {
		t.Fatal(c.Offset())
	}
	c.HandleTouch(move(200, 900), nil)
	if c.Offset() != 100 {
		t.Fatal(c.Offset())
	}
}

func TestSetDraggable(t *testing.T) {
	c, _ := newBottom(t, nil)
	dragTo40(t, c)
	c.SetDraggable(false)
	if c.State() != Settling {
		t.Fatal(c.State())
	}
	runSettle(t, c)
	if c.State() != Expanded {
		t.Fatal(c.State())
	}
	if h := c.HandleTouch(down(200, 420), nil); h != event.NotHandled {
		t.Fatal(h)
	}
	if c.InterceptTouch(move(200, 300), nil) {
		t.Fatal("intercepted while not draggable")
	}
	// programmatic changes still apply
	if err := c.SetState(Collapsed, false); err != nil || c.Offset() != 100 {
		t.Fatal(err, c.Offset())
	}
}

func TestSetStateDuringDrag(t *testing.T) {
	c, _ := newBottom(t, nil)
	dragTo40(t, c)
	c.SetState(Collapsed, false)
	// the rest of the stream is ignored
	if h := c.HandleTouch(move(200, 400), nil); h != event.NotHandled {
		t.Fatal(h)
	}
	c.HandleTouch(up(200, 400, 0, 0), nil)
	if c.State() != Collapsed || c.Offset() != 100 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
}

//----------

func TestRightAxisDrag(t *testing.T) {
	c, rec := newTestController(t, Right, nil)
	c.Measure(image.Pt(300, 800), image.Pt(1000, 800))
	// collapsed panel spans x=800..1100
	c.HandleTouch(down(820, 400), nil)
	c.HandleTouch(move(800, 400), nil)
	c.HandleTouch(move(730, 400), nil)
	if c.State() != Dragging || c.Offset() != 730 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	c.HandleTouch(up(730, 400, -3000, 0), nil)
	if n := c.SettleAll(frame, 100); n != 1 {
		t.Fatal(n)
	}
	if c.State() != Expanded || c.Offset() != 700 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	checkSlides(t, rec, 730, 700)
}

func TestTopAxisDrag(t *testing.T) {
	c, _ := newTestController(t, Top, nil)
	c.Measure(image.Pt(400, 300), image.Pt(400, 1000))
	// collapsed panel spans y=-100..200
	c.HandleTouch(down(200, 150), nil)
	c.HandleTouch(move(200, 170), nil)
	c.HandleTouch(move(200, 230), nil)
	if c.Offset() != -40 || c.SlideFraction() != 0.6 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
	c.HandleTouch(up(200, 230, 0, 0), nil)
	runSettle(t, c)
	if c.State() != Expanded || c.Offset() != 0 {
		t.Fatal(spew.Sdump(c.Snapshot()))
	}
}
