package replay

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jmigpin/sheet/core/sheet"
	"github.com/jmigpin/sheet/util/uiutil/event"
	"github.com/pkg/errors"
)

// Plays scripts against a controller, acting as the host view tree: pointer events are dispatched the way a parent view dispatches them to a panel with touchable children.
type Runner struct {
	Out   io.Writer     // transcript
	Frame time.Duration // frame duration used by "settle"

	axis   sheet.Axis
	cfg    sheet.Config
	ctrl   *sheet.Controller
	target *sheet.StaticScrollTarget
	click  image.Rectangle // touchable children that don't scroll
	owners map[event.PointerId]owner
	t0     time.Time
}

func NewRunner(out io.Writer, cfg sheet.Config) *Runner {
	return &Runner{
		Out:    out,
		Frame:  16 * time.Millisecond,
		axis:   sheet.Bottom,
		cfg:    cfg,
		owners: map[event.PointerId]owner{},
		t0:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Nil until a command needs the controller.
func (r *Runner) Controller() *sheet.Controller {
	return r.ctrl
}

func (r *Runner) Run(sc *Script) error {
	for _, cmd := range sc.Cmds {
		sheet.Logf("replay: %v", cmd.Args)
		fn := commands[cmd.Args[0]]
		if err := fn(r, cmd.Args[1:]); err != nil {
			return sc.error(cmd.Line, errors.Wrap(err, cmd.Args[0]))
		}
	}
	return nil
}

// Returns the transcript. On error, the transcript up to the failing command is also returned.
func RunScript(src []byte, filename string, cfg sheet.Config) ([]byte, error) {
	sc, err := ParseScript(src, filename)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	r := NewRunner(buf, cfg)
	err = r.Run(sc)
	return buf.Bytes(), err
}

//----------

func (r *Runner) printf(f string, a ...any) {
	fmt.Fprintf(r.Out, f+"\n", a...)
}

func (r *Runner) controller() (*sheet.Controller, error) {
	if r.ctrl != nil {
		return r.ctrl, nil
	}
	c, err := sheet.NewController(r.axis, r.cfg)
	if err != nil {
		return nil, err
	}
	c.OnSlide(func(offset int, fraction float64) {
		r.printf("slide %d %.3f", offset, fraction)
	})
	c.OnStateChanged(func(st sheet.State) {
		r.printf("state %v", st)
	})
	r.ctrl = c
	return c, nil
}

func (r *Runner) scrollTarget() sheet.ScrollTarget {
	if r.target == nil {
		return nil // avoid a non-nil interface holding a nil pointer
	}
	return r.target
}

//----------

type owner int

const (
	ownerNone owner = iota
	ownerChild
	ownerPanel
)

func (r *Runner) dispatch(ev any) {
	c, st := r.ctrl, r.scrollTarget()
	p, pid, ok := event.PointerInfo(ev)
	if !ok {
		return
	}

	if _, ok := ev.(*event.PointerDown); ok {
		if _, ok := r.owners[pid]; ok {
			return // repeated down
		}
		intercepted := c.InterceptTouch(ev, st)
		switch {
		case intercepted:
			r.printf("intercept true")
			r.owners[pid] = ownerPanel
			c.HandleTouch(ev, st)
		case r.childAt(p):
			r.owners[pid] = ownerChild
		case c.HandleTouch(ev, st) == event.Handled:
			r.owners[pid] = ownerPanel
		default:
			r.owners[pid] = ownerNone
		}
		return
	}

	switch r.owners[pid] {
	case ownerChild:
		if c.InterceptTouch(ev, st) {
			r.printf("intercept true")
			r.owners[pid] = ownerPanel
			c.HandleTouch(ev, st)
		}
	case ownerPanel:
		c.HandleTouch(ev, st)
	}

	switch ev.(type) {
	case *event.PointerUp, *event.PointerCancel:
		delete(r.owners, pid)
	}
}

// Reports whether a child view consumes a down at p.
func (r *Runner) childAt(p image.Point) bool {
	if r.target != nil && !r.target.IsDetached && r.target.Contains(p) {
		return true
	}
	return p.In(r.click)
}

//----------

type cmdFn func(r *Runner, args []string) error

var commands = map[string]cmdFn{
	"axis":         cmdAxis,
	"config":       cmdConfig,
	"measure":      cmdMeasure,
	"scroll":       cmdScroll,
	"clickable":    cmdClickable,
	"down":         pointerCmd("down"),
	"move":         pointerCmd("move"),
	"up":           pointerCmd("up"),
	"cancel":       pointerCmd("cancel"),
	"nstart":       cmdNestedStart,
	"nscroll":      cmdNestedScroll,
	"nfling":       cmdNestedFling,
	"nstop":        cmdNestedStop,
	"setstate":     cmdSetState,
	"draggable":    cmdDraggable,
	"frame":        cmdFrame,
	"settle":       cmdSettle,
	"cancelsettle": cmdCancelSettle,
	"decide":       cmdDecide,
	"fling":        cmdFling,
	"reach":        cmdReach,
	"print":        cmdPrint,
	"detach":       cmdDetach,
}

//----------

func cmdAxis(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 1); err != nil {
		return err
	}
	if r.ctrl != nil {
		return errors.New("controller already started")
	}
	a, ok := sheet.AxisByName(args[0])
	if !ok {
		return errors.Errorf("unknown axis: %v", args[0])
	}
	r.axis = a
	return nil
}

func cmdConfig(r *Runner, args []string) error {
	if r.ctrl != nil {
		return errors.New("controller already started")
	}
	floats := map[string]*float64{
		"peek":     &r.cfg.PeekDp,
		"dpi":      &r.cfg.DensityDPI,
		"ratio":    &r.cfg.HalfExpandedRatio,
		"slop":     &r.cfg.TouchSlopDp,
		"minfling": &r.cfg.MinFlingDp,
		"maxfling": &r.cfg.MaxFlingDp,
		"fraction": &r.cfg.FlingThresholdFraction,
		"speed":    &r.cfg.SettleSpeedDp,
	}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return errors.Errorf("expecting key=value: %q", a)
		}
		if p, ok := floats[k]; ok {
			f, err := parseFloat(v)
			if err != nil {
				return errors.Wrap(err, k)
			}
			*p = f
			continue
		}
		switch k {
		case "half":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrap(err, k)
			}
			r.cfg.HalfExpandedEnabled = b
		case "initial":
			st, err := sheet.ParseState(v)
			if err != nil {
				return err
			}
			r.cfg.InitialState = st
		default:
			return errors.Errorf("unknown key: %v", k)
		}
	}
	return nil
}

func cmdMeasure(r *Runner, args []string) error {
	if err := expectArgs(args, 2, 2); err != nil {
		return err
	}
	panel, err := parseSize(args[0])
	if err != nil {
		return err
	}
	container, err := parseSize(args[1])
	if err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	c.Measure(panel, container)
	return nil
}

// Panel content that scrolls: "scroll none" or "scroll <rect> [canup] [candown] [detached]".
func cmdScroll(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 4); err != nil {
		return err
	}
	if args[0] == "none" {
		r.target = nil
		return nil
	}
	rect, err := parseRect(args[0])
	if err != nil {
		return err
	}
	st := &sheet.StaticScrollTarget{Rect: rect}
	for _, a := range args[1:] {
		switch a {
		case "canup", "canstart":
			st.CanStart = true
		case "candown", "canend":
			st.CanEnd = true
		case "detached":
			st.IsDetached = true
		default:
			return errors.Errorf("unknown flag: %v", a)
		}
	}
	r.target = st
	return nil
}

// Non scrolling children that consume downs: "clickable none" or "clickable <rect>".
func cmdClickable(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 1); err != nil {
		return err
	}
	if args[0] == "none" {
		r.click = image.Rectangle{}
		return nil
	}
	rect, err := parseRect(args[0])
	if err != nil {
		return err
	}
	r.click = rect
	return nil
}

func pointerCmd(kind string) cmdFn {
	return func(r *Runner, args []string) error {
		if _, err := r.controller(); err != nil {
			return err
		}

		var p image.Point
		if kind != "cancel" {
			if len(args) == 0 {
				return errors.New("expecting point")
			}
			u, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			p = u
			args = args[1:]
		}

		pid := event.PointerId(1)
		var v event.Velocity
		var tm time.Time
		for _, a := range args {
			k, val, ok := strings.Cut(a, "=")
			if !ok {
				return errors.Errorf("expecting key=value: %q", a)
			}
			switch k {
			case "id":
				n, err := strconv.Atoi(val)
				if err != nil {
					return errors.Wrap(err, k)
				}
				pid = event.PointerId(n)
			case "t":
				ms, err := strconv.Atoi(val)
				if err != nil {
					return errors.Wrap(err, k)
				}
				tm = r.t0.Add(time.Duration(ms) * time.Millisecond)
			case "v":
				if kind != "up" {
					return errors.New("velocity is only valid on up")
				}
				u, err := parseFloats(val)
				if err != nil || len(u) != 2 {
					return errors.Errorf("bad velocity: %q", val)
				}
				v = event.Velocity{X: u[0], Y: u[1]}
			default:
				return errors.Errorf("unknown option: %v", k)
			}
		}

		var ev any
		switch kind {
		case "down":
			ev = &event.PointerDown{Point: p, PointerId: pid, Time: tm}
		case "move":
			ev = &event.PointerMove{Point: p, PointerId: pid, Time: tm}
		case "up":
			ev = &event.PointerUp{Point: p, PointerId: pid, Time: tm, Velocity: v}
		case "cancel":
			ev = &event.PointerCancel{PointerId: pid}
		}
		r.dispatch(ev)
		return nil
	}
}

//----------

func cmdNestedStart(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 2); err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	var axes sheet.ScrollAxes
	for _, a := range args {
		switch a {
		case "vertical":
			axes |= sheet.ScrollVertical
		case "horizontal":
			axes |= sheet.ScrollHorizontal
		default:
			return errors.Errorf("unknown scroll axis: %v", a)
		}
	}
	r.printf("nested %v", c.StartNestedScroll(axes))
	return nil
}

func cmdNestedScroll(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 1); err != nil {
		return err
	}
	d, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	delta := image.Pt(d, 0)
	if r.axis.Vertical() {
		delta = image.Pt(0, d)
	}
	consumed := c.PreScroll(delta, r.scrollTarget())
	r.printf("consumed %d", r.axis.Along(consumed))
	return nil
}

func cmdNestedFling(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 1); err != nil {
		return err
	}
	v, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	vel := event.Velocity{X: v}
	if r.axis.Vertical() {
		vel = event.Velocity{Y: v}
	}
	r.printf("prefling %v", c.PreFling(vel))
	return nil
}

func cmdNestedStop(r *Runner, args []string) error {
	if err := expectArgs(args, 0, 0); err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	c.StopNestedScroll()
	return nil
}

//----------

func cmdSetState(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 2); err != nil {
		return err
	}
	st, err := sheet.ParseState(args[0])
	if err != nil {
		return err
	}
	animate := true
	if len(args) == 2 {
		if args[1] != "noanim" {
			return errors.Errorf("unknown flag: %v", args[1])
		}
		animate = false
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	if err := c.SetState(st, animate); err != nil {
		r.printf("error %v", err)
	}
	return nil
}

func cmdDraggable(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 1); err != nil {
		return err
	}
	b, err := strconv.ParseBool(args[0])
	if err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	c.SetDraggable(b)
	return nil
}

func cmdFrame(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 2); err != nil {
		return err
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	n := 1
	if len(args) == 2 {
		n, err = strconv.Atoi(args[1])
		if err != nil {
			return err
		}
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		c.Frame(time.Duration(ms) * time.Millisecond)
	}
	return nil
}

func cmdSettle(r *Runner, args []string) error {
	if err := expectArgs(args, 0, 0); err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	c.SettleAll(r.Frame, 10000)
	if c.Settling() {
		return errors.New("settle did not finish")
	}
	return nil
}

func cmdCancelSettle(r *Runner, args []string) error {
	if err := expectArgs(args, 0, 0); err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	c.CancelSettle()
	return nil
}

func cmdDecide(r *Runner, args []string) error {
	if err := expectArgs(args, 2, 2); err != nil {
		return err
	}
	o, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	v, err := parseFloat(args[1])
	if err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	if _, ok := c.Anchors(); !ok {
		return errors.New("not measured")
	}
	r.printf("decide %v", c.DecideSettleTarget(o, v))
	return nil
}

func cmdFling(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 1); err != nil {
		return err
	}
	v, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	m := c.FlingModel()
	r.printf("fling %.1f %v", m.Distance(v), m.Duration(v).Round(time.Millisecond))
	return nil
}

func cmdReach(r *Runner, args []string) error {
	if err := expectArgs(args, 1, 1); err != nil {
		return err
	}
	v, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	r.printf("reach %v", c.FlingReachesAnchor(v))
	return nil
}

func cmdPrint(r *Runner, args []string) error {
	if err := expectArgs(args, 0, 0); err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	r.printf("print %v %d %.3f", c.State(), c.Offset(), c.SlideFraction())
	return nil
}

func cmdDetach(r *Runner, args []string) error {
	if err := expectArgs(args, 0, 0); err != nil {
		return err
	}
	c, err := r.controller()
	if err != nil {
		return err
	}
	c.Detach()
	return nil
}
