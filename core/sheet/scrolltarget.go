package sheet

import "image"

// Content scrolling inside the panel. Passed per call; the controller never keeps it.
type ScrollTarget interface {
	// Reports whether the content can scroll towards its start (dir<0) or its end (dir>0).
	CanScroll(dir int) bool
	Contains(p image.Point) bool
}

// Optionally implemented by a ScrollTarget that can be detached from the view tree.
type Detacher interface {
	Detached() bool
}

// Returns nil if the target is missing or detached; callers treat nil as content with no scroll range.
func liveTarget(st ScrollTarget) ScrollTarget {
	if st == nil {
		return nil
	}
	if d, ok := st.(Detacher); ok && d.Detached() {
		return nil
	}
	return st
}

func canScroll(st ScrollTarget, dir int) bool {
	st = liveTarget(st)
	return st != nil && st.CanScroll(dir)
}

func targetContains(st ScrollTarget, p image.Point) bool {
	st = liveTarget(st)
	return st != nil && st.Contains(p)
}

//----------

// Scroll target with fixed bounds and capabilities.
type StaticScrollTarget struct {
	Rect       image.Rectangle
	CanStart   bool // can scroll towards the start
	CanEnd     bool // can scroll towards the end
	IsDetached bool
}

func (st *StaticScrollTarget) CanScroll(dir int) bool {
	if dir < 0 {
		return st.CanStart
	}
	return st.CanEnd
}
func (st *StaticScrollTarget) Contains(p image.Point) bool {
	return p.In(st.Rect)
}
func (st *StaticScrollTarget) Detached() bool {
	return st.IsDetached
}

//----------

type ScrollAxes int

const (
	ScrollHorizontal ScrollAxes = 1 << iota
	ScrollVertical
)

func (sa ScrollAxes) Has(a ScrollAxes) bool {
	return sa&a != 0
}
