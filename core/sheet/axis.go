package sheet

import "image"

// Binds a panel to the container edge it slides from. Offsets are positions along the drag axis; a pointer displacement along the axis moves the offset by the same amount.
type Axis interface {
	String() string
	Vertical() bool
	Along(p image.Point) int  // coordinate along the drag axis
	Across(p image.Point) int // coordinate across the drag axis

	// Returns the expanded and collapsed offsets. The collapsed offset is always farther from the container center than the expanded one.
	Anchors(panel, container, peek int) (expanded, collapsed int)
	// Offset where the panel is fully shown.
	Neutral(panel, container int) int
	// Panel rectangle in container coordinates for the given offset.
	Bounds(offset int, panel, container image.Point) image.Rectangle

	SupportsHalf() bool
}

//----------

var (
	Bottom Axis = bottomAxis{xyAxis{true}}
	Top    Axis = topAxis{xyAxis{true}}
	Right  Axis = rightAxis{xyAxis{false}}
)

func AxisByName(name string) (Axis, bool) {
	for _, a := range []Axis{Bottom, Top, Right} {
		if a.String() == name {
			return a, true
		}
	}
	return nil, false
}

//----------

// Allows calculations to be done along the drag axis, independent of the orientation.
type xyAxis struct {
	yaxis bool
}

func (xy xyAxis) Vertical() bool { return xy.yaxis }

func (xy xyAxis) Along(p image.Point) int {
	if xy.yaxis {
		return p.Y
	}
	return p.X
}
func (xy xyAxis) Across(p image.Point) int {
	if xy.yaxis {
		return p.X
	}
	return p.Y
}

//----------

// Slides up from the bottom edge. Offset is a translation from the resting position (flush with the bottom).
type bottomAxis struct{ xyAxis }

func (bottomAxis) String() string { return "bottom" }

func (bottomAxis) Anchors(panel, container, peek int) (int, int) {
	return 0, peek
}
func (bottomAxis) Neutral(panel, container int) int { return 0 }

func (bottomAxis) Bounds(offset int, panel, container image.Point) image.Rectangle {
	y := container.Y - panel.Y + offset
	return image.Rect(0, y, panel.X, y+panel.Y)
}

func (bottomAxis) SupportsHalf() bool { return true }

//----------

// Slides down from the top edge. Offset is the panel top.
type topAxis struct{ xyAxis }

func (topAxis) String() string { return "top" }

func (topAxis) Anchors(panel, container, peek int) (int, int) {
	return 0, -peek
}
func (topAxis) Neutral(panel, container int) int { return 0 }

func (topAxis) Bounds(offset int, panel, container image.Point) image.Rectangle {
	return image.Rect(0, offset, panel.X, offset+panel.Y)
}

func (topAxis) SupportsHalf() bool { return false }

//----------

// Slides in from the right edge; expanded is flush with the far (right) edge. Offset is the panel left.
type rightAxis struct{ xyAxis }

func (rightAxis) String() string { return "right" }

func (rightAxis) Anchors(panel, container, peek int) (int, int) {
	e := container - panel
	return e, e + peek
}
func (rightAxis) Neutral(panel, container int) int { return container - panel }

func (rightAxis) Bounds(offset int, panel, container image.Point) image.Rectangle {
	return image.Rect(offset, 0, offset+panel.X, panel.Y)
}

func (rightAxis) SupportsHalf() bool { return false }
