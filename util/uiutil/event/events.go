// Pointer events delivered by the host to the sheet controllers.
package event

import (
	"fmt"
	"image"
	"time"
)

//----------

type Handle bool

const (
	NotHandled Handle = false
	Handled           = true
)

//----------

type PointerId int

// Velocity estimate in pixels per second, screen coordinates.
type Velocity struct {
	X, Y float64
}

func (v Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Velocity) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

//----------

// Time fields are optional (zero if unknown); used only for velocity tracking.
type PointerDown struct {
	Point     image.Point
	PointerId PointerId
	Time      time.Time
}
type PointerMove struct {
	Point     image.Point
	PointerId PointerId
	Time      time.Time
}
type PointerUp struct {
	Point     image.Point
	PointerId PointerId
	Time      time.Time
	// zero if the host has no estimate
	Velocity Velocity
}
type PointerCancel struct {
	PointerId PointerId
}

//----------

// Returns the point and pointer id of a pointer event. The point is zero for a cancel event.
func PointerInfo(ev any) (image.Point, PointerId, bool) {
	switch t := ev.(type) {
	case *PointerDown:
		return t.Point, t.PointerId, true
	case *PointerMove:
		return t.Point, t.PointerId, true
	case *PointerUp:
		return t.Point, t.PointerId, true
	case *PointerCancel:
		return image.Point{}, t.PointerId, true
	}
	return image.Point{}, 0, false
}
