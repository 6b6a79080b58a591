package mousefilter

import "image"

// Reports true if p is farther than slop from press in any axis.
func DetectMoveSlop(press, p image.Point, slop int) bool {
	r := image.Rectangle{press, press}
	// padding to detect intention to move/drag
	r = r.Inset(-slop) // negative inset (outset)
	r.Max = r.Max.Add(image.Point{1, 1})
	return !p.In(r)
}
