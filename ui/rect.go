package ui

import "fmt"

// Rect is a half-open screen region [Left,Right) x [Top,Bottom).
// A rect with Right == 0 or Bottom == 0 is empty; column 0 is never a
// legal right edge and row 0 never a legal bottom edge.
type Rect struct {
	Top, Left, Right, Bottom int
}

// NewRect returns the rect with its top-left corner at (x, y) and the given size.
func NewRect(x, y, w, h int) Rect {
	if w <= 0 || h <= 0 {
		return Rect{}
	}
	return Rect{Top: y, Left: x, Right: x + w, Bottom: y + h}
}

func (r Rect) IsEmpty() bool { return r.Right == 0 || r.Bottom == 0 }

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	if r.IsEmpty() {
		return false
	}
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Union returns the smallest rect covering r and o.
// An empty operand is the identity.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		Top:    min(r.Top, o.Top),
		Left:   min(r.Left, o.Left),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Intersect returns the overlap of r and o. When the overlap has no area
// it returns the zero Rect and false.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	if r.IsEmpty() || o.IsEmpty() {
		return Rect{}, false
	}
	out := Rect{
		Top:    max(r.Top, o.Top),
		Left:   max(r.Left, o.Left),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.Right-out.Left <= 0 || out.Bottom-out.Top <= 0 {
		return Rect{}, false
	}
	return out, true
}

// Intersects is Intersect without the result.
func (r Rect) Intersects(o Rect) bool {
	_, ok := r.Intersect(o)
	return ok
}

func (r Rect) String() string {
	return fmt.Sprintf("{top:%d left:%d right:%d bottom:%d}", r.Top, r.Left, r.Right, r.Bottom)
}
