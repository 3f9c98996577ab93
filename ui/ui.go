// Package ui provides a retained-mode widget toolkit for character-cell terminals.
// Widgets paint into a Buffer only when invalid, and a Window composes them,
// tracking stale regions so the host transfers only the changed rectangle
// to the terminal after each key.
package ui

import "time"

// Widget is the interface implemented by every element a Window can hold.
type Widget interface {
	SetPosition(x, y int)
	Position() (x, y int)
	Size() (w, h int)

	CanFocus() bool
	SetFocus(focus bool)
	// SetCursor lets the focused widget place the window cursor.
	SetCursor(c *Cursor)

	// Draw paints the widget if it is invalid and returns the painted area.
	// The widget is valid afterwards.
	Draw(b *Buffer) Rect
	// Erase returns an area the widget vacated since the last draw, once.
	Erase() Rect
	// Animate performs time based repainting and returns the changed area.
	Animate(b *Buffer, elapsed time.Duration) Rect

	// KeyDown handles a key and reports whether it was consumed.
	// Any change of appearance invalidates the widget.
	KeyDown(raw rune, vk VKey) bool

	// Invalidate marks the widget dirty. With force set the whole widget
	// repaints on the next draw, otherwise only what changed.
	Invalidate(force bool)
	Validate()
	IsValid() bool
}

// Cursor is the abstract text cursor of a Window.
type Cursor struct {
	X, Y    int
	Visible bool
}

// Bounds returns the screen rect occupied by w.
func Bounds(w Widget) Rect {
	x, y := w.Position()
	width, height := w.Size()
	return NewRect(x, y, width, height)
}

// BasicWidget provides position, validity and no-op defaults for the
// optional parts of Widget. Embedders supply Size and Draw.
type BasicWidget struct {
	x, y  int
	valid bool
}

func (b *BasicWidget) SetPosition(x, y int)                { b.x, b.y = x, y }
func (b *BasicWidget) Position() (int, int)                { return b.x, b.y }
func (b *BasicWidget) CanFocus() bool                      { return false }
func (b *BasicWidget) SetFocus(bool)                       {}
func (b *BasicWidget) SetCursor(*Cursor)                   {}
func (b *BasicWidget) Erase() Rect                         { return Rect{} }
func (b *BasicWidget) Animate(*Buffer, time.Duration) Rect { return Rect{} }
func (b *BasicWidget) KeyDown(rune, VKey) bool             { return false }
func (b *BasicWidget) Invalidate(bool)                     { b.valid = false }
func (b *BasicWidget) Validate()                           { b.valid = true }
func (b *BasicWidget) IsValid() bool                       { return b.valid }
