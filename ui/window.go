package ui

import (
	"log/slog"
	"slices"
	"time"
)

// Window composes widgets into one screen. Widgets paint in the order they
// were added, the focused widget paints after them and an open menu paints
// last, so the two always end up on top.
//
// A Window is not safe for concurrent use; the host serializes KeyDown,
// Draw and Animate.
type Window struct {
	widgets []Widget
	focus   int // index into widgets, -1 if none
	menu    int // index of the menu in widgets, -1 if none

	cursor Cursor
	erase  Rect
	shown  bool
	valid  bool

	// CloseOnKill closes the window on VKActionKillWindow.
	CloseOnKill bool

	log          *slog.Logger
	onFocus      func(Widget)
	onInvalidate func()
	onCursor     func(Cursor)
	onErase      func(Rect)
	onClose      func()
}

func NewWindow() *Window {
	return &Window{
		focus:       -1,
		menu:        -1,
		CloseOnKill: true,
		log:         slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for focus and lifecycle tracing.
func (w *Window) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	w.log = l
}

// OnFocusChange registers fn to be called after the focus moved.
func (w *Window) OnFocusChange(fn func(Widget)) { w.onFocus = fn }

// OnInvalidate registers fn to be called when the window needs a draw.
func (w *Window) OnInvalidate(fn func()) { w.onInvalidate = fn }

// OnCursor registers fn to be called when the cursor may have changed.
func (w *Window) OnCursor(fn func(Cursor)) { w.onCursor = fn }

// OnErase registers fn to clear the areas Draw reports as stale. Without
// it the window blanks them in the buffer itself.
func (w *Window) OnErase(fn func(Rect)) { w.onErase = fn }

// OnClose registers fn to be called when the window closes.
func (w *Window) OnClose(fn func()) { w.onClose = fn }

func (w *Window) indexOf(wd Widget) int {
	return slices.Index(w.widgets, wd)
}

// Add appends wd to the window.
func (w *Window) Add(wd Widget) {
	if w.indexOf(wd) >= 0 {
		assert(false, "widget added twice")
		return
	}
	w.widgets = append(w.widgets, wd)
	if w.shown {
		wd.Invalidate(true)
		w.valid = false
		w.notify()
	}
}

// SetMenu installs m as the window menu, replacing any previous one.
// A nil m removes the menu. A menu already added as a plain widget keeps
// its place in the paint order.
func (w *Window) SetMenu(m *Menu) {
	if old := w.Menu(); old != nil && old != m {
		w.Remove(old)
	}
	if m == nil {
		return
	}
	if w.indexOf(m) < 0 {
		w.Add(m)
	}
	w.menu = w.indexOf(m)
}

// Menu returns the window menu or nil.
func (w *Window) Menu() *Menu {
	if w.menu < 0 {
		return nil
	}
	return w.widgets[w.menu].(*Menu)
}

func (w *Window) menuOpen() bool {
	m := w.Menu()
	return m != nil && m.IsOpen()
}

// Remove takes wd out of the window. Its last area is erased on the next draw.
func (w *Window) Remove(wd Widget) {
	i := w.indexOf(wd)
	if i < 0 {
		return
	}
	if w.shown {
		w.erase = w.erase.Union(Bounds(wd))
		w.valid = false
	}
	switch {
	case i == w.focus:
		wd.SetFocus(false)
		w.focus = -1
		w.cursor.Visible = false
	case i < w.focus:
		w.focus--
	}
	switch {
	case i == w.menu:
		w.menu = -1
	case i < w.menu:
		w.menu--
	}
	w.widgets = slices.Delete(w.widgets, i, i+1)
}

// Widgets returns the widgets in paint order.
func (w *Window) Widgets() []Widget { return slices.Clone(w.widgets) }

// Focused returns the focused widget or nil.
func (w *Window) Focused() Widget {
	if w.focus < 0 {
		return nil
	}
	return w.widgets[w.focus]
}

// Focus moves the keyboard focus to wd. It reports false if wd already has
// the focus or cannot take it.
func (w *Window) Focus(wd Widget) bool {
	i := w.indexOf(wd)
	assert(i >= 0, "focus on a widget not in the window")
	if i < 0 || i == w.focus || !wd.CanFocus() {
		return false
	}
	w.setFocus(i, false)
	w.notify()
	return true
}

func (w *Window) setFocus(i int, force bool) {
	w.cursor.Visible = false
	if old := w.Focused(); old != nil {
		old.SetFocus(false)
		old.Invalidate(force)
	}
	w.focus = i
	wd := w.widgets[i]
	wd.SetFocus(true)
	wd.SetCursor(&w.cursor)
	wd.Invalidate(force)
	w.valid = false

	w.log.Debug("focus changed", "index", i)
	if w.onFocus != nil {
		w.onFocus(wd)
	}
}

// Update forces wd to repaint completely on the next draw.
func (w *Window) Update(wd Widget) {
	i := w.indexOf(wd)
	if i < 0 {
		return
	}
	wd.Invalidate(true)
	if i == w.focus {
		wd.SetCursor(&w.cursor)
	}
	w.valid = false
	w.notify()
}

// Move repositions wd. Every widget repaints since the overlap between
// widgets may have changed.
func (w *Window) Move(wd Widget, x, y int) {
	if w.indexOf(wd) < 0 {
		return
	}
	if w.shown {
		w.erase = w.erase.Union(Bounds(wd))
	}
	wd.SetPosition(x, y)
	w.Invalidate()
}

// Invalidate marks every widget for a full repaint.
func (w *Window) Invalidate() {
	for _, wd := range w.widgets {
		wd.Invalidate(true)
	}
	w.valid = false
	if f := w.Focused(); f != nil {
		f.SetCursor(&w.cursor)
	}
	w.notify()
}

// IsValid reports whether the screen reflects the window state.
func (w *Window) IsValid() bool { return w.valid }

func (w *Window) IsShown() bool  { return w.shown }
func (w *Window) Cursor() Cursor { return w.cursor }

// Show opens the window and focuses the first focusable widget unless a
// widget already has the focus.
func (w *Window) Show() {
	w.shown = true
	w.cursor.Visible = false
	for _, wd := range w.widgets {
		wd.Invalidate(true)
	}
	w.valid = false
	if w.focus < 0 {
		for i, wd := range w.widgets {
			if wd.CanFocus() {
				w.setFocus(i, true)
				break
			}
		}
	}
	w.log.Debug("window shown", "widgets", len(w.widgets))
}

// Close hides the window.
func (w *Window) Close() {
	if !w.shown {
		return
	}
	w.shown = false
	w.log.Debug("window closed")
	if w.onClose != nil {
		w.onClose()
	}
}

// KeyDown routes a key. Window level keys (kill, focus traversal, menu
// open) are handled here; anything else goes to the open menu or, without
// one, to the focused widget.
func (w *Window) KeyDown(raw rune, vk VKey) bool {
	m := w.Menu()
	switch {
	case vk == VKActionKillWindow && w.menuOpen():
		m.Close()
	case vk == VKActionKillWindow && w.CloseOnKill:
		w.Close()
		return true
	case (vk == VKFocusNext || vk == VKFocusPrev) && !w.menuOpen():
		w.focusStep(vk == VKFocusNext)
	case vk == VKOpenMenu && m != nil && !m.IsOpen():
		if m.IsEmpty() {
			return false
		}
		m.Open(0)
	default:
		var handled bool
		if w.menuOpen() {
			handled = m.KeyDown(raw, vk)
		} else if f := w.Focused(); f != nil {
			handled = f.KeyDown(raw, vk)
		}
		if !handled {
			return false
		}
	}

	for _, wd := range w.widgets {
		if !wd.IsValid() {
			w.valid = false
			break
		}
	}
	if !w.valid {
		w.notify()
	}
	return true
}

// focusStep moves the focus to the next or previous focusable widget,
// wrapping around.
func (w *Window) focusStep(forward bool) {
	n := len(w.widgets)
	pos := w.focus
	if pos < 0 && !forward {
		pos = n
	}
	for range n {
		if forward {
			pos = (pos + 1) % n
		} else {
			pos = (pos - 1 + n) % n
		}
		if pos == w.focus {
			return
		}
		if w.widgets[pos].CanFocus() {
			w.setFocus(pos, true)
			return
		}
	}
}

func (w *Window) notify() {
	if w.onInvalidate != nil {
		w.onInvalidate()
	}
	if w.onCursor != nil {
		w.onCursor(w.cursor)
	}
}

func (w *Window) paint(wd Widget, b *Buffer) Rect {
	r := wd.Draw(b)
	wd.Validate()
	return r
}

// Draw paints every invalid widget into b and returns the union of the
// painted and the erased areas.
func (w *Window) Draw(b *Buffer) Rect {
	erase := w.erase
	for _, wd := range w.widgets {
		erase = erase.Union(wd.Erase())
	}
	if !erase.IsEmpty() {
		if w.onErase != nil {
			w.onErase(erase)
		} else {
			b.Clear(erase)
		}
		for _, wd := range w.widgets {
			if Bounds(wd).Intersects(erase) {
				wd.Invalidate(true)
			}
		}
	}

	open := w.menuOpen()
	var out Rect
	for i, wd := range w.widgets {
		if i == w.focus || (i == w.menu && open) {
			continue
		}
		if !wd.IsValid() {
			out = out.Union(w.paint(wd, b))
		}
	}

	if f := w.Focused(); f != nil {
		if f.IsValid() && Bounds(f).Intersects(out) {
			f.Invalidate(true)
		}
		if !f.IsValid() {
			out = out.Union(w.paint(f, b))
			f.SetCursor(&w.cursor)
		}
	}

	if open {
		m := w.Menu()
		if m.IsValid() && Bounds(m).Intersects(out) {
			m.Invalidate(true)
		}
		if !m.IsValid() {
			r := w.paint(m, b)
			out = out.Union(r)
			if w.cursor.Visible && r.Contains(w.cursor.X, w.cursor.Y) {
				w.cursor.Visible = false
			}
		}
	}

	w.valid = true
	w.erase = Rect{}
	return erase.Union(out)
}

// Animate runs time based repainting. A focused widget or menu that an
// animation painted over is repainted in full.
func (w *Window) Animate(b *Buffer, elapsed time.Duration) Rect {
	var out Rect
	for i, wd := range w.widgets {
		if i == w.focus || i == w.menu {
			continue
		}
		out = out.Union(wd.Animate(b, elapsed))
	}
	for _, i := range []int{w.focus, w.menu} {
		if i < 0 {
			continue
		}
		wd := w.widgets[i]
		r := wd.Animate(b, elapsed)
		if r.IsEmpty() && Bounds(wd).Intersects(out) {
			wd.Invalidate(true)
			r = w.paint(wd, b)
		}
		out = out.Union(r)
	}
	return out
}
