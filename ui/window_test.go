package ui

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func threeButtons() (*Window, []*Button) {
	w := NewWindow()
	var bs []*Button
	for _, p := range [][2]int{{1, 1}, {5, 5}, {15, 46}} {
		b := NewButton("button1", func() {})
		b.SetPosition(p[0], p[1])
		w.Add(b)
		bs = append(bs, b)
	}
	return w, bs
}

func TestWindow_Draw(t *testing.T) {
	buf := NewBuffer(50, 30)
	w, bs := threeButtons()
	w.Show()

	if got, want := w.Draw(buf), (Rect{Top: 1, Left: 1, Right: 22, Bottom: 47}); got != want {
		t.Fatalf("Draw() = %v, want %v", got, want)
	}
	if !w.IsValid() {
		t.Error("window invalid after Draw()")
	}
	if got := w.Draw(buf); !got.IsEmpty() {
		t.Errorf("second Draw() = %v, want empty", got)
	}

	if !w.Focus(bs[1]) {
		t.Fatal("Focus() = false")
	}
	if w.Focus(bs[1]) {
		t.Error("Focus() on the focused widget = true")
	}
	if got, want := w.Draw(buf), (Rect{Top: 1, Left: 1, Right: 12, Bottom: 6}); got != want {
		t.Errorf("Draw() after focus change = %v, want %v", got, want)
	}
	if got := buf.At(5, 5).Color; got != ColorSelection {
		t.Errorf("focused button color = %v, want %v", got, ColorSelection)
	}
	if got := buf.At(1, 1).Color; got != ColorNone {
		t.Errorf("unfocused button color = %v, want %v", got, ColorNone)
	}

	w.Update(bs[2])
	if got, want := w.Draw(buf), (Rect{Top: 46, Left: 15, Right: 22, Bottom: 47}); got != want {
		t.Errorf("Draw() after Update = %v, want %v", got, want)
	}
}

func TestWindow_FocusTraversal(t *testing.T) {
	w, bs := threeButtons()
	w.Add(NewText("label"))
	w.Show()

	var seen []Widget
	w.OnFocusChange(func(wd Widget) { seen = append(seen, wd) })

	steps := []struct {
		vk   VKey
		want *Button
	}{
		{VKFocusNext, bs[1]},
		{VKFocusNext, bs[2]},
		{VKFocusNext, bs[0]},
		{VKFocusPrev, bs[2]},
		{VKFocusPrev, bs[1]},
	}
	for i, st := range steps {
		if !w.KeyDown(0, st.vk) {
			t.Fatalf("#%d KeyDown(%v) not handled", i, st.vk)
		}
		if got := w.Focused(); got != Widget(st.want) {
			t.Errorf("#%d KeyDown(%v): focused %p, want %p", i, st.vk, got, st.want)
		}
	}
	if len(seen) != len(steps) {
		t.Errorf("OnFocusChange called %d times, want %d", len(seen), len(steps))
	}
}

func TestWindow_FocusNoneFocusable(t *testing.T) {
	w := NewWindow()
	w.Add(NewText("a"))
	w.Add(NewDivider(4))
	w.Show()
	if w.Focused() != nil {
		t.Fatal("static widget took focus")
	}
	w.KeyDown(0, VKFocusNext)
	w.KeyDown(0, VKFocusPrev)
	if w.Focused() != nil {
		t.Error("focus moved to a static widget")
	}
	if w.KeyDown(0, VKMoveDown) {
		t.Error("KeyDown() without focus handled")
	}
}

func TestWindow_KeyRouting(t *testing.T) {
	w := NewWindow()
	clicks := 0
	b := NewButton("ok", func() { clicks++ })
	w.Add(b)
	w.Show()

	var notified int
	w.OnInvalidate(func() { notified++ })
	if !w.KeyDown(0, VKActionSpace) {
		t.Error("KeyDown(action_space) not handled")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if w.KeyDown(0, VKMoveUp) {
		t.Error("KeyDown(move_up) handled by a button")
	}

	b.Invalidate(true)
	w.KeyDown(0, VKActionEnter)
	if notified == 0 {
		t.Error("OnInvalidate not called for an invalid widget")
	}
}

func TestWindow_KillWindow(t *testing.T) {
	w, _ := threeButtons()
	closed := 0
	w.OnClose(func() { closed++ })
	w.Show()

	w.CloseOnKill = false
	if w.KeyDown(0, VKActionKillWindow) {
		t.Error("kill handled with CloseOnKill unset")
	}
	w.CloseOnKill = true
	if !w.KeyDown(0, VKActionKillWindow) {
		t.Error("kill not handled")
	}
	if w.IsShown() || closed != 1 {
		t.Errorf("IsShown() = %v, closed %d times", w.IsShown(), closed)
	}
}

func TestWindow_Menu(t *testing.T) {
	buf := NewBuffer(50, 30)
	w, bs := threeButtons()
	m := testMenu()
	m.SetPosition(1, 0)
	w.SetMenu(m)
	var chosen int
	m.OnChosen = func(id int) { chosen = id }
	w.Show()
	w.Draw(buf)

	if w.Focused() != Widget(bs[0]) {
		t.Fatal("menu took the initial focus")
	}
	if !w.KeyDown(0, VKOpenMenu) || !m.IsOpen() {
		t.Fatal("open_menu did not open the menu")
	}
	got := w.Draw(buf)
	if want := (Rect{Top: 0, Left: 1, Right: 17, Bottom: 4}); got != want {
		t.Errorf("Draw() with open menu = %v, want %v", got, want)
	}
	if got := buf.At(1, 1); got.Value != 'O' || got.Color != ColorSelection {
		t.Errorf("drop-down not painted over the focused button: %+v", got)
	}

	w.KeyDown(0, VKFocusNext)
	if w.Focused() != Widget(bs[0]) {
		t.Error("focus moved while the menu was open")
	}
	w.KeyDown(0, VKMoveDown)
	w.KeyDown(0, VKActionEnter)
	if m.IsOpen() || chosen != 2 {
		t.Errorf("menu open %v, chosen %d, want closed with 2", m.IsOpen(), chosen)
	}

	got = w.Draw(buf)
	if want := (Rect{Top: 0, Left: 1, Right: 17, Bottom: 4}); got != want {
		t.Errorf("Draw() after close = %v, want %v", got, want)
	}
	if got := buf.At(1, 1); got.Value != 'b' || got.Color != ColorSelection {
		t.Errorf("focused button not repainted: %+v", got)
	}

	w.KeyDown(0, VKOpenMenu)
	if !w.KeyDown(0, VKActionKillWindow) || m.IsOpen() || !w.IsShown() {
		t.Error("kill with an open menu should only close the menu")
	}
}

func TestWindow_Remove(t *testing.T) {
	buf := NewBuffer(50, 30)
	w, bs := threeButtons()
	w.Show()
	w.Draw(buf)

	var erased Rect
	w.OnErase(func(r Rect) { erased = r })
	w.Remove(bs[0])
	if w.Focused() != nil || w.Cursor().Visible {
		t.Error("removing the focused widget should drop the focus")
	}
	got := w.Draw(buf)
	if want := NewRect(1, 1, 7, 1); got != want || erased != want {
		t.Errorf("Draw() = %v, erased %v, want %v", got, erased, want)
	}
	if len(w.Widgets()) != 2 {
		t.Errorf("len(Widgets()) = %d, want 2", len(w.Widgets()))
	}

	w.Focus(bs[2])
	w.Remove(bs[1])
	if w.Focused() != Widget(bs[2]) {
		t.Error("focus lost after removing an earlier widget")
	}
}

func TestWindow_EraseClearsBuffer(t *testing.T) {
	buf := NewBuffer(10, 20)
	w := NewWindow()
	txt := NewText("hello")
	w.Add(txt)
	w.Show()
	w.Draw(buf)

	w.Move(txt, 3, 3)
	got := w.Draw(buf)
	if want := (Rect{Top: 0, Left: 0, Right: 8, Bottom: 4}); got != want {
		t.Errorf("Draw() after Move = %v, want %v", got, want)
	}
	if c := buf.At(0, 0); c != (Cell{}) {
		t.Errorf("old position not cleared: %+v", c)
	}
	if c := buf.At(3, 3); c.Value != 'h' {
		t.Errorf("new position = %+v, want 'h'", c)
	}
}

func TestWindow_Logger(t *testing.T) {
	var out bytes.Buffer
	w, bs := threeButtons()
	w.SetLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	w.Show()
	w.Focus(bs[2])
	if !strings.Contains(out.String(), "focus changed") {
		t.Errorf("log output %q has no focus trace", out.String())
	}
}

func TestWindow_SetMenuAlreadyAdded(t *testing.T) {
	w := NewWindow()
	m := testMenu()
	w.Add(m)
	w.Add(NewButton("ok", func() {}))
	w.SetMenu(m)
	w.Show()

	if w.Menu() != m {
		t.Fatalf("Menu() = %p, want %p", w.Menu(), m)
	}
	if len(w.Widgets()) != 2 {
		t.Errorf("len(Widgets()) = %d, want 2", len(w.Widgets()))
	}
	if !w.KeyDown(0, VKOpenMenu) || !m.IsOpen() {
		t.Error("open_menu did not open the menu")
	}

	w.SetMenu(nil)
	if w.Menu() != nil || len(w.Widgets()) != 1 {
		t.Errorf("SetMenu(nil): Menu() = %p, %d widgets left", w.Menu(), len(w.Widgets()))
	}
}

func TestWindow_RemoveFocused(t *testing.T) {
	buf := NewBuffer(10, 10)
	l1 := NewList(numbered(3), nil)
	l1.SetSize(10, 3)
	l2 := NewList(numbered(3), nil)
	l2.SetSize(10, 3)
	l2.SetPosition(0, 5)

	w := NewWindow()
	w.Add(l1)
	w.Add(l2)
	w.Show()
	w.Draw(buf)
	if !l1.Focused() {
		t.Fatal("first list not focused by Show()")
	}

	w.Remove(l1)
	if l1.Focused() {
		t.Error("removed widget kept its focus flag")
	}
	w.Add(l1)
	w.Focus(l2)
	w.Draw(buf)
	if l1.Focused() || !l2.Focused() {
		t.Errorf("Focused() = %v, %v, want false, true", l1.Focused(), l2.Focused())
	}
	if got := buf.At(0, 0).Color; got != ColorInactive {
		t.Errorf("unfocused list selection color = %v, want %v", got, ColorInactive)
	}
	if got := buf.At(0, 5).Color; got != ColorSelection {
		t.Errorf("focused list selection color = %v, want %v", got, ColorSelection)
	}
}

func TestWindow_AddNotifies(t *testing.T) {
	w := NewWindow()
	notified := 0
	w.OnInvalidate(func() { notified++ })
	w.Add(NewText("a"))
	if notified != 0 {
		t.Errorf("Add() to a hidden window notified %d times", notified)
	}
	w.Show()
	w.Add(NewText("b"))
	if notified != 1 {
		t.Errorf("Add() to a shown window notified %d times, want 1", notified)
	}
	if w.IsValid() {
		t.Error("window valid after Add()")
	}
}

// flasher paints '#' over its area for a number of animation frames.
type flasher struct {
	BasicWidget
	width  int
	frames int
}

func (f *flasher) Size() (int, int) { return f.width, 1 }

func (f *flasher) Draw(b *Buffer) Rect {
	if f.valid {
		return Rect{}
	}
	f.valid = true
	return f.fill(b, '*')
}

func (f *flasher) Animate(b *Buffer, _ time.Duration) Rect {
	if f.frames == 0 {
		return Rect{}
	}
	f.frames--
	return f.fill(b, '#')
}

func (f *flasher) fill(b *Buffer, ch rune) Rect {
	fm := NewFormatter(b, Cell{})
	fm.Move(f.x, f.y)
	fm.Print(strings.Repeat(string(ch), f.width), f.width)
	return NewRect(f.x, f.y, f.width, 1)
}

func TestWindow_Animate(t *testing.T) {
	buf := NewBuffer(5, 20)
	w := NewWindow()
	fl := &flasher{width: 9, frames: 1}
	btn := NewButton("button1", func() {})
	w.Add(fl)
	w.Add(btn)
	w.Show()
	w.Draw(buf)

	if got, want := w.Animate(buf, time.Second), NewRect(0, 0, 9, 1); got != want {
		t.Fatalf("Animate() = %v, want %v", got, want)
	}
	if got := buf.At(0, 0); got.Value != 'b' || got.Color != ColorSelection {
		t.Errorf("focused button not repainted over the animation: %+v", got)
	}
	if got := buf.At(8, 0).Value; got != '#' {
		t.Errorf("animated cell = %q, want '#'", got)
	}
	if !btn.IsValid() {
		t.Error("focused button invalid after Animate()")
	}
	if got := w.Animate(buf, time.Second); !got.IsEmpty() {
		t.Errorf("Animate() with nothing to animate = %v, want empty", got)
	}
}

func TestWindow_AnimateUnderMenu(t *testing.T) {
	buf := NewBuffer(5, 20)
	w := NewWindow()
	m := testMenu()
	w.SetMenu(m)
	w.Add(&flasher{width: 9, frames: 1})
	w.Show()
	w.Draw(buf)

	if got, want := w.Animate(buf, time.Second), NewRect(0, 0, 16, 1); got != want {
		t.Fatalf("Animate() = %v, want %v", got, want)
	}
	if got := buf.At(0, 0); got.Value != 'M' || got.Color != ColorMenuItem {
		t.Errorf("menu bar not repainted over the animation: %+v", got)
	}
}

func TestWindow_Invalidate(t *testing.T) {
	buf := NewBuffer(50, 30)
	w, bs := threeButtons()
	w.Show()
	w.Draw(buf)

	notified := 0
	w.OnInvalidate(func() { notified++ })
	w.Invalidate()
	if notified != 1 || w.IsValid() {
		t.Errorf("Invalidate(): notified %d times, IsValid() = %v", notified, w.IsValid())
	}
	for i, b := range bs {
		if b.IsValid() {
			t.Errorf("button %d valid after Invalidate()", i)
		}
	}
	if got, want := w.Draw(buf), (Rect{Top: 1, Left: 1, Right: 22, Bottom: 47}); got != want {
		t.Errorf("Draw() after Invalidate = %v, want %v", got, want)
	}
}
