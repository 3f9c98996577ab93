package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Backend is the terminal a host loop drives. Only the host talks to it;
// widgets and windows never do.
type Backend interface {
	Init() error
	Shutdown()
	Size() (rows, cols int)
	// ReadEvent blocks for the next key, resize or posted event. It returns
	// nil once the backend has been shut down.
	ReadEvent() tcell.Event
	// Post queues data to be returned by ReadEvent as an *tcell.EventInterrupt.
	Post(data any) error
	// Draw transfers the r part of b to the terminal.
	Draw(b *Buffer, r Rect)
	ShowCursor(c Cursor)
	Sync()
}

// Terminal is the tcell implementation of Backend.
type Terminal struct {
	screen tcell.Screen
	Theme  ColorTheme
}

// NewTerminal opens the controlling terminal.
func NewTerminal() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "open terminal")
	}
	return NewTerminalScreen(s), nil
}

// NewTerminalScreen wraps an existing screen, for example a simulation
// screen in tests.
func NewTerminalScreen(s tcell.Screen) *Terminal {
	return &Terminal{screen: s, Theme: Theme}
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	t.screen.SetStyle(t.Theme.CellStyle(Cell{}))
	t.screen.HideCursor()
	t.screen.Clear()
	return nil
}

func (t *Terminal) Shutdown() { t.screen.Fini() }

func (t *Terminal) Size() (int, int) {
	w, h := t.screen.Size()
	return h, w
}

func (t *Terminal) ReadEvent() tcell.Event { return t.screen.PollEvent() }

func (t *Terminal) Post(data any) error {
	if err := t.screen.PostEvent(tcell.NewEventInterrupt(data)); err != nil {
		return errors.Wrap(err, "post event")
	}
	return nil
}

func (t *Terminal) Draw(b *Buffer, r Rect) {
	r, ok := r.Intersect(b.Bounds())
	if !ok {
		return
	}
	w, h := t.screen.Size()
	for y := r.Top; y < min(r.Bottom, h); y++ {
		for x := r.Left; x < min(r.Right, w); x++ {
			c := b.At(x, y)
			if c.Value == continuation {
				continue
			}
			ch := c.Value
			if ch == 0 {
				ch = ' '
			}
			t.screen.SetContent(x, y, ch, nil, t.Theme.CellStyle(c))
		}
	}
	t.screen.Show()
}

func (t *Terminal) ShowCursor(c Cursor) {
	if c.Visible {
		t.screen.ShowCursor(c.X, c.Y)
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
}

// Sync repaints the whole physical screen, after a resize for example.
func (t *Terminal) Sync() { t.screen.Sync() }
