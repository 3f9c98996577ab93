package ui

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.design/x/clipboard"
	"golang.org/x/sync/errgroup"
)

// KeyCopy copies the text selected in the focused widget to the clipboard.
const KeyCopy = VKSentinel + 1

// Copier is implemented by widgets with selectable text.
type Copier interface {
	SelectedText() string
}

// DefaultFrameInterval is the animation period of an App.
const DefaultFrameInterval = 100 * time.Millisecond

type (
	frameEvent  struct{ elapsed time.Duration }
	configEvent struct {
		cfg *Config
		err error
	}
	stopEvent struct{}
)

// App runs the read key, dispatch, draw loop for one Window on a Backend.
// Timers and the config watcher post events to the backend so that the
// window is only ever touched from the loop goroutine.
type App struct {
	Window  *Window
	Backend Backend
	Keymap  *Keymap
	Logger  *slog.Logger

	// FrameInterval is the period of Window.Animate calls; zero disables
	// animation.
	FrameInterval time.Duration

	// Clipboard receives copied text. It defaults to the system clipboard.
	Clipboard func(text string) error

	theme      func(ColorTheme)
	configPath string
	buf        *Buffer
}

func NewApp(win *Window, backend Backend) *App {
	km := DefaultKeymap()
	km.Define("copy", KeyCopy)
	km.Bind("Ctrl-C", KeyCopy)
	a := &App{
		Window:        win,
		Backend:       backend,
		Keymap:        km,
		Logger:        slog.Default(),
		FrameInterval: DefaultFrameInterval,
		Clipboard:     systemClipboard,
	}
	if t, ok := backend.(*Terminal); ok {
		a.theme = func(th ColorTheme) { t.Theme = th }
	}
	return a
}

var clipboardInit = sync.OnceValue(clipboard.Init)

func systemClipboard(text string) error {
	if err := clipboardInit(); err != nil {
		return errors.Wrap(err, "clipboard unavailable")
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// LoadConfig applies the config file at path and reloads it whenever the
// file changes while Run is active.
func (a *App) LoadConfig(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if err := a.applyConfig(cfg); err != nil {
		return err
	}
	a.configPath = path
	return nil
}

func (a *App) applyConfig(cfg *Config) error {
	km, err := cfg.Keymap(a.Keymap)
	if err != nil {
		return err
	}
	if a.theme != nil {
		th, err := cfg.Theme(Theme)
		if err != nil {
			return err
		}
		a.theme(th)
	}
	a.Keymap = km
	return nil
}

// Run shows the window and processes events until the window closes or
// ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.Backend.Init(); err != nil {
		return err
	}
	defer a.Backend.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	defer func() {
		cancel()
		if err := g.Wait(); err != nil {
			a.Logger.Warn("background task failed", "err", err)
		}
	}()

	a.start()
	g.Go(func() error {
		<-ctx.Done()
		a.post(stopEvent{})
		return nil
	})
	if a.FrameInterval > 0 {
		g.Go(func() error { return a.frames(ctx) })
	}
	if a.configPath != "" {
		w, err := watchConfig(a.configPath)
		if err != nil {
			a.Logger.Warn("config watch disabled", "path", a.configPath, "err", err)
		} else {
			g.Go(func() error { return a.reload(ctx, w, a.configPath) })
		}
	}

	a.Logger.Info("app started")
	for {
		ev := a.Backend.ReadEvent()
		if ev == nil || !a.handle(ev) {
			break
		}
	}
	a.Logger.Info("app stopped")
	return nil
}

func (a *App) post(data any) {
	if err := a.Backend.Post(data); err != nil {
		a.Logger.Debug("event dropped", "err", err)
	}
}

// start sizes the buffer and paints the first frame.
func (a *App) start() {
	rows, cols := a.Backend.Size()
	a.buf = NewBuffer(rows, cols)
	a.Window.Show()
	a.flush(a.Window.Draw(a.buf))
}

func (a *App) flush(r Rect) {
	if !r.IsEmpty() {
		a.Backend.Draw(a.buf, r)
	}
	a.Backend.ShowCursor(a.Window.Cursor())
}

// handle dispatches one event and reports whether the loop continues.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.Backend.Sync()
		rows, cols := a.Backend.Size()
		a.buf.Resize(rows, cols)
		a.Window.Invalidate()
		a.flush(a.Window.Draw(a.buf))
	case *tcell.EventKey:
		raw, vk := a.Keymap.Translate(ev)
		if vk == KeyCopy {
			a.copySelection()
			return true
		}
		a.Window.KeyDown(raw, vk)
		if !a.Window.IsShown() {
			return false
		}
		a.flush(a.Window.Draw(a.buf))
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case stopEvent:
			return false
		case frameEvent:
			r := a.Window.Animate(a.buf, data.elapsed)
			if !r.IsEmpty() {
				a.flush(r)
			}
		case configEvent:
			if data.err == nil {
				data.err = a.applyConfig(data.cfg)
			}
			if data.err != nil {
				a.Logger.Error("config reload failed", "err", data.err)
				return true
			}
			a.Logger.Info("config reloaded", "path", a.configPath)
			a.Window.Invalidate()
			a.flush(a.Window.Draw(a.buf))
		}
	}
	return true
}

func (a *App) copySelection() {
	c, ok := a.Window.Focused().(Copier)
	if !ok {
		return
	}
	text := c.SelectedText()
	if text == "" {
		return
	}
	if err := a.Clipboard(text); err != nil {
		a.Logger.Warn("copy failed", "err", err)
	}
}

func (a *App) frames(ctx context.Context) error {
	t := time.NewTicker(a.FrameInterval)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			a.post(frameEvent{elapsed: now.Sub(last)})
			last = now
		}
	}
}

// watchConfig watches the directory of path so that editors replacing the
// file are noticed too.
func watchConfig(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watch %s", path)
	}
	return w, nil
}

// reload posts a configEvent each time the file at path is written, until
// ctx is done. It closes w.
func (a *App) reload(ctx context.Context, w *fsnotify.Watcher, path string) error {
	defer w.Close()
	name := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(path)
			a.post(configEvent{cfg: cfg, err: err})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.Logger.Warn("config watcher", "err", err)
		}
	}
}
