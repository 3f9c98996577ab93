package ui

import "time"

// Ticker drives the scrolling of an overlong selected row. Containers ask
// it whether to animate and by how many columns to rotate the row text.
type Ticker interface {
	// Idle consumes elapsed time and reports whether nothing should move yet.
	Idle(elapsed time.Duration) bool
	// Set loads the text to scroll within width columns.
	Set(line string, width int)
	IsSet() bool
	// Next returns the rotation offset for the next frame.
	Next() int
	Reset()
}

// NopTicker never animates.
type NopTicker struct{}

func (NopTicker) Idle(time.Duration) bool { return true }
func (NopTicker) Set(string, int)         {}
func (NopTicker) IsSet() bool             { return true }
func (NopTicker) Next() int               { return 0 }
func (NopTicker) Reset()                  {}

// DefaultTickerDelay is how long a row stays still before it starts to scroll.
const DefaultTickerDelay = 2 * time.Second

// ScrollTicker rotates the row one column per frame once the row has been
// selected for Delay.
type ScrollTicker struct {
	Delay time.Duration

	waited time.Duration
	length int
	pivot  int
}

func NewScrollTicker() *ScrollTicker {
	return &ScrollTicker{Delay: DefaultTickerDelay}
}

func (t *ScrollTicker) Idle(elapsed time.Duration) bool {
	if t.waited < t.Delay {
		t.waited += elapsed
		return true
	}
	return false
}

func (t *ScrollTicker) Set(line string, width int) {
	t.length = max(len([]rune(line)), width)
}

func (t *ScrollTicker) IsSet() bool { return t.length > 0 }

func (t *ScrollTicker) Next() int {
	if t.length == 0 {
		return 0
	}
	off := t.pivot % t.length
	t.pivot = off + 1
	return off
}

func (t *ScrollTicker) Reset() {
	t.waited = 0
	t.pivot = 0
	t.length = 0
}
