package ui

import "github.com/mattn/go-runewidth"

// Color is an abstract palette entry. The Theme maps it to terminal colors.
type Color uint8

const (
	ColorNone Color = iota
	ColorHighlight
	ColorSelection
	ColorInactive
	ColorStatic
	ColorMenuItem
	ColorAttention
	ColorQuestion
	ColorInformation
	ColorSentinel
)

var colorNames = [...]string{
	ColorNone:        "none",
	ColorHighlight:   "highlight",
	ColorSelection:   "selection",
	ColorInactive:    "inactive",
	ColorStatic:      "static",
	ColorMenuItem:    "menu_item",
	ColorAttention:   "attention",
	ColorQuestion:    "question",
	ColorInformation: "information",
	ColorSentinel:    "sentinel",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Attr is a bitmask of video attributes.
type Attr uint8

const (
	AttrReverse Attr = 1 << iota
	AttrUnderline
	AttrStandout
	AttrBlink
	AttrDim
	AttrBold

	AttrNone Attr = 0
)

func (a Attr) Has(f Attr) bool { return a&f != 0 }

// Cell is one character position of a Buffer.
// A zero Value is rendered as a space.
type Cell struct {
	Value rune
	Color Color
	Attr  Attr
}

// continuation marks the right half of a double-width rune.
const continuation rune = -1

// Buffer is a rows x cols grid of cells that widgets paint into.
type Buffer struct {
	rows, cols int
	cells      []Cell
	writes     int
}

func NewBuffer(rows, cols int) *Buffer {
	b := &Buffer{}
	b.Resize(rows, cols)
	return b
}

// Size returns the buffer dimensions as (rows, cols).
func (b *Buffer) Size() (rows, cols int) { return b.rows, b.cols }

// Resize reallocates the grid, discarding its content.
func (b *Buffer) Resize(rows, cols int) {
	b.rows, b.cols = max(rows, 0), max(cols, 0)
	b.cells = make([]Cell, b.rows*b.cols)
}

func (b *Buffer) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return Cell{}
	}
	return b.cells[y*b.cols+x]
}

// Set writes c at (x, y). Writes outside the grid are dropped.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return
	}
	b.cells[y*b.cols+x] = c
	b.writes++
}

// Fill writes c to every cell of r that lies inside the grid.
func (b *Buffer) Fill(r Rect, c Cell) {
	if r.IsEmpty() {
		return
	}
	for y := max(r.Top, 0); y < min(r.Bottom, b.rows); y++ {
		for x := max(r.Left, 0); x < min(r.Right, b.cols); x++ {
			b.cells[y*b.cols+x] = c
			b.writes++
		}
	}
}

// Clear blanks r.
func (b *Buffer) Clear(r Rect) { b.Fill(r, Cell{}) }

// Bounds returns the rect covering the whole grid.
func (b *Buffer) Bounds() Rect { return NewRect(0, 0, b.cols, b.rows) }

// Formatter prints strings into a Buffer at a movable position.
// Printed characters take their color and attributes from Def. Cells past
// the end of the string are filled with Def when FillBlank is set and with
// Blank otherwise.
type Formatter struct {
	Def       Cell
	Blank     Cell
	FillBlank bool

	buf  *Buffer
	x, y int
}

func NewFormatter(b *Buffer, def Cell) *Formatter {
	return &Formatter{Def: def, FillBlank: true, buf: b}
}

func (f *Formatter) Move(x, y int) { f.x, f.y = x, y }

// Print transfers s into a field of width columns starting at the current
// position. The string is truncated to the field and the field is clipped
// to the grid; the position does not advance.
func (f *Formatter) Print(s string, width int) {
	if f.y < 0 || f.y >= f.buf.rows || width <= 0 {
		return
	}
	end := min(f.x+width, f.buf.cols)
	x := f.x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > end {
			break
		}
		c := f.Def
		c.Value = r
		f.buf.Set(x, f.y, c)
		if w == 2 {
			c.Value = continuation
			f.buf.Set(x+1, f.y, c)
		}
		x += w
	}
	pad := f.Blank
	if f.FillBlank {
		pad = f.Def
		pad.Value = 0
	}
	for ; x < end; x++ {
		f.buf.Set(x, f.y, pad)
	}
}
