package ui

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// RowSource supplies the rows of a List or View. Row must be valid for
// every index in [0, Len()).
type RowSource interface {
	Len() int
	Row(i int) string
}

// TableSource supplies the cells of a Table.
type TableSource interface {
	Len() int
	Cell(row, col int) string
}

// Strings is a RowSource over a string slice.
type Strings []string

func (s Strings) Len() int         { return len(s) }
func (s Strings) Row(i int) string { return s[i] }

// rowWidget is the paged, selectable body shared by List, Table and View.
// The Selection, Pager and Ticker may be replaced before the widget is
// drawn for the first time.
type rowWidget struct {
	BasicWidget

	Selection Selection
	Pager     Pager
	Ticker    Ticker

	// FillHighlight extends the selection color across the full row.
	FillHighlight bool
	// InactiveColor colors the selection while the widget is unfocused.
	InactiveColor Color

	width, height int
	focus         bool

	count func() int
	text  func(row int) string
}

func (r *rowWidget) init(count func() int, text func(int) string, sel Selection) {
	r.Selection = sel
	r.Pager = NewPageTracker()
	r.Ticker = NopTicker{}
	r.InactiveColor = ColorInactive
	r.count = count
	r.text = text
}

func (r *rowWidget) Size() (int, int) { return r.width, r.height }

// SetSize sets the widget dimensions; height is the page height.
func (r *rowWidget) SetSize(w, h int) {
	r.width, r.height = max(w, 0), max(h, 0)
	r.Pager.Invalidate()
	r.valid = false
}

func (r *rowWidget) CanFocus() bool { return r.count() != 0 }

func (r *rowWidget) SetFocus(focus bool) {
	if focus && r.count() == 0 {
		return
	}
	r.focus = focus
	if !focus {
		r.Ticker.Reset()
	}
}

func (r *rowWidget) Focused() bool { return r.focus }

func (r *rowWidget) KeyDown(_ rune, vk VKey) bool {
	handled, invalidate := r.Selection.KeyDown(vk, r.height, r.count())
	if !handled {
		return false
	}
	if invalidate {
		r.Pager.Invalidate()
	}
	r.Ticker.Reset()
	r.valid = false
	return true
}

func (r *rowWidget) Invalidate(force bool) {
	if force {
		r.Pager.Invalidate()
	}
	r.Ticker.Reset()
	r.valid = false
}

func (r *rowWidget) Validate() {
	r.Pager.Validate(r.Selection.Pos(), r.height)
	r.valid = true
}

// Pos returns the current row.
func (r *rowWidget) Pos() int { return r.Selection.Pos() }

// SetPos moves the current row to pos, clamped to the data.
func (r *rowWidget) SetPos(pos int) {
	r.Selection.SetPos(clampRow(pos, r.count()))
	r.Invalidate(true)
}

// Refresh must be called after the data source changed size. It clamps the
// current row, drops any mark and repaints the whole page.
func (r *rowWidget) Refresh() {
	n := r.count()
	r.Selection.Reset()
	r.Selection.SetPos(clampRow(r.Selection.Pos(), n))
	if n == 0 {
		r.focus = false
	}
	r.Invalidate(true)
}

// ResetMark drops a rubber band selection.
func (r *rowWidget) ResetMark() {
	if r.Selection.Reset() {
		r.Pager.Invalidate()
		r.valid = false
	}
}

// SelectedText returns the text of the selected rows, one per line.
func (r *rowWidget) SelectedText() string {
	var lines []string
	for i := range r.count() {
		if r.Selection.IsSelected(i) {
			lines = append(lines, r.text(i))
		}
	}
	return strings.Join(lines, "\n")
}

func clampRow(pos, n int) int {
	if n == 0 || pos < 0 {
		return 0
	}
	return min(pos, n-1)
}

// rowStyle returns the cell used to print row i.
func (r *rowWidget) rowStyle(i int) Cell {
	if !r.Selection.IsSelected(i) {
		return Cell{}
	}
	if r.focus {
		return Cell{Color: ColorSelection}
	}
	return Cell{Color: r.InactiveColor}
}

// drawRows repaints the dirty rows of the current page and returns their
// union at full widget width. Rows past the data are blanked.
func (r *rowWidget) drawRows(b *Buffer, fillBlank bool, paint func(f *Formatter, row, y int)) Rect {
	if r.valid {
		return Rect{}
	}
	f := NewFormatter(b, Cell{})
	f.FillBlank = fillBlank

	n := r.count()
	var out Rect
	first, last := r.Pager.Page(r.Selection.Pos(), r.height, n)
	y := r.y
	for i := first; i < last; i, y = i+1, y+1 {
		if !r.Pager.IsDirty(i, r.height) {
			continue
		}
		out = out.Union(NewRect(r.x, y, r.width, 1))
		f.Def = Cell{}
		f.Move(r.x, y)
		if i >= n {
			f.Print("", r.width)
			continue
		}
		paint(f, i, y)
	}
	r.Validate()
	return out
}

// Animate scrolls the selected row when the ticker says so.
func (r *rowWidget) Animate(b *Buffer, elapsed time.Duration) Rect {
	if !r.focus || r.count() == 0 || r.width == 0 {
		return Rect{}
	}
	if r.Ticker.Idle(elapsed) {
		return Rect{}
	}
	row := r.Selection.Pos()
	text := r.text(row)
	if !r.Ticker.IsSet() {
		r.Ticker.Set(text, r.width)
	}
	line := []rune(runewidth.FillRight(text, r.width))
	off := r.Ticker.Next() % len(line)

	y := r.y + r.Pager.PagePos(row, r.height)
	f := NewFormatter(b, Cell{Color: ColorSelection})
	f.Move(r.x, y)
	f.Print(string(line[off:])+string(line[:off]), r.width)
	return NewRect(r.x, y, r.width, 1)
}

// List displays one line of text per row with a selection.
type List struct {
	rowWidget
	src RowSource
}

// NewList returns a list over src using sel; a nil sel selects single rows.
func NewList(src RowSource, sel Selection) *List {
	if sel == nil {
		sel = &SingleSelection{}
	}
	l := &List{src: src}
	l.init(src.Len, src.Row, sel)
	return l
}

func (l *List) Draw(b *Buffer) Rect {
	return l.drawRows(b, l.FillHighlight, func(f *Formatter, row, _ int) {
		f.Def = l.rowStyle(row)
		f.Print(l.src.Row(row), l.width)
	})
}

// Column describes one table column. Columns of zero width are hidden.
type Column struct {
	Width int
}

// Table displays rows split into fixed width columns.
type Table struct {
	rowWidget
	src TableSource

	Columns     []Column
	CellSpacing int
}

func NewTable(src TableSource, sel Selection, columns ...Column) *Table {
	if sel == nil {
		sel = &SingleSelection{}
	}
	t := &Table{src: src, Columns: columns}
	t.init(src.Len, t.rowText, sel)
	return t
}

func (t *Table) rowText(row int) string {
	var cells []string
	for i, c := range t.Columns {
		if c.Width > 0 {
			cells = append(cells, t.src.Cell(row, i))
		}
	}
	return strings.Join(cells, "\t")
}

func (t *Table) Draw(b *Buffer) Rect {
	return t.drawRows(b, true, func(f *Formatter, row, y int) {
		f.Def = t.rowStyle(row)
		x, left := t.x, t.width
		for i, c := range t.Columns {
			if c.Width == 0 {
				continue
			}
			n := min(left, c.Width)
			f.Move(x, y)
			f.Print(t.src.Cell(row, i), n)
			left -= n
			if left == 0 {
				return
			}
			n = min(left, t.CellSpacing)
			f.Move(x+c.Width, y)
			f.Print("", n)
			left -= n
			x += c.Width + t.CellSpacing
			if left == 0 {
				return
			}
		}
		f.Move(x, y)
		f.Print("", left)
	})
}

// View is a read-only pager over text rows. It highlights nothing and
// shows a caret at the current row instead.
type View struct {
	rowWidget
	src RowSource

	ShowCaret bool
}

func NewView(src RowSource) *View {
	v := &View{src: src, ShowCaret: true}
	v.init(src.Len, src.Row, &NoSelection{})
	return v
}

func (v *View) SetCursor(c *Cursor) {
	if !v.ShowCaret {
		c.Visible = false
		return
	}
	c.X = v.x
	c.Y = v.y + v.Pager.PagePos(v.Selection.Pos(), v.height)
	c.Visible = true
}

func (v *View) Draw(b *Buffer) Rect {
	return v.drawRows(b, true, func(f *Formatter, row, _ int) {
		f.Print(v.src.Row(row), v.width)
	})
}
