package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	hLine          = '─'
	vLine          = '│'
	cornerTopLeft  = '┌'
	cornerTopRight = '┐'
	cornerBotLeft  = '└'
	cornerBotRight = '┘'
)

func hRule(w int) string { return strings.Repeat(string(hLine), max(w, 0)) }

// Text is a one line static label. Its width is fixed by the first
// non-empty content unless set explicitly.
type Text struct {
	BasicWidget
	content string
	width   int
	color   Color
	attr    Attr
}

func NewText(s string) *Text {
	t := &Text{}
	t.SetText(s)
	return t
}

func (t *Text) Text() string { return t.content }

func (t *Text) SetText(s string) {
	if s == t.content {
		return
	}
	t.content = s
	if t.width == 0 {
		t.width = runewidth.StringWidth(s)
	}
	t.valid = false
}

func (t *Text) SetWidth(w int) {
	if w != t.width {
		t.width = w
		t.valid = false
	}
}

func (t *Text) SetColor(c Color) {
	if c != t.color {
		t.color = c
		t.valid = false
	}
}

func (t *Text) SetAttr(a Attr) {
	if a != t.attr {
		t.attr = a
		t.valid = false
	}
}

func (t *Text) Size() (int, int) { return t.width, 1 }

func (t *Text) Draw(b *Buffer) Rect {
	if t.valid {
		return Rect{}
	}
	f := NewFormatter(b, Cell{Color: t.color, Attr: t.attr})
	f.Move(t.x, t.y)
	f.Print(t.content, t.width)
	t.valid = true
	return NewRect(t.x, t.y, t.width, 1)
}

// Button is a focusable label that calls OnClick on Space or Enter.
type Button struct {
	BasicWidget
	label string
	focus bool

	OnClick func()
}

// NewButton creates a new Button with the given label and click handler.
func NewButton(label string, onClick func()) *Button {
	return &Button{label: label, OnClick: onClick}
}

func (b *Button) Label() string { return b.label }

func (b *Button) SetLabel(s string) {
	if s != b.label {
		b.label = s
		b.valid = false
	}
}

func (b *Button) Size() (int, int)    { return runewidth.StringWidth(b.label), 1 }
func (b *Button) CanFocus() bool      { return true }
func (b *Button) SetFocus(focus bool) { b.focus = focus }

func (b *Button) KeyDown(_ rune, vk VKey) bool {
	if isSelectKey(vk) && b.OnClick != nil {
		b.OnClick()
		return true
	}
	return false
}

func (b *Button) Draw(buf *Buffer) Rect {
	if b.valid {
		return Rect{}
	}
	c := Cell{}
	if b.focus {
		c.Color = ColorSelection
	}
	w, _ := b.Size()
	f := NewFormatter(buf, c)
	f.Move(b.x, b.y)
	f.Print(b.label, w)
	b.valid = true
	return NewRect(b.x, b.y, w, 1)
}

// Checkbox is a label followed by a "[*]" or "[ ]" box that toggles on
// Space or Enter.
type Checkbox struct {
	BasicWidget
	label   string
	checked bool
	focus   bool

	// OnToggle is called after the state changed from the keyboard.
	OnToggle func(checked bool)
}

func NewCheckbox(label string, checked bool) *Checkbox {
	return &Checkbox{label: label, checked: checked}
}

func (c *Checkbox) Checked() bool { return c.checked }

func (c *Checkbox) SetChecked(v bool) {
	if v != c.checked {
		c.checked = v
		c.valid = false
	}
}

func (c *Checkbox) Size() (int, int)    { return runewidth.StringWidth(c.label) + 3, 1 }
func (c *Checkbox) CanFocus() bool      { return true }
func (c *Checkbox) SetFocus(focus bool) { c.focus = focus }

func (c *Checkbox) KeyDown(_ rune, vk VKey) bool {
	if !isSelectKey(vk) {
		return false
	}
	c.checked = !c.checked
	c.valid = false
	if c.OnToggle != nil {
		c.OnToggle(c.checked)
	}
	return true
}

func (c *Checkbox) Draw(b *Buffer) Rect {
	if c.valid {
		return Rect{}
	}
	lw := runewidth.StringWidth(c.label)
	f := NewFormatter(b, Cell{})
	f.Move(c.x, c.y)
	f.Print(c.label, lw)

	box := "[ ]"
	if c.checked {
		box = "[*]"
	}
	if c.focus {
		f.Def = Cell{Color: ColorSelection}
	}
	f.Move(c.x+lw, c.y)
	f.Print(box, 3)
	c.valid = true
	return NewRect(c.x, c.y, lw+3, 1)
}

// ProgressBar shows a position within a range as "[=====   ]" with an
// optional centered label.
type ProgressBar struct {
	BasicWidget
	width     int
	low, high int
	pos       int
	label     string
}

func NewProgressBar(width int) *ProgressBar {
	return &ProgressBar{width: width, high: 100}
}

func (p *ProgressBar) Size() (int, int) { return p.width, 1 }

func (p *ProgressBar) SetWidth(w int) {
	p.width = w
	p.valid = false
}

func (p *ProgressBar) SetRange(low, high int) {
	assert(high >= low, "bad range [%d, %d]", low, high)
	p.low, p.high = low, max(high, low)
	p.valid = false
}

func (p *ProgressBar) Range() (low, high int) { return p.low, p.high }

func (p *ProgressBar) SetPos(pos int) {
	if pos != p.pos {
		p.pos = pos
		p.valid = false
	}
}

func (p *ProgressBar) Pos() int { return p.pos }

func (p *ProgressBar) SetLabel(s string) {
	if s != p.label {
		p.label = s
		p.valid = false
	}
}

// filled returns how many of the inner columns are filled.
func (p *ProgressBar) filled() int {
	inner := p.width - 2
	if inner <= 0 || p.high == p.low {
		return 0
	}
	n := (p.pos - p.low) * inner / (p.high - p.low)
	return min(max(n, 0), inner)
}

func (p *ProgressBar) Draw(b *Buffer) Rect {
	if p.valid {
		return Rect{}
	}
	p.valid = true
	if p.width < 2 {
		return Rect{}
	}
	inner := p.width - 2
	fill := p.filled()
	bar := strings.Repeat("=", fill) + strings.Repeat(" ", inner-fill)
	label := runewidth.Truncate(p.label, inner, "")
	lw := runewidth.StringWidth(label)
	start := (inner - lw) / 2
	row := "[" + bar[:start] + label + bar[start+lw:] + "]"

	f := NewFormatter(b, Cell{})
	f.Move(p.x, p.y)
	f.Print(row, p.width)
	return NewRect(p.x, p.y, p.width, 1)
}

// Divider is a horizontal rule.
type Divider struct {
	BasicWidget
	width int
}

func NewDivider(width int) *Divider { return &Divider{width: width} }

func (d *Divider) Size() (int, int) { return d.width, 1 }

func (d *Divider) Draw(b *Buffer) Rect {
	if d.valid {
		return Rect{}
	}
	f := NewFormatter(b, Cell{Color: ColorStatic})
	f.Move(d.x, d.y)
	f.Print(hRule(d.width), d.width)
	d.valid = true
	return NewRect(d.x, d.y, d.width, 1)
}

// Box draws a border with an optional title. Place it before the widgets
// it frames so they paint over its interior.
type Box struct {
	BasicWidget
	w, h  int
	Title string
}

func NewBox(w, h int, title string) *Box {
	return &Box{w: w, h: h, Title: title}
}

func (bx *Box) Size() (int, int) { return bx.w, bx.h }

func (bx *Box) Draw(b *Buffer) Rect {
	if bx.valid {
		return Rect{}
	}
	bx.valid = true
	// Too small to draw a border
	if bx.w < 2 || bx.h < 2 {
		return Rect{}
	}
	c := Cell{Color: ColorStatic}
	f := NewFormatter(b, c)
	top := string(cornerTopLeft) + hRule(bx.w-2) + string(cornerTopRight)
	bottom := string(cornerBotLeft) + hRule(bx.w-2) + string(cornerBotRight)
	f.Move(bx.x, bx.y)
	f.Print(top, bx.w)
	f.Move(bx.x, bx.y+bx.h-1)
	f.Print(bottom, bx.w)
	for y := bx.y + 1; y < bx.y+bx.h-1; y++ {
		c.Value = vLine
		b.Set(bx.x, y, c)
		b.Set(bx.x+bx.w-1, y, c)
	}
	if bx.Title != "" {
		title := runewidth.Truncate(bx.Title, bx.w-2, "")
		f.Move(bx.x+1, bx.y)
		f.Print(title, runewidth.StringWidth(title))
	}
	return NewRect(bx.x, bx.y, bx.w, bx.h)
}
