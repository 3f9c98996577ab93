package ui

import "github.com/mattn/go-runewidth"

// menuSpacing is the number of columns between top level labels.
const menuSpacing = 1

type MenuItem struct {
	Label     string
	ID        int
	Separator bool
}

// Submenu is a top level menu entry and its drop-down items.
type Submenu struct {
	Label string
	Items []MenuItem
}

// Menu is a menu bar with one drop-down list per entry. It never takes
// focus; a Window routes keys to it while it is open and paints it above
// every other widget.
type Menu struct {
	BasicWidget

	menus []Submenu
	open  bool
	sub   int
	item  int

	// size of the last draw, -1 before the first one
	width, height int

	dropdown Rect // drop-down painted by the last draw
	pending  Rect // vacated area not yet reported by Erase

	// OnChosen is called with the item ID when an open menu is closed by
	// Space or Enter.
	OnChosen func(id int)
}

func NewMenu(menus ...Submenu) *Menu {
	m := &Menu{}
	m.SetMenu(menus)
	return m
}

// SetMenu replaces the menu model and closes the menu.
func (m *Menu) SetMenu(menus []Submenu) {
	m.menus = menus
	m.open = false
	m.sub, m.item = 0, 0
	m.width, m.height = -1, -1
	m.pending = m.pending.Union(m.dropdown)
	m.valid = false
}

func (m *Menu) IsOpen() bool  { return m.open }
func (m *Menu) IsEmpty() bool { return len(m.menus) == 0 }

// Selected returns the current submenu and item indices.
func (m *Menu) Selected() (sub, item int) { return m.sub, m.item }

// Open opens submenu i.
func (m *Menu) Open(i int) {
	assert(i >= 0 && i < len(m.menus), "no submenu %d", i)
	if i < 0 || i >= len(m.menus) {
		return
	}
	m.sub = i
	m.item = m.firstItem()
	m.open = true
	m.valid = false
}

// Close closes the menu without choosing anything.
func (m *Menu) Close() {
	m.open = false
	m.sub, m.item = 0, 0
	m.pending = m.pending.Union(m.dropdown)
	m.valid = false
}

func (m *Menu) firstItem() int {
	for i, it := range m.menus[m.sub].Items {
		if !it.Separator {
			return i
		}
	}
	return 0
}

// barWidth is the width of the closed menu bar.
func (m *Menu) barWidth() int {
	w := 0
	for _, s := range m.menus {
		w += runewidth.StringWidth(s.Label)
	}
	if len(m.menus) > 0 {
		w += (len(m.menus) - 1) * menuSpacing
	}
	return w
}

func (m *Menu) Size() (int, int) {
	if m.width < 0 {
		return m.barWidth(), 1
	}
	return m.width, m.height
}

func (m *Menu) Draw(b *Buffer) Rect {
	if m.valid {
		return Rect{}
	}
	f := NewFormatter(b, Cell{Color: ColorMenuItem})
	out := Rect{}
	m.dropdown = Rect{}

	x := m.x
	for i, s := range m.menus {
		w := runewidth.StringWidth(s.Label)
		current := m.open && m.sub == i
		f.Def = Cell{Color: ColorMenuItem}
		if current {
			f.Def = Cell{Color: ColorSelection}
		}
		f.Move(x, m.y)
		f.Print(s.Label, w)
		out = out.Union(NewRect(x, m.y, w, 1))

		if current && len(s.Items) > 0 {
			m.dropdown = m.drawItems(f, s.Items, x)
			out = out.Union(m.dropdown)
		}
		x += w
		if i < len(m.menus)-1 {
			f.Def = Cell{}
			f.Move(x, m.y)
			f.Print("", menuSpacing)
			x += menuSpacing
		}
	}
	out = out.Union(NewRect(m.x, m.y, x-m.x, 1))
	if out.IsEmpty() {
		m.width, m.height = 0, 0
	} else {
		m.width, m.height = out.Right-m.x, out.Bottom-m.y
	}
	m.valid = true
	return out
}

// drawItems paints the drop-down of a submenu whose label starts at x and
// returns its rect.
func (m *Menu) drawItems(f *Formatter, items []MenuItem, x int) Rect {
	w := 0
	for _, it := range items {
		w = max(w, runewidth.StringWidth(it.Label))
	}
	y := m.y + 1
	for i, it := range items {
		f.Def = Cell{Color: ColorMenuItem}
		if i == m.item && !it.Separator {
			f.Def = Cell{Color: ColorSelection}
		}
		f.Move(x, y+i)
		if it.Separator {
			f.Print(hRule(w), w)
			continue
		}
		f.Print(it.Label, w)
	}
	return NewRect(x, y, w, len(items))
}

func (m *Menu) Erase() Rect {
	r := m.pending
	m.pending = Rect{}
	return r
}

func (m *Menu) KeyDown(_ rune, vk VKey) bool {
	if len(m.menus) == 0 || vk == VKNone {
		return false
	}
	items := m.menus[m.sub].Items
	switch vk {
	case VKMoveUp:
		if !m.open || len(items) == 0 {
			return true
		}
		for range items {
			m.item = (m.item - 1 + len(items)) % len(items)
			if !items[m.item].Separator {
				break
			}
		}
	case VKMoveDown:
		if !m.open || len(items) == 0 {
			return true
		}
		for range items {
			m.item = (m.item + 1) % len(items)
			if !items[m.item].Separator {
				break
			}
		}
	case VKMoveNext:
		m.sub = (m.sub + 1) % len(m.menus)
		m.item = m.firstItem()
		m.pending = m.pending.Union(m.dropdown)
	case VKMovePrev:
		m.sub = (m.sub - 1 + len(m.menus)) % len(m.menus)
		m.item = m.firstItem()
		m.pending = m.pending.Union(m.dropdown)
	case VKActionSpace, VKActionEnter:
		wasOpen, item := m.open, m.item
		m.open = !m.open
		if !m.open {
			m.item = 0
			m.pending = m.pending.Union(m.dropdown)
		} else {
			m.item = m.firstItem()
		}
		if wasOpen && item < len(items) && m.OnChosen != nil {
			m.OnChosen(items[item].ID)
		}
	default:
		return true
	}
	m.valid = false
	return true
}
