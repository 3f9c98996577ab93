package ui

// Selection is the row selection policy of a container widget.
type Selection interface {
	// KeyDown applies vk to the selection over rowCount rows shown pageHeight
	// rows at a time. It reports whether the key was handled and whether the
	// whole page must be repainted.
	KeyDown(vk VKey, pageHeight, rowCount int) (handled, invalidate bool)
	IsSelected(row int) bool
	Pos() int
	SetPos(pos int)
	// Reset drops any transient selection state and reports whether the
	// rows must be repainted.
	Reset() bool
}

// moveRow applies a movement key to row. Up and down wrap around when wrap
// is set and clamp otherwise; page moves always clamp.
func moveRow(vk VKey, row, pageHeight, rowCount int, wrap bool) (int, bool) {
	switch vk {
	case VKMoveUp:
		switch {
		case row > 0:
			row--
		case wrap:
			row = rowCount - 1
		}
	case VKMoveDown:
		switch {
		case row < rowCount-1:
			row++
		case wrap:
			row = 0
		}
	case VKMoveHome:
		row = 0
	case VKMoveEnd:
		row = rowCount - 1
	case VKMovePageUp:
		row = max(row-pageHeight, 0)
	case VKMovePageDown:
		row = min(row+pageHeight, rowCount-1)
	default:
		return row, false
	}
	return row, true
}

// SingleSelection selects exactly the current row. Moving up from the first
// row wraps to the last and vice versa.
type SingleSelection struct {
	row int

	// OnSelect is called when Space or Enter is pressed. The key is still
	// reported as unhandled so the caller may act on it too.
	OnSelect func()
	// OnRowChange is called after a handled key moved the current row.
	OnRowChange func()
}

func (s *SingleSelection) KeyDown(vk VKey, pageHeight, rowCount int) (bool, bool) {
	if rowCount == 0 || pageHeight == 0 {
		return false, false
	}
	if isSelectKey(vk) {
		if s.OnSelect != nil {
			s.OnSelect()
		}
		return false, false
	}
	row, ok := moveRow(vk, s.row, pageHeight, rowCount, true)
	if !ok {
		return false, false
	}
	old := s.row
	s.row = row
	if old != row && s.OnRowChange != nil {
		s.OnRowChange()
	}
	return true, false
}

func (s *SingleSelection) IsSelected(row int) bool { return row == s.row }
func (s *SingleSelection) Pos() int                { return s.row }
func (s *SingleSelection) SetPos(pos int)          { s.row = pos }
func (s *SingleSelection) Reset() bool             { return false }

// MultiSelection selects a contiguous range between a mark row and the
// current row. Movement clamps at both ends.
// The zero value is ready to use.
type MultiSelection struct {
	row    int
	mark   int
	marked bool

	OnSelect    func()
	OnRowChange func()
}

func (s *MultiSelection) KeyDown(vk VKey, pageHeight, rowCount int) (bool, bool) {
	if rowCount == 0 || pageHeight == 0 {
		return false, false
	}
	old := s.row
	invalidate := false
	switch {
	case vk == VKToggleMark:
		s.mark, s.marked = s.row, !s.marked
		invalidate = !s.marked
	case isSelectKey(vk):
		if s.OnSelect != nil {
			s.OnSelect()
		}
		if !s.marked {
			return false, false
		}
		s.marked = false
		invalidate = true
	default:
		row, ok := moveRow(vk, s.row, pageHeight, rowCount, false)
		if !ok {
			return false, false
		}
		s.row = row
	}
	if old != s.row && s.OnRowChange != nil {
		s.OnRowChange()
	}
	return true, invalidate
}

func (s *MultiSelection) IsSelected(row int) bool {
	start, end := s.Range()
	return row >= start && row < end
}

// Range returns the selected rows as the half-open interval [start, end).
func (s *MultiSelection) Range() (start, end int) {
	return markRange(s.row, s.mark, s.marked)
}

// Marked reports whether a rubber band is active.
func (s *MultiSelection) Marked() bool { return s.marked }

func (s *MultiSelection) Pos() int       { return s.row }
func (s *MultiSelection) SetPos(pos int) { s.row = pos }

func (s *MultiSelection) Reset() bool {
	s.marked = false
	return true
}

func markRange(row, mark int, marked bool) (int, int) {
	if !marked {
		return row, row + 1
	}
	return min(row, mark), max(row, mark) + 1
}

// SelectMode chooses the behavior of a DynamicSelection.
type SelectMode int

const (
	SelectSingle SelectMode = iota
	SelectMulti
)

// DynamicSelection switches between single and multi selection at runtime.
type DynamicSelection struct {
	Mode SelectMode

	row    int
	mark   int
	marked bool

	OnSelect    func()
	OnRowChange func()
}

func NewDynamicSelection(mode SelectMode) *DynamicSelection {
	return &DynamicSelection{Mode: mode}
}

func (s *DynamicSelection) KeyDown(vk VKey, pageHeight, rowCount int) (bool, bool) {
	if rowCount == 0 || pageHeight == 0 {
		return false, false
	}
	multi := s.Mode == SelectMulti
	old := s.row
	invalidate := false
	switch {
	case vk == VKToggleMark:
		if multi {
			s.mark, s.marked = s.row, !s.marked
		}
		invalidate = !s.marked
	case isSelectKey(vk):
		if s.OnSelect != nil {
			s.OnSelect()
		}
		if !s.marked {
			return false, false
		}
		s.marked = false
		invalidate = true
	default:
		row, ok := moveRow(vk, s.row, pageHeight, rowCount, !multi)
		if !ok {
			return false, false
		}
		s.row = row
	}
	if old != s.row && s.OnRowChange != nil {
		s.OnRowChange()
	}
	return true, invalidate
}

// SetMode switches the selection mode, dropping any mark. It reports
// whether the selection must be repainted.
func (s *DynamicSelection) SetMode(mode SelectMode) bool {
	s.Mode = mode
	return s.Reset()
}

func (s *DynamicSelection) IsSelected(row int) bool {
	start, end := s.Range()
	return row >= start && row < end
}

func (s *DynamicSelection) Range() (start, end int) {
	if s.Mode == SelectSingle {
		return s.row, s.row + 1
	}
	return markRange(s.row, s.mark, s.marked)
}

func (s *DynamicSelection) Pos() int       { return s.row }
func (s *DynamicSelection) SetPos(pos int) { s.row = pos }

func (s *DynamicSelection) Reset() bool {
	s.marked = false
	return true
}

// NoSelection tracks a current row without highlighting it. It is used
// by read-only views; movement clamps.
type NoSelection struct {
	row int

	OnRowChange func()
}

func (s *NoSelection) KeyDown(vk VKey, pageHeight, rowCount int) (bool, bool) {
	if rowCount == 0 || pageHeight == 0 {
		return false, false
	}
	row, ok := moveRow(vk, s.row, pageHeight, rowCount, false)
	if !ok {
		return false, false
	}
	old := s.row
	s.row = row
	if old != row && s.OnRowChange != nil {
		s.OnRowChange()
	}
	return true, false
}

func (s *NoSelection) IsSelected(int) bool { return false }
func (s *NoSelection) Pos() int            { return s.row }
func (s *NoSelection) SetPos(pos int)      { s.row = pos }
func (s *NoSelection) Reset() bool         { return false }
