package ui

// Pager maps a row position onto fixed height pages and tracks which rows
// of the current page are stale.
type Pager interface {
	// Page returns the rows [first, last) of the page holding pos. The
	// range may extend past rowCount; callers render those rows blank.
	Page(pos, pageHeight, rowCount int) (first, last int)
	// Visible is Page clipped to rowCount.
	Visible(pos, pageHeight, rowCount int) (first, last int)
	IsDirty(pos, pageHeight int) bool
	Validate(pos, pageHeight int)
	Invalidate()
	// PagePos returns the offset of pos within its page.
	PagePos(pos, pageHeight int) int
}

// PageTracker is the default Pager. A page repaints entirely when the
// current page differs from the last validated one; within a page only the
// previous and the current position are dirty, which covers single step
// moves. Larger jumps inside a page need an explicit Invalidate.
type PageTracker struct {
	prev, pos int
	page      int
}

func NewPageTracker() *PageTracker {
	return &PageTracker{page: -1}
}

func (p *PageTracker) Page(pos, pageHeight, rowCount int) (int, int) {
	if pageHeight <= 0 {
		return 0, 0
	}
	first := pos / pageHeight * pageHeight
	if pos != p.pos {
		p.prev, p.pos = p.pos, pos
	}
	return first, first + pageHeight
}

func (p *PageTracker) Visible(pos, pageHeight, rowCount int) (int, int) {
	if pageHeight <= 0 {
		return 0, 0
	}
	first := pos / pageHeight * pageHeight
	return first, first + max(min(rowCount-first, pageHeight), 0)
}

func (p *PageTracker) IsDirty(pos, pageHeight int) bool {
	if pageHeight <= 0 {
		return false
	}
	if pos/pageHeight != p.page {
		return true
	}
	return pos == p.prev || pos == p.pos
}

func (p *PageTracker) Validate(pos, pageHeight int) {
	if pageHeight > 0 {
		p.page = pos / pageHeight
	}
}

func (p *PageTracker) Invalidate() { p.page = -1 }

func (p *PageTracker) PagePos(pos, pageHeight int) int {
	if pageHeight <= 0 {
		return 0
	}
	return pos % pageHeight
}
