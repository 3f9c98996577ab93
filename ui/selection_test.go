package ui

import "testing"

func TestSingleSelection_Move(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		vk         VKey
		pageHeight int
		rows       int
		want       int
	}{
		{"up wraps", 0, VKMoveUp, 10, 20, 19},
		{"down wraps", 19, VKMoveDown, 10, 20, 0},
		{"down", 3, VKMoveDown, 10, 20, 4},
		{"page down", 0, VKMovePageDown, 10, 20, 10},
		{"page down clamps", 0, VKMovePageDown, 10, 15, 14},
		{"page up clamps", 4, VKMovePageUp, 10, 15, 0},
		{"end", 0, VKMoveEnd, 10, 25, 24},
		{"home", 12, VKMoveHome, 10, 25, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SingleSelection{}
			s.SetPos(tt.start)
			handled, _ := s.KeyDown(tt.vk, tt.pageHeight, tt.rows)
			if !handled {
				t.Fatalf("KeyDown(%v) not handled", tt.vk)
			}
			if got := s.Pos(); got != tt.want {
				t.Errorf("Pos() = %d, want %d", got, tt.want)
			}
			if !s.IsSelected(tt.want) || s.IsSelected(tt.want+1) {
				t.Errorf("IsSelected() wrong around %d", tt.want)
			}
		})
	}
}

func TestSingleSelection_Select(t *testing.T) {
	selected, changed := 0, 0
	s := &SingleSelection{
		OnSelect:    func() { selected++ },
		OnRowChange: func() { changed++ },
	}
	if handled, _ := s.KeyDown(VKActionEnter, 10, 5); handled {
		t.Error("select key should report not handled")
	}
	if selected != 1 {
		t.Errorf("OnSelect called %d times, want 1", selected)
	}
	s.KeyDown(VKMoveHome, 10, 5)
	if changed != 0 {
		t.Errorf("OnRowChange fired without a row change")
	}
	s.KeyDown(VKMoveDown, 10, 5)
	if changed != 1 {
		t.Errorf("OnRowChange called %d times, want 1", changed)
	}
}

func TestSelection_Empty(t *testing.T) {
	for _, s := range []Selection{&SingleSelection{}, &MultiSelection{}, NewDynamicSelection(SelectMulti), &NoSelection{}} {
		if handled, _ := s.KeyDown(VKMoveDown, 10, 0); handled {
			t.Errorf("%T: KeyDown() with no rows handled", s)
		}
		if handled, _ := s.KeyDown(VKMoveDown, 0, 10); handled {
			t.Errorf("%T: KeyDown() with zero page height handled", s)
		}
		if s.Pos() != 0 {
			t.Errorf("%T: Pos() = %d, want 0", s, s.Pos())
		}
	}
}

func TestMultiSelection_Range(t *testing.T) {
	s := &MultiSelection{}
	s.KeyDown(VKToggleMark, 10, 20)
	for range 3 {
		s.KeyDown(VKMoveDown, 10, 20)
	}
	if start, end := s.Range(); start != 0 || end != 4 {
		t.Errorf("Range() = (%d, %d), want (0, 4)", start, end)
	}
	for row, want := range []bool{true, true, true, true, false} {
		if got := s.IsSelected(row); got != want {
			t.Errorf("IsSelected(%d) = %v, want %v", row, got, want)
		}
	}
	s.Reset()
	if start, end := s.Range(); start != 3 || end != 4 {
		t.Errorf("Range() after Reset = (%d, %d), want (3, 4)", start, end)
	}
}

func TestMultiSelection_RubberBandUp(t *testing.T) {
	s := &MultiSelection{}
	s.SetPos(5)
	s.KeyDown(VKToggleMark, 10, 20)
	s.KeyDown(VKMoveUp, 10, 20)
	s.KeyDown(VKMoveUp, 10, 20)
	if start, end := s.Range(); start != 3 || end != 6 {
		t.Errorf("Range() = (%d, %d), want (3, 6)", start, end)
	}
}

func TestMultiSelection_Keys(t *testing.T) {
	s := &MultiSelection{}
	if handled, _ := s.KeyDown(VKMoveUp, 10, 20); !handled || s.Pos() != 0 {
		t.Errorf("up at top: handled %v, Pos() = %d, want clamp at 0", handled, s.Pos())
	}
	s.KeyDown(VKMoveEnd, 10, 20)
	s.KeyDown(VKMoveDown, 10, 20)
	if s.Pos() != 19 {
		t.Errorf("down at bottom: Pos() = %d, want 19", s.Pos())
	}

	if _, inv := s.KeyDown(VKToggleMark, 10, 20); inv {
		t.Error("setting the mark should not request invalidation")
	}
	if _, inv := s.KeyDown(VKToggleMark, 10, 20); !inv {
		t.Error("clearing the mark should request invalidation")
	}

	if handled, _ := s.KeyDown(VKActionSpace, 10, 20); handled {
		t.Error("select without mark should report not handled")
	}
	s.KeyDown(VKToggleMark, 10, 20)
	handled, inv := s.KeyDown(VKActionSpace, 10, 20)
	if !handled || !inv || s.Marked() {
		t.Errorf("select with mark: handled %v, invalidate %v, marked %v", handled, inv, s.Marked())
	}
}

func TestDynamicSelection_Mode(t *testing.T) {
	s := NewDynamicSelection(SelectSingle)
	s.KeyDown(VKMoveUp, 10, 20)
	if s.Pos() != 19 {
		t.Errorf("single mode up: Pos() = %d, want 19", s.Pos())
	}
	s.KeyDown(VKToggleMark, 10, 20)
	s.KeyDown(VKMoveUp, 10, 20)
	if start, end := s.Range(); start != 18 || end != 19 {
		t.Errorf("single mode Range() = (%d, %d), want (18, 19)", start, end)
	}

	s.SetMode(SelectMulti)
	s.KeyDown(VKToggleMark, 10, 20)
	s.KeyDown(VKMoveDown, 10, 20)
	s.KeyDown(VKMoveDown, 10, 20)
	if s.Pos() != 19 {
		t.Errorf("multi mode down: Pos() = %d, want clamp at 19", s.Pos())
	}
	if start, end := s.Range(); start != 18 || end != 20 {
		t.Errorf("multi mode Range() = (%d, %d), want (18, 20)", start, end)
	}
	s.SetMode(SelectSingle)
	if s.IsSelected(18) {
		t.Error("switching mode should drop the mark")
	}
}
