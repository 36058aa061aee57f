package pagination

import "testing"

func TestPageCount(t *testing.T) {
	cases := []struct {
		count, perPage, want int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
		{10, 0, 10}, // perPage clamps to 1
		{3, -2, 3},
	}
	for _, tc := range cases {
		p := New(tc.count, tc.perPage)
		if got := p.PageCount(); got != tc.want {
			t.Errorf("New(%d, %d).PageCount() = %d, want %d", tc.count, tc.perPage, got, tc.want)
		}
	}
}

func TestBounds(t *testing.T) {
	p := New(11, 5)
	if start, end := p.Bounds(); start != 0 || end != 5 {
		t.Errorf("page 0 bounds = [%d, %d)", start, end)
	}
	p.SetPage(2)
	if start, end := p.Bounds(); start != 10 || end != 11 {
		t.Errorf("last page bounds = [%d, %d)", start, end)
	}
}

func TestNextPrevClamp(t *testing.T) {
	p := New(12, 5)
	if p.Prev() {
		t.Error("Prev on first page should report no change")
	}
	if !p.Next() || p.Page() != 1 {
		t.Errorf("Next failed, page = %d", p.Page())
	}
	p.SetPage(99)
	if p.Page() != 2 {
		t.Errorf("SetPage should clamp to last page, got %d", p.Page())
	}
	if p.Next() {
		t.Error("Next on last page should report no change")
	}
	if !p.HasPrev() || p.HasNext() {
		t.Errorf("last page: HasPrev=%v HasNext=%v", p.HasPrev(), p.HasNext())
	}
}

func TestEmptyCollection(t *testing.T) {
	p := New(0, 10)
	if p.PageCount() != 1 {
		t.Errorf("empty collection should have one page, got %d", p.PageCount())
	}
	if start, end := p.Bounds(); start != 0 || end != 0 {
		t.Errorf("empty page bounds = [%d, %d)", start, end)
	}
	if p.Next() || p.Prev() {
		t.Error("navigation on a single empty page should not change the page")
	}
}

func TestResizeClampsPage(t *testing.T) {
	p := New(20, 5)
	p.SetPage(3)
	p.Resize(6)
	if p.Page() != 1 {
		t.Errorf("page after shrink = %d, want 1", p.Page())
	}
	p.Resize(0)
	if p.Page() != 0 || p.PageCount() != 1 {
		t.Errorf("page after emptying = %d, pages = %d", p.Page(), p.PageCount())
	}
}

func TestPageFor(t *testing.T) {
	p := New(12, 5)
	cases := []struct{ index, want int }{
		{0, 0}, {4, 0}, {5, 1}, {11, 2}, {-1, 0}, {50, 2},
	}
	for _, tc := range cases {
		if got := p.PageFor(tc.index); got != tc.want {
			t.Errorf("PageFor(%d) = %d, want %d", tc.index, got, tc.want)
		}
	}
}

func TestSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	p := New(len(items), 3)
	p.SetPage(2)
	got := Slice(p, items)
	if len(got) != 1 || got[0] != "g" {
		t.Errorf("last page slice = %v", got)
	}
	if Slice(New(0, 3), []string(nil)) != nil {
		t.Error("empty slice should be nil")
	}
}
