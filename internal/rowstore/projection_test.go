package rowstore

import "testing"

func newTestStore() *Store[testRow] {
	s := New[testRow]()
	s.Reset([]testRow{
		{URL: "a", Visible: true, Size: 3},
		{URL: "b", Visible: false, Size: 1},
		{URL: "c", Visible: true, Size: 2},
	})
	return s
}

func onlyVisible(r *testRow) bool { return r.Visible }

func TestProjection_Filter(t *testing.T) {
	s := newTestStore()
	p := NewProjection(s, onlyVisible)
	defer p.Close()

	if p.Len() != 2 {
		t.Fatalf("Expected 2 visible rows, got %d", p.Len())
	}
	if p.At(1).URL != "c" {
		t.Errorf("Expected c at position 1, got %s", p.At(1).URL)
	}
	if p.ChildIndex(1) != 2 {
		t.Errorf("ChildIndex(1) = %d, expected 2", p.ChildIndex(1))
	}
	if pos, ok := p.FilterIndex(2); !ok || pos != 1 {
		t.Errorf("FilterIndex(2) = %d, %v", pos, ok)
	}
	if _, ok := p.FilterIndex(1); ok {
		t.Error("Hidden row should have no filter index")
	}
	if _, ok := p.FilterIndex(99); ok {
		t.Error("Out of range row should have no filter index")
	}
}

func TestProjection_TracksStoreChanges(t *testing.T) {
	s := newTestStore()
	p := NewProjection(s, onlyVisible)

	if p.Len() != 2 {
		t.Fatalf("Expected 2 visible rows, got %d", p.Len())
	}

	s.Update(1, func(r *testRow) { r.Visible = true })
	if p.Len() != 3 {
		t.Errorf("Expected 3 visible rows after update, got %d", p.Len())
	}

	s.Append(testRow{URL: "d"})
	if p.Len() != 3 {
		t.Errorf("Hidden append should not change visible count, got %d", p.Len())
	}

	p.Close()
	s.Clear()
	if p.Len() != 3 {
		t.Error("Closed projection should no longer observe the store")
	}
}

func TestProjection_SortAndRefilter(t *testing.T) {
	s := newTestStore()
	threshold := 0
	p := NewProjection(s, func(r *testRow) bool { return r.Size > threshold })
	p.SetLess(func(a, b *testRow) bool { return a.Size < b.Size })

	rows := p.Rows()
	if len(rows) != 3 || rows[0].URL != "b" || rows[2].URL != "a" {
		t.Fatalf("Unexpected sorted rows %+v", rows)
	}

	threshold = 1
	if p.Len() != 3 {
		t.Error("Projection should not re-evaluate without Refilter")
	}
	p.Refilter()
	if p.Len() != 2 {
		t.Errorf("Expected 2 rows after refilter, got %d", p.Len())
	}

	p.SetLess(nil)
	if p.At(0).URL != "a" {
		t.Errorf("Expected store order after clearing sort, got %s", p.At(0).URL)
	}
}

func TestProjection_NeverMutatesStore(t *testing.T) {
	s := newTestStore()
	before := s.Rows()
	p := NewProjection(s, onlyVisible)
	p.SetLess(func(a, b *testRow) bool { return a.URL > b.URL })
	_ = p.Rows()

	after := s.Rows()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("row %d changed from %+v to %+v", i, before[i], after[i])
		}
	}
}

func TestProjection_NilPredicate(t *testing.T) {
	s := newTestStore()
	p := NewProjection[testRow](s, nil)
	if p.Len() != s.Len() {
		t.Errorf("nil predicate should show all rows, got %d", p.Len())
	}
}
