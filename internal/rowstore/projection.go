package rowstore

import "sort"

// Projection is a read-only filtered and optionally sorted view of a Store.
// Any store change marks it dirty; the view is recomputed on the next read.
type Projection[R any] struct {
	store       *Store[R]
	visible     func(r *R) bool
	less        func(a, b *R) bool
	unsubscribe func()

	// When dirty is true, ensureView recomputes index and reverse
	dirty   bool
	index   []int // projection position -> store index
	reverse []int // store index -> projection position, -1 if hidden
}

// NewProjection creates a projection over store. A nil visible func shows
// every row.
func NewProjection[R any](store *Store[R], visible func(r *R) bool) *Projection[R] {
	p := &Projection[R]{
		store:   store,
		visible: visible,
		dirty:   true,
	}
	p.unsubscribe = store.Subscribe(func(Change) { p.dirty = true })
	return p
}

// Close detaches the projection from its store
func (p *Projection[R]) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// SetVisible replaces the visibility predicate
func (p *Projection[R]) SetVisible(visible func(r *R) bool) {
	p.visible = visible
	p.dirty = true
}

// SetLess replaces the sort order; nil keeps store order
func (p *Projection[R]) SetLess(less func(a, b *R) bool) {
	p.less = less
	p.dirty = true
}

// Refilter forces the visibility predicate to be re-evaluated for every row
func (p *Projection[R]) Refilter() {
	p.dirty = true
}

func (p *Projection[R]) ensureView() {
	if !p.dirty {
		return
	}

	n := p.store.Len()
	index := make([]int, 0, n)
	p.store.Each(func(i int, r *R) bool {
		if p.visible == nil || p.visible(r) {
			index = append(index, i)
		}
		return true
	})

	if p.less != nil {
		sort.SliceStable(index, func(a, b int) bool {
			return p.less(&p.store.rows[index[a]], &p.store.rows[index[b]])
		})
	}

	reverse := make([]int, n)
	for i := range reverse {
		reverse[i] = -1
	}
	for pos, child := range index {
		reverse[child] = pos
	}

	p.index = index
	p.reverse = reverse
	p.dirty = false
}

// Len returns the number of visible rows
func (p *Projection[R]) Len() int {
	p.ensureView()
	return len(p.index)
}

// At returns the visible row at projection position i
func (p *Projection[R]) At(i int) R {
	p.ensureView()
	return p.store.At(p.index[i])
}

// ChildIndex converts a projection position to a store index
func (p *Projection[R]) ChildIndex(i int) int {
	p.ensureView()
	return p.index[i]
}

// FilterIndex converts a store index to a projection position
func (p *Projection[R]) FilterIndex(child int) (int, bool) {
	p.ensureView()
	if child < 0 || child >= len(p.reverse) || p.reverse[child] < 0 {
		return -1, false
	}
	return p.reverse[child], true
}

// Rows returns copies of all visible rows in projection order
func (p *Projection[R]) Rows() []R {
	p.ensureView()
	rows := make([]R, len(p.index))
	for pos, child := range p.index {
		rows[pos] = p.store.At(child)
	}
	return rows
}
