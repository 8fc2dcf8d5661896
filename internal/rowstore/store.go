package rowstore

// ChangeKind describes how a store was modified
type ChangeKind int

const (
	// ChangeReset means the whole store was cleared or replaced
	ChangeReset ChangeKind = iota

	// ChangeInsert means a row was appended at Index
	ChangeInsert

	// ChangeUpdate means fields of the row at Index were rewritten
	ChangeUpdate

	// ChangeRemove means the row at Index was removed
	ChangeRemove
)

// Change is delivered to listeners after every store mutation
type Change struct {
	Kind  ChangeKind
	Index int
}

// Store is an ordered mutable sequence of rows
type Store[R any] struct {
	rows      []R
	listeners map[int]func(Change)
	nextID    int
}

// New creates an empty store
func New[R any]() *Store[R] {
	return &Store[R]{listeners: make(map[int]func(Change))}
}

// Subscribe registers fn for change notifications and returns a function
// that removes the registration
func (s *Store[R]) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store[R]) notify(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

// Len returns the number of rows
func (s *Store[R]) Len() int { return len(s.rows) }

// At returns a copy of the row at index i
func (s *Store[R]) At(i int) R { return s.rows[i] }

// Append adds a row at the end and returns its index
func (s *Store[R]) Append(r R) int {
	s.rows = append(s.rows, r)
	idx := len(s.rows) - 1
	s.notify(Change{Kind: ChangeInsert, Index: idx})
	return idx
}

// Set replaces the row at index i
func (s *Store[R]) Set(i int, r R) {
	s.rows[i] = r
	s.notify(Change{Kind: ChangeUpdate, Index: i})
}

// Update rewrites the row at index i in place
func (s *Store[R]) Update(i int, fn func(r *R)) {
	fn(&s.rows[i])
	s.notify(Change{Kind: ChangeUpdate, Index: i})
}

// Remove deletes the row at index i
func (s *Store[R]) Remove(i int) {
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	s.notify(Change{Kind: ChangeRemove, Index: i})
}

// Clear removes all rows
func (s *Store[R]) Clear() {
	s.rows = nil
	s.notify(Change{Kind: ChangeReset, Index: -1})
}

// Reset replaces all rows with rows
func (s *Store[R]) Reset(rows []R) {
	s.rows = append([]R(nil), rows...)
	s.notify(Change{Kind: ChangeReset, Index: -1})
}

// Find returns the index of the first row matching match
func (s *Store[R]) Find(match func(r *R) bool) (int, bool) {
	for i := range s.rows {
		if match(&s.rows[i]) {
			return i, true
		}
	}
	return -1, false
}

// Each calls fn for every row in order until fn returns false.
// The row pointer is only valid during the call and must not be written.
func (s *Store[R]) Each(fn func(i int, r *R) bool) {
	for i := range s.rows {
		if !fn(i, &s.rows[i]) {
			return
		}
	}
}

// Rows returns a copy of all rows
func (s *Store[R]) Rows() []R {
	return append([]R(nil), s.rows...)
}
