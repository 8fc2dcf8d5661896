package background

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Budget bounds the work done in a single slice
type Budget struct {
	// Slice is the wall-clock time after which a slice yields
	Slice time.Duration
	// Batch is the number of entities processed before Slice is checked
	Batch int
}

// DefaultBudget yields after 20ms once at least 50 entities were processed
var DefaultBudget = Budget{Slice: 20 * time.Millisecond, Batch: 50}

// Job walks a queue of entities and applies each one to the row at its
// queue position
type Job[E any] struct {
	ID     string
	queue  []E
	index  int
	apply  func(index int, e E)
	budget Budget
	now    func() time.Time
}

// NewJob creates a job over a copy of entities
func NewJob[E any](entities []E, apply func(index int, e E), budget Budget) *Job[E] {
	if budget.Batch <= 0 {
		budget.Batch = DefaultBudget.Batch
	}
	if budget.Slice <= 0 {
		budget.Slice = DefaultBudget.Slice
	}
	return &Job[E]{
		ID:     newJobID(),
		queue:  append([]E(nil), entities...),
		apply:  apply,
		budget: budget,
		now:    time.Now,
	}
}

func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SetClock replaces the time source, for tests
func (j *Job[E]) SetClock(now func() time.Time) {
	j.now = now
}

// Index returns the row position the next entity will be written to
func (j *Job[E]) Index() int { return j.index }

// Pending returns a copy of the entities not yet processed
func (j *Job[E]) Pending() []E { return append([]E(nil), j.queue...) }

// Done reports whether the queue is drained
func (j *Job[E]) Done() bool { return len(j.queue) == 0 }

// Step processes entities until the queue is empty or the slice budget is
// exhausted, and reports whether work remains
func (j *Job[E]) Step() bool {
	started := j.now()
	processed := 0

	for len(j.queue) > 0 {
		e := j.queue[0]
		var zero E
		j.queue[0] = zero
		j.queue = j.queue[1:]

		j.applyOne(j.index, e)
		j.index++
		processed++

		if processed >= j.budget.Batch && j.now().Sub(started) > j.budget.Slice {
			break
		}
	}

	return len(j.queue) > 0
}

// applyOne keeps a misbehaving row update from aborting the slice
func (j *Job[E]) applyOne(index int, e E) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Str("job", j.ID).
				Int("row", index).
				Err(fmt.Errorf("%v", r)).
				Msg("row update failed")
		}
	}()
	j.apply(index, e)
}
