package background

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Runner owns at most one job and its scheduled handle
type Runner[E any] struct {
	scheduler Scheduler
	budget    Budget
	now       func() time.Time

	job    *Job[E]
	handle Handle
}

// NewRunner creates a runner scheduling jobs on s
func NewRunner[E any](s Scheduler, budget Budget) *Runner[E] {
	return &Runner[E]{
		scheduler: s,
		budget:    budget,
		now:       time.Now,
	}
}

// SetClock replaces the time source of future jobs, for tests
func (r *Runner[E]) SetClock(now func() time.Time) {
	r.now = now
}

// Active returns the unfinished job, or nil
func (r *Runner[E]) Active() *Job[E] {
	return r.job
}

// Start cancels the current job and schedules a new one over entities.
// onDone is called from the last step once the queue is drained.
func (r *Runner[E]) Start(entities []E, apply func(index int, e E), onDone func()) *Job[E] {
	r.Cancel()

	job := NewJob(entities, apply, r.budget)
	job.SetClock(r.now)
	r.job = job

	log.Debug().Str("job", job.ID).Int("entities", len(entities)).Msg("background update scheduled")

	r.handle = r.scheduler.Schedule(func() bool {
		if r.job != job {
			return false
		}
		if job.Step() {
			return true
		}

		r.job = nil
		r.handle = nil
		log.Debug().Str("job", job.ID).Int("rows", job.Index()).Msg("background update finished")
		if onDone != nil {
			onDone()
		}
		return false
	})

	return job
}

// Cancel deregisters the current job, if any
func (r *Runner[E]) Cancel() {
	if r.handle != nil {
		r.handle.Cancel()
	}
	r.job = nil
	r.handle = nil
}
