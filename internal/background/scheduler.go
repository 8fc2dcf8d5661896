package background

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle is a scheduled step function
type Handle interface {
	// Cancel deregisters the step. Once Cancel returns, the step is not
	// called again.
	Cancel()
}

// Scheduler re-arms step until it returns false or is cancelled
type Scheduler interface {
	Schedule(step func() bool) Handle
}

// LoopScheduler drives steps from a goroutine, running each step through
// run (typically fyne.DoAndWait) so it executes on the UI goroutine
type LoopScheduler struct {
	run   func(func())
	yield time.Duration
}

// NewLoopScheduler creates a scheduler that executes steps via run and
// sleeps for yield between consecutive steps
func NewLoopScheduler(run func(func()), yield time.Duration) *LoopScheduler {
	if run == nil {
		run = func(fn func()) { fn() }
	}
	return &LoopScheduler{run: run, yield: yield}
}

type loopHandle struct {
	cancelled atomic.Bool
}

func (h *loopHandle) Cancel() { h.cancelled.Store(true) }

// Schedule starts driving step
func (s *LoopScheduler) Schedule(step func() bool) Handle {
	h := &loopHandle{}

	go func() {
		for {
			more := false
			s.run(func() {
				if h.cancelled.Load() {
					return
				}
				more = step()
			})
			if !more || h.cancelled.Load() {
				return
			}
			if s.yield > 0 {
				time.Sleep(s.yield)
			}
		}
	}()

	return h
}

// ManualScheduler runs steps only when asked to
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	step      func() bool
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

// NewManualScheduler creates an idle manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule queues step
func (m *ManualScheduler) Schedule(step func() bool) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTask{step: step}
	m.tasks = append(m.tasks, t)
	return t
}

// Pending returns the number of scheduled, uncancelled steps
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// RunOnce calls every pending step once and reports whether any remain
func (m *ManualScheduler) RunOnce() bool {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()

	var remaining []*manualTask
	for _, t := range tasks {
		if t.cancelled {
			continue
		}
		if t.step() && !t.cancelled {
			remaining = append(remaining, t)
		}
	}

	m.mu.Lock()
	m.tasks = append(remaining, m.tasks...)
	pending := len(m.tasks) > 0
	m.mu.Unlock()

	return pending
}

// RunAll runs steps until none remain and returns the number of rounds
func (m *ManualScheduler) RunAll() int {
	rounds := 0
	for m.Pending() > 0 {
		m.RunOnce()
		rounds++
	}
	return rounds
}
