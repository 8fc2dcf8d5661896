package background

import (
	"sync"
	"testing"
	"time"
)

func TestRunner_RunsToCompletion(t *testing.T) {
	sched := NewManualScheduler()
	r := NewRunner[int](sched, DefaultBudget)
	r.SetClock(steppingClock(time.Second))

	rows := make([]int, 120)
	done := 0
	r.Start(intsUpTo(120), func(index, e int) { rows[index] = e + 1 }, func() { done++ })

	if r.Active() == nil {
		t.Fatal("Expected an active job after Start")
	}

	rounds := sched.RunAll()
	if rounds != 3 {
		t.Errorf("Expected 3 slices, got %d", rounds)
	}
	if done != 1 {
		t.Errorf("onDone called %d times", done)
	}
	if r.Active() != nil {
		t.Error("Runner should be idle after completion")
	}
	for i, v := range rows {
		if v != i+1 {
			t.Fatalf("row %d = %d", i, v)
		}
	}
}

func TestRunner_StartCancelsPrevious(t *testing.T) {
	sched := NewManualScheduler()
	r := NewRunner[int](sched, DefaultBudget)
	r.SetClock(steppingClock(time.Second))

	var first, second int
	firstDone := false
	r.Start(intsUpTo(200), func(int, int) { first++ }, func() { firstDone = true })
	sched.RunOnce()

	r.Start(intsUpTo(10), func(int, int) { second++ }, nil)
	if sched.Pending() != 1 {
		t.Errorf("Expected exactly one scheduled job, got %d", sched.Pending())
	}

	sched.RunAll()
	if first != 50 {
		t.Errorf("Cancelled job processed %d entities, expected 50", first)
	}
	if firstDone {
		t.Error("Cancelled job must not report completion")
	}
	if second != 10 {
		t.Errorf("Replacement job processed %d entities", second)
	}
}

func TestRunner_Cancel(t *testing.T) {
	sched := NewManualScheduler()
	r := NewRunner[int](sched, DefaultBudget)

	calls := 0
	r.Start(intsUpTo(5), func(int, int) { calls++ }, nil)
	r.Cancel()
	sched.RunAll()

	if calls != 0 {
		t.Errorf("Cancelled job ran %d updates", calls)
	}
	if r.Active() != nil {
		t.Error("Expected no active job after Cancel")
	}
}

func TestLoopScheduler(t *testing.T) {
	var mu sync.Mutex
	run := func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		fn()
	}
	sched := NewLoopScheduler(run, 0)

	finished := make(chan struct{})
	steps := 0
	sched.Schedule(func() bool {
		steps++
		if steps == 3 {
			close(finished)
			return false
		}
		return true
	})

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("LoopScheduler did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	if steps != 3 {
		t.Errorf("Expected 3 steps, got %d", steps)
	}
}

func TestLoopScheduler_Cancel(t *testing.T) {
	var mu sync.Mutex
	run := func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		fn()
	}
	sched := NewLoopScheduler(run, time.Millisecond)

	steps := 0
	var h Handle
	mu.Lock()
	h = sched.Schedule(func() bool {
		steps++
		return true
	})
	mu.Unlock()

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	h.Cancel()
	after := steps
	mu.Unlock()

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if steps != after {
		t.Errorf("step ran after Cancel: %d -> %d", after, steps)
	}
}
