package background

// Package background runs time-sliced row population jobs cooperatively on
// the UI goroutine. A Job processes a queue of entities within a Budget per
// slice, a Scheduler re-arms it until the queue drains, and a Runner makes
// sure at most one job per list is ever scheduled.
