// Package timer defines the cancellable-task scheduling abstraction used by
// the auto-scroll engine and the dashboard host.
//
// Implementations run every callback on a single logical thread: callbacks
// never overlap, and a callback may freely schedule or cancel other tasks,
// including the task that is currently running.
package timer

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents any future run of the task. Cancelling a task that
	// already fired (one-shot) or was already cancelled is a no-op.
	Cancel()
}

// Scheduler schedules callbacks against a clock.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// Every runs fn once per period until the returned task is cancelled.
	// The first run happens one period from now.
	Every(period time.Duration, fn func()) Task
	// After runs fn once, delay from now.
	After(delay time.Duration, fn func()) Task
}
