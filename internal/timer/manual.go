package timer

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by a logical clock. Time only moves when
// Advance is called, which makes timer-driven code deterministic in tests and
// in offline simulations.
//
// Manual is safe for concurrent use, but callbacks always run on the
// goroutine calling Advance and never while the internal lock is held.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks map[uint64]*manualTask
}

type manualTask struct {
	m      *Manual
	id     uint64
	due    time.Time
	period time.Duration
	fn     func()
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:   start,
		tasks: make(map[uint64]*manualTask),
	}
}

// Now returns the logical time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Every implements Scheduler.
func (m *Manual) Every(period time.Duration, fn func()) Task {
	if period <= 0 {
		panic("timer: non-positive period")
	}
	return m.schedule(period, period, fn)
}

// After implements Scheduler. Negative delays are treated as zero.
func (m *Manual) After(delay time.Duration, fn func()) Task {
	return m.schedule(max(delay, 0), 0, fn)
}

func (m *Manual) schedule(delay, period time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{m: m, id: m.seq, due: m.now.Add(delay), period: period, fn: fn}
	m.tasks[t.id] = t
	return t
}

// Cancel implements Task.
func (t *manualTask) Cancel() {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	delete(t.m.tasks, t.id)
}

// Pending reports how many tasks are still scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward by d, running every callback that becomes
// due in time order. Callbacks due at the same instant run in the order they
// were scheduled. Tasks scheduled by a callback run within the same Advance
// call if they fall due before its end.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.period > 0 {
			next.due = next.due.Add(next.period)
		} else {
			delete(m.tasks, next.id)
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// nextDueLocked returns the earliest task due at or before target.
func (m *Manual) nextDueLocked(target time.Time) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.due.After(target) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}
