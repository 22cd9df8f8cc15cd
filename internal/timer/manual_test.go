package timer

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualAfter(t *testing.T) {
	m := NewManual(epoch)
	fired := 0
	m.After(100*time.Millisecond, func() { fired++ })

	m.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired = %d before due, want 0", fired)
	}

	m.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d at due time, want 1", fired)
	}

	m.Advance(time.Second)
	if fired != 1 {
		t.Errorf("one-shot fired %d times, want 1", fired)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManualEvery(t *testing.T) {
	m := NewManual(epoch)
	var at []time.Duration
	task := m.Every(30*time.Millisecond, func() { at = append(at, m.Now().Sub(epoch)) })

	m.Advance(100 * time.Millisecond)
	want := []time.Duration{30 * time.Millisecond, 60 * time.Millisecond, 90 * time.Millisecond}
	if len(at) != len(want) {
		t.Fatalf("ran %d times, want %d", len(at), len(want))
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("run %d at %v, want %v", i, at[i], want[i])
		}
	}

	task.Cancel()
	m.Advance(time.Second)
	if len(at) != 3 {
		t.Errorf("ran %d times after Cancel, want 3", len(at))
	}
	if got := m.Now().Sub(epoch); got != 1100*time.Millisecond {
		t.Errorf("Now() advanced by %v, want 1.1s", got)
	}
}

func TestManualCancelFromOwnCallback(t *testing.T) {
	m := NewManual(epoch)
	runs := 0
	var task Task
	task = m.Every(10*time.Millisecond, func() {
		runs++
		if runs == 2 {
			task.Cancel()
		}
	})

	m.Advance(time.Second)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManualCancelIsIdempotent(t *testing.T) {
	m := NewManual(epoch)
	task := m.After(time.Millisecond, func() {})
	m.Advance(time.Millisecond)

	// Already fired, then cancelled twice.
	task.Cancel()
	task.Cancel()
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManualChainedScheduling(t *testing.T) {
	m := NewManual(epoch)
	var order []string

	m.After(10*time.Millisecond, func() {
		order = append(order, "first")
		m.After(5*time.Millisecond, func() { order = append(order, "chained") })
	})
	m.After(12*time.Millisecond, func() { order = append(order, "second") })
	m.After(10*time.Millisecond, func() { order = append(order, "tie") })

	m.Advance(20 * time.Millisecond)

	want := []string{"first", "tie", "second", "chained"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestManualEveryRejectsNonPositivePeriod(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Every(0) did not panic")
		}
	}()
	NewManual(epoch).Every(0, func() {})
}
