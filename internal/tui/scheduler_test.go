package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func newChanScheduler() (*teaScheduler, chan tea.Msg) {
	msgs := make(chan tea.Msg, 16)
	s := newTeaScheduler()
	s.SetSender(func(msg tea.Msg) { msgs <- msg })
	return s, msgs
}

func receive(t *testing.T, msgs <-chan tea.Msg) fireMsg {
	t.Helper()
	select {
	case msg := <-msgs:
		fm, ok := msg.(fireMsg)
		if !ok {
			t.Fatalf("got %T, want fireMsg", msg)
		}
		return fm
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fireMsg")
	}
	return fireMsg{}
}

func TestTeaSchedulerAfterRunsOnDispatch(t *testing.T) {
	s, msgs := newChanScheduler()

	runs := 0
	s.After(0, func() { runs++ })

	msg := receive(t, msgs)
	if runs != 0 {
		t.Fatal("callback ran before Dispatch")
	}
	s.Dispatch(msg)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0 after one-shot", s.Pending())
	}

	// A duplicate delivery is ignored.
	s.Dispatch(msg)
	if runs != 1 {
		t.Errorf("runs = %d after duplicate dispatch, want 1", runs)
	}
}

func TestTeaSchedulerEveryRearms(t *testing.T) {
	s, msgs := newChanScheduler()

	runs := 0
	task := s.Every(time.Millisecond, func() { runs++ })

	for i := 0; i < 3; i++ {
		s.Dispatch(receive(t, msgs))
	}
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1 while periodic", s.Pending())
	}

	task.Cancel()
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after Cancel, want 0", s.Pending())
	}
}

func TestTeaSchedulerDropsCancelledTasks(t *testing.T) {
	s, msgs := newChanScheduler()

	runs := 0
	task := s.After(0, func() { runs++ })
	msg := receive(t, msgs)

	// Cancelled after the timer fired but before Update saw the message.
	task.Cancel()
	task.Cancel()
	s.Dispatch(msg)

	if runs != 0 {
		t.Errorf("runs = %d, want 0 for cancelled task", runs)
	}
}

func TestTeaSchedulerCallbackMayCancelItself(t *testing.T) {
	s, msgs := newChanScheduler()

	var task interface{ Cancel() }
	runs := 0
	task = s.Every(time.Millisecond, func() {
		runs++
		task.Cancel()
	})

	s.Dispatch(receive(t, msgs))
	if runs != 1 || s.Pending() != 0 {
		t.Errorf("runs = %d, Pending() = %d, want 1 and 0", runs, s.Pending())
	}
}

func TestTeaSchedulerClose(t *testing.T) {
	s := newTeaScheduler()
	s.Every(time.Hour, func() {})
	s.After(time.Hour, func() {})

	s.Close()
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after Close, want 0", s.Pending())
	}
}

func TestTeaSchedulerUnknownID(t *testing.T) {
	s := newTeaScheduler()
	// Must not panic.
	s.Dispatch(fireMsg{id: 42})
}
