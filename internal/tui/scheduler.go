package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/scrolldash/internal/timer"
)

// fireMsg is delivered to Update when a scheduled task falls due.
type fireMsg struct {
	id uint64
}

// teaScheduler is a timer.Scheduler whose callbacks run inside Update.
// Wall-clock timers only post a fireMsg to the program; Dispatch runs the
// callback on the event loop, so the engine never sees concurrent calls.
//
// All methods except the timer goroutines' send must be called from Update.
type teaScheduler struct {
	send  func(tea.Msg)
	seq   uint64
	tasks map[uint64]*teaTask
}

type teaTask struct {
	s      *teaScheduler
	id     uint64
	period time.Duration
	fn     func()
	timer  *time.Timer
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{
		send:  func(tea.Msg) {},
		tasks: make(map[uint64]*teaTask),
	}
}

// SetSender wires the function timers use to post messages, normally
// (*tea.Program).Send. It must be called before the program starts.
func (s *teaScheduler) SetSender(send func(tea.Msg)) {
	s.send = send
}

func (s *teaScheduler) Now() time.Time {
	return time.Now()
}

func (s *teaScheduler) Every(period time.Duration, fn func()) timer.Task {
	return s.schedule(period, period, fn)
}

func (s *teaScheduler) After(delay time.Duration, fn func()) timer.Task {
	return s.schedule(max(delay, 0), 0, fn)
}

func (s *teaScheduler) schedule(delay, period time.Duration, fn func()) *teaTask {
	s.seq++
	t := &teaTask{s: s, id: s.seq, period: period, fn: fn}
	s.tasks[t.id] = t
	s.arm(t, delay)
	return t
}

func (s *teaScheduler) arm(t *teaTask, delay time.Duration) {
	id, send := t.id, s.send
	t.timer = time.AfterFunc(delay, func() { send(fireMsg{id: id}) })
}

func (t *teaTask) Cancel() {
	if t.timer != nil {
		t.timer.Stop()
	}
	delete(t.s.tasks, t.id)
}

// Dispatch runs the task named by msg. Messages for cancelled tasks, or
// late deliveries after a cancel, are dropped.
func (s *teaScheduler) Dispatch(msg fireMsg) {
	t, ok := s.tasks[msg.id]
	if !ok {
		return
	}
	if t.period > 0 {
		s.arm(t, t.period)
	} else {
		delete(s.tasks, t.id)
	}
	t.fn()
}

// Pending reports how many tasks are scheduled.
func (s *teaScheduler) Pending() int {
	return len(s.tasks)
}

// Close cancels every outstanding task.
func (s *teaScheduler) Close() {
	for _, t := range s.tasks {
		t.Cancel()
	}
}
