package tui

import (
	"math"
	"time"

	"github.com/Iron-Ham/scrolldash/internal/analytics"
	"github.com/Iron-Ham/scrolldash/internal/timer"
)

// Counter animation timing.
const (
	CounterDuration = 1500 * time.Millisecond
	CounterFrame    = 50 * time.Millisecond
)

func easeOutCubic(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return 1 - math.Pow(1-t, 3)
}

// counters eases the metric cards from zero up to their target values.
type counters struct {
	sched  timer.Scheduler
	target analytics.Metrics
	start  time.Time
	frac   float64
	task   timer.Task
}

func newCounters(sched timer.Scheduler) *counters {
	return &counters{sched: sched, frac: 1}
}

// Animate restarts the animation towards target.
func (c *counters) Animate(target analytics.Metrics) {
	c.Stop()
	c.target = target
	c.start = c.sched.Now()
	c.frac = 0
	c.task = c.sched.Every(CounterFrame, c.step)
}

// Set jumps straight to target.
func (c *counters) Set(target analytics.Metrics) {
	c.Stop()
	c.target = target
	c.frac = 1
}

func (c *counters) step() {
	c.frac = easeOutCubic(float64(c.sched.Now().Sub(c.start)) / float64(CounterDuration))
	if c.frac >= 1 {
		c.Stop()
	}
}

// Stop cancels a running animation, leaving the current values in place.
func (c *counters) Stop() {
	if c.task != nil {
		c.task.Cancel()
		c.task = nil
	}
}

// Running reports whether an animation is in progress.
func (c *counters) Running() bool {
	return c.task != nil
}

// Value returns the metrics as currently displayed.
func (c *counters) Value() analytics.Metrics {
	if c.frac >= 1 {
		return c.target
	}
	return analytics.Metrics{
		TotalPremium:  math.Floor(c.target.TotalPremium * c.frac),
		GrossPremium:  math.Floor(c.target.GrossPremium * c.frac),
		TotalPolicies: int(math.Floor(float64(c.target.TotalPolicies) * c.frac)),
		AvgPremium:    math.Floor(c.target.AvgPremium * c.frac),
	}
}
