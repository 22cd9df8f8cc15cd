// Package autoscroll implements the per-panel auto-scroll engine.
//
// Each managed panel bounces between its top and bottom extremes. A periodic
// tick advances the offset by the panel's speed in pixels; fractional speeds
// carry their remainder between ticks so the average velocity is exact. At
// each extreme the engine clamps the offset, flips direction and waits for a
// dwell before resuming.
//
// # States
//
//	Idle ──Start──▶ ScrollingForward ──bottom──▶ PausedAtBottom ──dwell──▶ ScrollingBackward
//	                       ▲                                                        │
//	                       └──────dwell────── PausedAtTop ◀──────────top───────────┘
//
// Stop moves any state to Idle. Start on a panel whose content fits its
// visible area leaves it Idle.
//
// # Scheduling
//
// All timers come from a [timer.Scheduler]. The engine assumes a single event
// loop: methods must not be called concurrently with each other or with the
// scheduler's callbacks. Tests drive the engine with [timer.Manual].
package autoscroll
