package autoscroll

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/scrolldash/internal/event"
	"github.com/Iron-Ham/scrolldash/internal/timer"
)

const tick = DefaultCadence

// fakePanel is an in-memory Panel that records every offset write.
type fakePanel struct {
	offset  int
	content int
	visible int
	writes  []int
}

func (p *fakePanel) ScrollOffset() int  { return p.offset }
func (p *fakePanel) ContentHeight() int { return p.content }
func (p *fakePanel) VisibleHeight() int { return p.visible }

func (p *fakePanel) SetScrollOffset(offset int) {
	p.offset = offset
	p.writes = append(p.writes, offset)
}

func newTestEngine(panels []*fakePanel, opts ...Option) (*Engine, *timer.Manual) {
	clock := timer.NewManual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ps := make([]Panel, len(panels))
	for i, p := range panels {
		ps[i] = p
	}
	return New(clock, ps, opts...), clock
}

func TestStartLeavesFittingPanelIdle(t *testing.T) {
	tests := []struct {
		name    string
		content int
		visible int
	}{
		{"exact fit", 100, 100},
		{"short content", 40, 100},
		{"empty", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePanel{offset: 0, content: tt.content, visible: tt.visible}
			e, clock := newTestEngine([]*fakePanel{p})

			e.Start(1)
			clock.Advance(5 * time.Second)

			if got := e.State(1); got != Idle {
				t.Errorf("State = %v, want idle", got)
			}
			if clock.Pending() != 0 {
				t.Errorf("Pending() = %d, want 0", clock.Pending())
			}
			if len(p.writes) != 0 {
				t.Errorf("offset written %d times, want untouched", len(p.writes))
			}
		})
	}
}

func TestStopHaltsMutation(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, clock := newTestEngine([]*fakePanel{p})

	e.Start(1)
	clock.Advance(10 * tick)
	if p.offset != 10 {
		t.Fatalf("offset = %d after 10 ticks, want 10", p.offset)
	}

	e.Stop(1)
	writes := len(p.writes)
	clock.Advance(10 * time.Second)

	if len(p.writes) != writes {
		t.Errorf("offset written %d more times after Stop", len(p.writes)-writes)
	}
	if got := e.State(1); got != Idle {
		t.Errorf("State = %v, want idle", got)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", clock.Pending())
	}
}

func TestStopIsIdempotent(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, clock := newTestEngine([]*fakePanel{p})

	e.Stop(1)
	e.Stop(1)

	e.Start(1)
	clock.Advance(3 * tick)
	e.Stop(1)
	e.Stop(1)

	if got := e.State(1); got != Idle {
		t.Errorf("State = %v, want idle", got)
	}
	if p.offset != 3 {
		t.Errorf("offset = %d, want 3", p.offset)
	}
	if e.Direction(1) != Forward {
		t.Errorf("Direction = %v, want forward", e.Direction(1))
	}
}

func TestStartIsReentrant(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, clock := newTestEngine([]*fakePanel{p})

	e.Start(1)
	e.Start(1)
	e.Start(1)
	if clock.Pending() != 1 {
		t.Fatalf("Pending() = %d after repeated Start, want 1", clock.Pending())
	}

	clock.Advance(tick)
	if p.offset != 1 {
		t.Errorf("offset = %d after one tick, want 1", p.offset)
	}
}

func TestBounceBetweenExtremes(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, clock := newTestEngine([]*fakePanel{p})

	e.Start(1)
	if got := e.State(1); got != ScrollingForward {
		t.Fatalf("State = %v, want scrolling-forward", got)
	}

	clock.Advance(200 * tick)
	if p.offset != 200 {
		t.Fatalf("offset = %d after 200 ticks, want 200", p.offset)
	}
	if got := e.Direction(1); got != Backward {
		t.Errorf("Direction = %v, want backward", got)
	}
	if got := e.State(1); got != PausedAtBottom {
		t.Errorf("State = %v, want paused-at-bottom", got)
	}

	// The boundary was reached on tick 198 (tolerance band); the dwell
	// restart lands at 198*30+800ms and two backward ticks follow by 6.8s.
	clock.Advance(DefaultDwell)
	if got := e.State(1); got != ScrollingBackward {
		t.Fatalf("State = %v after dwell, want scrolling-backward", got)
	}
	if p.offset != 198 {
		t.Errorf("offset = %d after dwell, want 198", p.offset)
	}

	clock.Advance(200 * tick)
	if p.offset != 0 {
		t.Errorf("offset = %d, want 0 at top", p.offset)
	}
	if got := e.State(1); got != PausedAtTop {
		t.Errorf("State = %v, want paused-at-top", got)
	}
	if got := e.Direction(1); got != Forward {
		t.Errorf("Direction = %v, want forward", got)
	}

	clock.Advance(DefaultDwell)
	if got := e.State(1); got != ScrollingForward {
		t.Errorf("State = %v after second dwell, want scrolling-forward", got)
	}
}

func TestNeverOvershootsBounds(t *testing.T) {
	for _, speed := range Speeds() {
		for _, limit := range []int{1, 3, 37, 150} {
			p := &fakePanel{content: limit + 50, visible: 50}
			e, clock := newTestEngine([]*fakePanel{p}, WithInitialSpeed(speed))

			e.Start(1)
			clock.Advance(2 * time.Minute)

			sawTop, sawBottom := false, false
			for _, w := range p.writes {
				if w < 0 || w > limit {
					t.Fatalf("speed %v extent %d: offset %d outside [0, %d]", speed, limit, w, limit)
				}
				sawTop = sawTop || w == 0
				sawBottom = sawBottom || w == limit
			}
			if !sawTop || !sawBottom {
				t.Errorf("speed %v extent %d: reached top=%v bottom=%v, want both", speed, limit, sawTop, sawBottom)
			}
		}
	}
}

func TestAverageSpeedMatchesMultiplier(t *testing.T) {
	const ticks = 1000

	for _, speed := range Speeds() {
		t.Run(speed.Label(), func(t *testing.T) {
			p := &fakePanel{content: 100000, visible: 100}
			e, clock := newTestEngine([]*fakePanel{p}, WithInitialSpeed(speed))

			e.Start(1)
			clock.Advance(ticks * tick)

			want := int(float64(ticks) * float64(speed))
			if p.offset != want {
				t.Errorf("offset = %d after %d ticks, want %d", p.offset, ticks, want)
			}
		})
	}
}

func TestCycleSpeedOrder(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, _ := newTestEngine([]*fakePanel{p})

	want := []Speed{SpeedFast, SpeedFastest, SpeedSlow, SpeedNormal}
	for i, w := range want {
		if got := e.CycleSpeed(1); got != w {
			t.Errorf("cycle %d: speed = %v, want %v", i, got, w)
		}
	}
}

func TestCycleSpeedCutsDwell(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, clock := newTestEngine([]*fakePanel{p}, WithInitialSpeed(SpeedFastest))

	e.Start(1)
	clock.Advance(100 * tick)
	if got := e.State(1); got != PausedAtBottom {
		t.Fatalf("State = %v, want paused-at-bottom", got)
	}

	if got := e.CycleSpeed(1); got != SpeedSlow {
		t.Fatalf("CycleSpeed = %v, want 0.5x after 2x", got)
	}
	if got := e.State(1); got != ScrollingBackward {
		t.Errorf("State = %v right after CycleSpeed, want scrolling-backward", got)
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d, want only the ticker", clock.Pending())
	}

	clock.Advance(2 * tick)
	if p.offset != 199 {
		t.Errorf("offset = %d two slow ticks after cycling, want 199", p.offset)
	}
}

func TestContentShrinkStopsScroller(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, clock := newTestEngine([]*fakePanel{p})

	e.Start(1)
	clock.Advance(10 * tick)

	p.content = 100
	writes := len(p.writes)
	clock.Advance(tick)

	if got := e.State(1); got != Idle {
		t.Errorf("State = %v, want idle", got)
	}
	if len(p.writes) != writes || p.offset != 10 {
		t.Errorf("offset = %d with %d new writes, want 10 untouched", p.offset, len(p.writes)-writes)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", clock.Pending())
	}
}

func TestContentGrowthExtendsTravel(t *testing.T) {
	p := &fakePanel{content: 150, visible: 100}
	e, clock := newTestEngine([]*fakePanel{p})

	e.Start(1)
	clock.Advance(40 * tick)
	p.content = 400

	clock.Advance(60 * tick)
	if p.offset != 100 {
		t.Errorf("offset = %d, want 100 past the old extent", p.offset)
	}
	if got := e.State(1); got != ScrollingForward {
		t.Errorf("State = %v, want scrolling-forward", got)
	}
}

func TestStopDuringDwellCancelsRestart(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, clock := newTestEngine([]*fakePanel{p})

	e.Start(1)
	clock.Advance(200 * tick)
	e.Stop(1)
	clock.Advance(5 * time.Second)

	if got := e.State(1); got != Idle {
		t.Errorf("State = %v, want idle", got)
	}
	if p.offset != 200 {
		t.Errorf("offset = %d, want 200", p.offset)
	}

	// Resuming keeps the flipped direction.
	e.Start(1)
	if got := e.State(1); got != ScrollingBackward {
		t.Errorf("State = %v after restart, want scrolling-backward", got)
	}
}

func TestShutdownReleasesEveryTask(t *testing.T) {
	panels := []*fakePanel{
		{content: 300, visible: 100},
		{content: 110, visible: 100},
		{content: 50, visible: 100},
	}
	e, clock := newTestEngine(panels)

	e.StartAll()
	clock.Advance(20 * tick)
	if got := e.State(2); got != PausedAtBottom {
		t.Fatalf("panel 2 State = %v, want paused-at-bottom", got)
	}

	e.Shutdown()
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d after Shutdown, want 0", clock.Pending())
	}
	for _, id := range e.Panels() {
		if got := e.State(id); got != Idle {
			t.Errorf("panel %d State = %v, want idle", id, got)
		}
	}
}

func TestSpeedPersistsAcrossStop(t *testing.T) {
	p := &fakePanel{content: 300, visible: 100}
	e, _ := newTestEngine([]*fakePanel{p})

	e.CycleSpeed(1)
	e.Stop(1)
	e.Start(1)

	if got := e.Speed(1); got != SpeedFast {
		t.Errorf("Speed = %v, want 1.5x", got)
	}
}

func TestUnknownPanelPanics(t *testing.T) {
	e, _ := newTestEngine([]*fakePanel{{content: 300, visible: 100}})

	for _, id := range []PanelID{0, 2, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Start(%d) did not panic", id)
				}
			}()
			e.Start(id)
		}()
	}
}

func TestInvalidOptionsPanic(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"cadence too fast", WithCadence(5 * time.Millisecond)},
		{"cadence too slow", WithCadence(time.Second)},
		{"negative dwell", WithDwell(-time.Second)},
		{"negative tolerance", WithTolerance(-1)},
		{"speed outside cycle", WithInitialSpeed(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("New did not panic")
				}
			}()
			newTestEngine([]*fakePanel{{content: 300, visible: 100}}, tt.opt)
		})
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Idle:              "idle",
		ScrollingForward:  "scrolling-forward",
		ScrollingBackward: "scrolling-backward",
		PausedAtBottom:    "paused-at-bottom",
		PausedAtTop:       "paused-at-top",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}

func TestEnginePublishesTransitions(t *testing.T) {
	bus := event.NewBus(nil)
	var got []string
	bus.Subscribe(event.TypePanelState, func(e event.Event) {
		ev := e.(event.PanelStateEvent)
		got = append(got, fmt.Sprintf("%s %d %s>%s@%d", e.Timestamp().Format("05.000"), ev.Panel, ev.From, ev.To, ev.Offset))
	})
	var speeds []string
	bus.Subscribe(event.TypePanelSpeed, func(e event.Event) {
		speeds = append(speeds, e.(event.PanelSpeedEvent).Speed)
	})

	p := &fakePanel{content: 300, visible: 200}
	e, clock := newTestEngine([]*fakePanel{p}, WithBus(bus))

	e.Start(1)
	clock.Advance(98 * tick)
	clock.Advance(DefaultDwell)
	e.CycleSpeed(1)
	e.Stop(1)
	e.Stop(1)

	want := []string{
		"00.000 1 idle>scrolling-forward@0",
		"02.940 1 scrolling-forward>paused-at-bottom@100",
		"03.740 1 paused-at-bottom>scrolling-backward@100",
		"03.740 1 scrolling-backward>idle@100",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1.5x"}, speeds); diff != "" {
		t.Errorf("speed events mismatch (-want +got):\n%s", diff)
	}
}
