package autoscroll

import (
	"fmt"
	"math"
	"time"

	"github.com/Iron-Ham/scrolldash/internal/event"
	"github.com/Iron-Ham/scrolldash/internal/logging"
	"github.com/Iron-Ham/scrolldash/internal/timer"
)

// Defaults for the tick cadence, the dwell at each extreme and the boundary
// tolerance band.
const (
	DefaultCadence   = 30 * time.Millisecond
	DefaultDwell     = 800 * time.Millisecond
	DefaultTolerance = 2

	MinCadence = 16 * time.Millisecond
	MaxCadence = 50 * time.Millisecond
)

// Panel is a scrollable region whose content is produced elsewhere.
// All values are in pixels.
type Panel interface {
	ScrollOffset() int
	SetScrollOffset(offset int)
	ContentHeight() int
	VisibleHeight() int
}

// PanelID identifies a managed panel. Ids are 1-based.
type PanelID int

// Direction is the current scroll direction.
type Direction int

const (
	// Forward moves toward the bottom extreme.
	Forward Direction = iota
	// Backward moves toward the top extreme.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// State is the observable scroller state of a panel.
type State int

const (
	Idle State = iota
	ScrollingForward
	ScrollingBackward
	PausedAtBottom
	PausedAtTop
)

func (s State) String() string {
	switch s {
	case ScrollingForward:
		return "scrolling-forward"
	case ScrollingBackward:
		return "scrolling-backward"
	case PausedAtBottom:
		return "paused-at-bottom"
	case PausedAtTop:
		return "paused-at-top"
	default:
		return "idle"
	}
}

type scroller struct {
	panel       Panel
	ticker      timer.Task
	pause       timer.Task
	speed       Speed
	direction   Direction
	accumulator float64
	log         *logging.Logger
}

// Engine auto-scrolls a fixed set of panels back and forth between their
// extremes. It is not safe for concurrent use: every method and every
// scheduled callback must run on the scheduler's event loop.
type Engine struct {
	sched     timer.Scheduler
	scrollers []*scroller
	cadence   time.Duration
	dwell     time.Duration
	tolerance int
	bus       *event.Bus
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	cadence   time.Duration
	dwell     time.Duration
	tolerance int
	speed     Speed
	logger    *logging.Logger
	bus       *event.Bus
}

// WithCadence sets the tick interval. It must lie within [MinCadence, MaxCadence].
func WithCadence(d time.Duration) Option {
	return func(o *options) { o.cadence = d }
}

// WithDwell sets the pause at each extreme.
func WithDwell(d time.Duration) Option {
	return func(o *options) { o.dwell = d }
}

// WithTolerance sets the boundary band, in pixels, that counts as reaching an extreme.
func WithTolerance(px int) Option {
	return func(o *options) { o.tolerance = px }
}

// WithInitialSpeed sets the starting speed of every panel.
func WithInitialSpeed(s Speed) Option {
	return func(o *options) { o.speed = s }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBus publishes panel.state and panel.speed events on bus.
func WithBus(b *event.Bus) Option {
	return func(o *options) { o.bus = b }
}

// New creates an engine managing panels; panels[i] gets PanelID i+1.
// Invalid options panic.
func New(sched timer.Scheduler, panels []Panel, opts ...Option) *Engine {
	o := options{
		cadence:   DefaultCadence,
		dwell:     DefaultDwell,
		tolerance: DefaultTolerance,
		speed:     SpeedNormal,
		logger:    logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cadence < MinCadence || o.cadence > MaxCadence {
		panic(fmt.Sprintf("autoscroll: cadence %v outside [%v, %v]", o.cadence, MinCadence, MaxCadence))
	}
	if o.dwell < 0 || o.tolerance < 0 {
		panic("autoscroll: negative dwell or tolerance")
	}
	if !o.speed.Valid() {
		panic(fmt.Sprintf("autoscroll: invalid initial speed %v", float64(o.speed)))
	}

	log := o.logger.WithComponent("autoscroll")
	e := &Engine{
		sched:     sched,
		scrollers: make([]*scroller, len(panels)),
		cadence:   o.cadence,
		dwell:     o.dwell,
		tolerance: o.tolerance,
		bus:       o.bus,
	}
	for i, p := range panels {
		if p == nil {
			panic(fmt.Sprintf("autoscroll: panel %d is nil", i+1))
		}
		e.scrollers[i] = &scroller{
			panel:     p,
			speed:     o.speed,
			direction: Forward,
			log:       log.WithPanel(i + 1),
		}
	}
	return e
}

// Panels returns the managed ids in order.
func (e *Engine) Panels() []PanelID {
	ids := make([]PanelID, len(e.scrollers))
	for i := range e.scrollers {
		ids[i] = PanelID(i + 1)
	}
	return ids
}

func (e *Engine) get(id PanelID) *scroller {
	if id < 1 || int(id) > len(e.scrollers) {
		panic(fmt.Sprintf("autoscroll: unknown panel %d", id))
	}
	return e.scrollers[id-1]
}

func extent(p Panel) int {
	return p.ContentHeight() - p.VisibleHeight()
}

// Start begins auto-scrolling a panel from its current offset and direction.
// A panel whose content fits is left idle.
func (e *Engine) Start(id PanelID) {
	defer e.track(id)()
	e.start(id)
}

func (e *Engine) start(id PanelID) {
	s := e.get(id)
	e.stop(id)

	if limit := extent(s.panel); limit <= 0 {
		s.log.Debug("nothing to scroll", "extent", limit)
		return
	}

	s.accumulator = 0
	s.ticker = e.sched.Every(e.cadence, func() { e.tick(id) })
	s.log.Debug("scrolling", "direction", s.direction.String(), "speed", s.speed.Label())
}

// StartAll starts every managed panel.
func (e *Engine) StartAll() {
	for _, id := range e.Panels() {
		e.Start(id)
	}
}

// Stop cancels any pending tick or dwell for a panel. Direction, speed and
// fractional carry are kept so a later Start resumes where it left off.
func (e *Engine) Stop(id PanelID) {
	defer e.track(id)()
	e.stop(id)
}

func (e *Engine) stop(id PanelID) {
	s := e.get(id)
	if s.ticker != nil {
		s.ticker.Cancel()
		s.ticker = nil
	}
	if s.pause != nil {
		s.pause.Cancel()
		s.pause = nil
	}
}

// Shutdown stops every panel, releasing all scheduled tasks.
func (e *Engine) Shutdown() {
	for _, id := range e.Panels() {
		e.Stop(id)
	}
}

// CycleSpeed moves a panel to the next speed and restarts it immediately,
// cutting short any dwell in progress. It returns the new speed.
func (e *Engine) CycleSpeed(id PanelID) Speed {
	defer e.track(id)()
	s := e.get(id)
	s.speed = s.speed.Next()
	s.accumulator = 0
	s.log.Debug("speed changed", "speed", s.speed.Label())
	if e.bus != nil {
		e.bus.Publish(event.NewPanelSpeedEvent(e.sched.Now(), int(id), s.speed.Label()))
	}

	e.start(id)
	return s.speed
}

// track snapshots a panel's state and returns a func that publishes a
// panel.state event if the state changed in between.
func (e *Engine) track(id PanelID) func() {
	if e.bus == nil {
		return func() {}
	}
	before := e.State(id)
	return func() {
		if after := e.State(id); after != before {
			e.bus.Publish(event.NewPanelStateEvent(
				e.sched.Now(), int(id), before.String(), after.String(), e.get(id).panel.ScrollOffset(),
			))
		}
	}
}

// Speed returns a panel's current speed.
func (e *Engine) Speed(id PanelID) Speed {
	return e.get(id).speed
}

// Direction returns a panel's current direction.
func (e *Engine) Direction(id PanelID) Direction {
	return e.get(id).direction
}

// State returns a panel's scroller state.
func (e *Engine) State(id PanelID) State {
	s := e.get(id)
	switch {
	case s.ticker != nil && s.direction == Backward:
		return ScrollingBackward
	case s.ticker != nil:
		return ScrollingForward
	case s.pause != nil && s.direction == Backward:
		return PausedAtBottom
	case s.pause != nil:
		return PausedAtTop
	default:
		return Idle
	}
}

func (e *Engine) tick(id PanelID) {
	defer e.track(id)()
	s := e.get(id)
	limit := extent(s.panel)
	if limit <= 0 {
		s.log.Debug("content no longer overflows", "extent", limit)
		e.stop(id)
		return
	}

	s.accumulator += s.speed.PixelsPerTick()
	if s.accumulator < 1 {
		return
	}
	step := math.Floor(s.accumulator)
	s.accumulator -= step

	offset := s.panel.ScrollOffset()
	if s.direction == Forward {
		offset += int(step)
	} else {
		offset -= int(step)
	}
	offset = max(0, min(limit, offset))

	switch {
	case s.direction == Forward && offset >= limit-e.tolerance:
		s.panel.SetScrollOffset(limit)
		e.bounce(id, s, Backward)
	case s.direction == Backward && offset <= e.tolerance:
		s.panel.SetScrollOffset(0)
		e.bounce(id, s, Forward)
	default:
		s.panel.SetScrollOffset(offset)
	}
}

// bounce flips direction at an extreme and arms the dwell restart. Only the
// ticker is cancelled here; Stop would also drop the pause being armed.
func (e *Engine) bounce(id PanelID, s *scroller, next Direction) {
	s.direction = next
	s.accumulator = 0
	if s.ticker != nil {
		s.ticker.Cancel()
		s.ticker = nil
	}
	s.pause = e.sched.After(e.dwell, func() { e.Start(id) })
	s.log.Debug("boundary reached", "offset", s.panel.ScrollOffset(), "next", next.String())
}
