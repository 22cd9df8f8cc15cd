package cmd

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/scrolldash/internal/autoscroll"
	"github.com/Iron-Ham/scrolldash/internal/config"
	"github.com/Iron-Ham/scrolldash/internal/event"
	"github.com/Iron-Ham/scrolldash/internal/timer"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Simulate one auto-scrolling panel and print its state changes",
	Long: `Run the auto-scroll engine against a virtual panel on a simulated clock
and print every state and speed change. Nothing waits in real time, so long runs finish
instantly. Cadence, dwell and tolerance come from the configuration.

Examples:
  # 480px of content in a 200px panel for ten seconds
  scrolldash trace

  # Fast panel, changing speed twice
  scrolldash trace --speed 2x --cycle 3s,5s`,
	Args: cobra.NoArgs,
	RunE: runTrace,
}

var (
	traceContent  int
	traceVisible  int
	traceSpeed    string
	traceDuration time.Duration
	traceCycle    []time.Duration
)

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().IntVar(&traceContent, "content", 480, "Content height in pixels")
	traceCmd.Flags().IntVar(&traceVisible, "visible", 200, "Visible height in pixels")
	traceCmd.Flags().StringVar(&traceSpeed, "speed", "", "Initial speed (default: scroll.initial_speed)")
	traceCmd.Flags().DurationVar(&traceDuration, "duration", 10*time.Second, "Simulated run time")
	traceCmd.Flags().DurationSliceVar(&traceCycle, "cycle", nil, "Cycle the speed at these simulated times")
}

// virtualPanel is a panel with no screen behind it.
type virtualPanel struct {
	offset  int
	content int
	visible int
}

func (p *virtualPanel) ScrollOffset() int      { return p.offset }
func (p *virtualPanel) SetScrollOffset(px int) { p.offset = px }
func (p *virtualPanel) ContentHeight() int     { return p.content }
func (p *virtualPanel) VisibleHeight() int     { return p.visible }

func runTrace(cmd *cobra.Command, args []string) error {
	if traceContent < 0 || traceVisible < 0 {
		return fmt.Errorf("--content and --visible must be non-negative")
	}
	if traceDuration <= 0 {
		return fmt.Errorf("--duration must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	speedName := cfg.Scroll.InitialSpeed
	if traceSpeed != "" {
		speedName = traceSpeed
	}
	speed, err := autoscroll.ParseSpeed(speedName)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	return trace(cmd.OutOrStdout(), cfg.Scroll, traceRun{
		panel:    &virtualPanel{content: traceContent, visible: traceVisible},
		speed:    speed,
		duration: traceDuration,
		cycles:   traceCycle,
		opts:     []autoscroll.Option{autoscroll.WithLogger(logger)},
	})
}

type traceRun struct {
	panel    *virtualPanel
	speed    autoscroll.Speed
	duration time.Duration
	cycles   []time.Duration
	opts     []autoscroll.Option
}

// trace drives one panel on a manual clock and prints each event the
// engine publishes, stamped with simulated time.
func trace(w io.Writer, sc config.ScrollConfig, run traceRun) error {
	clock := timer.NewManual(time.Time{})
	start := clock.Now()
	bus := event.NewBus(nil)

	opts := append([]autoscroll.Option{
		autoscroll.WithCadence(sc.Cadence()),
		autoscroll.WithDwell(sc.Dwell()),
		autoscroll.WithTolerance(sc.TolerancePx),
		autoscroll.WithInitialSpeed(run.speed),
		autoscroll.WithBus(bus),
	}, run.opts...)
	engine := autoscroll.New(clock, []autoscroll.Panel{run.panel}, opts...)

	const id autoscroll.PanelID = 1
	bounces := 0
	report := func(at time.Time, label string, offset int) {
		fmt.Fprintf(w, "%8s  %-18s offset=%-5d %s\n",
			at.Sub(start).Round(time.Millisecond), label, offset, engine.Speed(id).Label())
	}
	bus.Subscribe(event.TypePanelState, func(e event.Event) {
		ev := e.(event.PanelStateEvent)
		if ev.To == autoscroll.PausedAtBottom.String() || ev.To == autoscroll.PausedAtTop.String() {
			bounces++
		}
		report(ev.Timestamp(), ev.To, ev.Offset)
	})
	bus.Subscribe(event.TypePanelSpeed, func(e event.Event) {
		report(e.Timestamp(), "speed", run.panel.offset)
	})

	engine.Start(id)
	if engine.State(id) == autoscroll.Idle {
		report(clock.Now(), autoscroll.Idle.String(), run.panel.offset)
		fmt.Fprintf(w, "content fits (%dpx in %dpx), nothing to scroll\n", run.panel.content, run.panel.visible)
		return nil
	}

	cycles := slices.Clone(run.cycles)
	slices.Sort(cycles)
	for _, at := range cycles {
		if at >= run.duration {
			break
		}
		if d := start.Add(at).Sub(clock.Now()); d > 0 {
			clock.Advance(d)
		}
		engine.CycleSpeed(id)
	}
	clock.Advance(start.Add(run.duration).Sub(clock.Now()))

	// The final stop is not part of the trace.
	bus.Clear()
	engine.Shutdown()

	fmt.Fprintf(w, "%d bounces in %s\n", bounces, run.duration)
	return nil
}
