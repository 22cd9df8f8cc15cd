package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/scrolldash/internal/analytics"
	"github.com/Iron-Ham/scrolldash/internal/autoscroll"
	"github.com/Iron-Ham/scrolldash/internal/config"
	"github.com/Iron-Ham/scrolldash/internal/event"
	"github.com/Iron-Ham/scrolldash/internal/logging"
	"github.com/Iron-Ham/scrolldash/internal/sheet"
	"github.com/Iron-Ham/scrolldash/internal/timer"
	"github.com/Iron-Ham/scrolldash/internal/tui/keymap"
	"github.com/Iron-Ham/scrolldash/internal/tui/styles"
)

// Panel slots, left to right.
const (
	PanelThisMonth autoscroll.PanelID = iota + 1
	PanelNextMonth
	PanelTargets

	panelCount = 3
)

// Options configure the dashboard.
type Options struct {
	// Path is the spreadsheet to display.
	Path string
	// Config defaults to config.Default().
	Config *config.Config
	// Logger defaults to a no-op logger; the dashboard owns the screen, so
	// it never logs to stderr.
	Logger *logging.Logger
	// Loader defaults to reading the OS filesystem.
	Loader *sheet.Loader
	// Now defaults to time.Now.
	Now func() time.Time
	// Bus receives panel and sheet events. The default bus writes every
	// event to Logger at debug level.
	Bus *event.Bus
}

func (o *Options) setDefaults() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Logger == nil {
		o.Logger = logging.NopLogger()
	}
	if o.Loader == nil {
		o.Loader = sheet.NewLoader()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Bus == nil {
		o.Bus = event.NewBus(o.Logger)
		o.Bus.LogAll(o.Logger)
	}
}

// Model holds the dashboard state
type Model struct {
	opts   Options
	logger *logging.Logger

	sched    timer.Scheduler
	engine   *autoscroll.Engine
	panels   [panelCount]*scrollPanel
	counters *counters

	styles styles.Styles
	keys   keymap.KeyMap
	help   help.Model

	// Data state
	summary  analytics.Summary
	records  int
	loadedAt time.Time
	loaded   bool
	err      error

	// UI state
	width    int
	height   int
	stopped  bool
	quitting bool
}

// NewModel creates the dashboard model. Every timer the model and its
// engine need is scheduled on sched.
func NewModel(opts Options, sched timer.Scheduler) *Model {
	opts.setDefaults()
	cfg := opts.Config

	speed, err := autoscroll.ParseSpeed(cfg.Scroll.InitialSpeed)
	if err != nil {
		opts.Logger.Warn("invalid initial speed, using default", "speed", cfg.Scroll.InitialSpeed, "error", err)
		speed = autoscroll.SpeedNormal
	}

	m := &Model{
		opts:     opts,
		logger:   opts.Logger.WithComponent("tui"),
		sched:    sched,
		counters: newCounters(sched),
		styles:   styles.ForTheme(cfg.TUI.Theme),
		keys:     keymap.Default(),
		help:     help.New(),
	}

	panels := make([]autoscroll.Panel, panelCount)
	for i := range m.panels {
		m.panels[i] = newScrollPanel(cfg.Scroll.PixelsPerRow)
		panels[i] = m.panels[i]
	}
	m.engine = autoscroll.New(sched, panels,
		autoscroll.WithCadence(cfg.Scroll.Cadence()),
		autoscroll.WithDwell(cfg.Scroll.Dwell()),
		autoscroll.WithTolerance(cfg.Scroll.TolerancePx),
		autoscroll.WithInitialSpeed(speed),
		autoscroll.WithLogger(opts.Logger),
		autoscroll.WithBus(opts.Bus),
	)
	return m
}

// Engine exposes the auto-scroll engine driving the panels.
func (m *Model) Engine() *autoscroll.Engine {
	return m.engine
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	return loadCmd(m.opts.Loader, m.opts.Path, m.opts.Now)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case loadedMsg:
		m.handleLoaded(msg)
		return m, nil

	case reloadMsg:
		m.logger.Info("reloading", "path", m.opts.Path)
		return m, m.load()

	case fireMsg:
		if ts, ok := m.sched.(*teaScheduler); ok {
			ts.Dispatch(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleLoaded(msg loadedMsg) {
	m.loadedAt = msg.loadedAt
	if msg.err != nil {
		// Keep showing the last good data.
		m.err = msg.err
		m.logger.Warn("load failed", "path", m.opts.Path, "error", msg.err)
		m.opts.Bus.Publish(event.NewSheetFailedEvent(msg.loadedAt, m.opts.Path, msg.err))
		return
	}

	m.err = nil
	m.loaded = true
	m.summary = msg.summary
	m.records = msg.records
	m.logger.Info("loaded",
		"path", m.opts.Path,
		"records", msg.records,
		"this_month", len(msg.summary.Renewals[0].Items),
		"next_month", len(msg.summary.Renewals[1].Items),
		"targets", len(msg.summary.SalesTargets),
	)
	m.opts.Bus.Publish(event.NewSheetLoadedEvent(msg.loadedAt, m.opts.Path, msg.records))

	if m.opts.Config.TUI.AnimateCounters {
		m.counters.Animate(msg.summary.Metrics)
	} else {
		m.counters.Set(msg.summary.Metrics)
	}
	m.refresh()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.stopped = !m.stopped
		if m.stopped {
			m.engine.Shutdown()
		} else {
			m.engine.StartAll()
		}
		m.logger.Debug("auto-scroll toggled", "stopped", m.stopped)
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, func() tea.Msg { return reloadMsg{} }

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refresh()
		return m, nil
	}

	for i, b := range m.keys.Speed {
		if key.Matches(msg, b) {
			id := autoscroll.PanelID(i + 1)
			speed := m.engine.CycleSpeed(id)
			if m.stopped {
				m.engine.Stop(id)
			}
			m.logger.Debug("panel speed", "panel", int(id), "speed", speed.Label())
			return m, nil
		}
	}
	return m, nil
}

// refresh re-renders panel content for the current size and data, then
// restarts scrolling so every panel re-measures its extent.
func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}

	rects := layoutPanels(m.width, m.height, m.helpRows(), panelCount)
	for i, p := range m.panels {
		w, h := rects[i].bodySize()
		p.SetSize(w, h)
		p.SetContent(m.panelContent(autoscroll.PanelID(i+1), w))
	}

	if !m.stopped {
		m.engine.StartAll()
	}
}

func (m *Model) helpRows() int {
	return lipgloss.Height(m.help.View(m.keys))
}

func (m *Model) panelContent(id autoscroll.PanelID, width int) string {
	if !m.loaded {
		return ""
	}
	switch id {
	case PanelThisMonth:
		return renderRenewals(m.styles, m.summary.Renewals[0], width)
	case PanelNextMonth:
		return renderRenewals(m.styles, m.summary.Renewals[1], width)
	default:
		return renderTargets(m.styles, m.summary.SalesTargets, width)
	}
}

func (m *Model) panelTitle(id autoscroll.PanelID) (string, int) {
	switch id {
	case PanelThisMonth:
		return renewalsTitle(m.summary.Renewals[0]), len(m.summary.Renewals[0].Items)
	case PanelNextMonth:
		return renewalsTitle(m.summary.Renewals[1]), len(m.summary.Renewals[1].Items)
	default:
		return "Sales Targets", len(m.summary.SalesTargets)
	}
}

// Shutdown stops every panel and animation. It is safe to call more than once.
func (m *Model) Shutdown() {
	m.quitting = true
	m.engine.Shutdown()
	m.counters.Stop()
	if ts, ok := m.sched.(*teaScheduler); ok {
		ts.Close()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(renderMetrics(m.styles, m.counters.Value(), m.width))
	b.WriteString("\n")

	rects := layoutPanels(m.width, m.height, m.helpRows(), panelCount)
	views := make([]string, panelCount)
	for i, p := range m.panels {
		id := autoscroll.PanelID(i + 1)
		title, count := m.panelTitle(id)
		w, _ := rects[i].bodySize()
		header := panelHeader(m.styles, title, count, m.engine.Speed(id), m.engine.State(id), w)
		views[i] = renderPanel(m.styles, header, p.View(), rects[i].width, rects[i].height)
	}
	if stacked(m.width) {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, views...))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render("Policy Dashboard")
	if m.stopped {
		title += " " + m.styles.Paused.Render("[auto-scroll stopped]")
	}

	var sub string
	switch {
	case m.err != nil:
		sub = renderError(m.styles, m.opts.Path, m.err, m.width)
	case !m.loaded:
		sub = m.styles.Subtitle.Render(fit("Loading "+m.opts.Path+"...", m.width))
	default:
		sub = m.styles.Subtitle.Render(fit(
			m.opts.Path+" · "+pluralize(m.records, "policy", "policies")+" · updated "+m.loadedAt.Format("15:04:05"),
			m.width,
		))
	}
	return fit(title, m.width) + "\n" + sub
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
