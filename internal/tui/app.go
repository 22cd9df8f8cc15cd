package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/scrolldash/internal/watch"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   *Model
	sched   *teaScheduler
	opts    Options
}

// New creates a new dashboard application
func New(opts Options) *App {
	opts.setDefaults()
	sched := newTeaScheduler()
	return &App{
		model: NewModel(opts, sched),
		sched: sched,
		opts:  opts,
	}
}

// Run starts the dashboard and blocks until it exits.
func (a *App) Run() error {
	// Panels stop scrolling however the program ends.
	defer a.model.Shutdown()

	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)
	a.sched.SetSender(a.program.Send)

	if a.opts.Config.Watch.Enabled {
		fw, err := watch.New(a.opts.Path, a.opts.Config.Watch.Debounce(), func() {
			a.program.Send(reloadMsg{})
		}, a.opts.Logger)
		if err != nil {
			// Manual reload still works.
			a.opts.Logger.Warn("file watching disabled", "path", a.opts.Path, "error", err)
		} else {
			fw.Start()
			defer fw.Close()
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			a.program.Send(tea.Quit())
		case <-done:
		}
	}()

	_, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(done)

	return err
}
