package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/scrolldash/internal/analytics"
	"github.com/Iron-Ham/scrolldash/internal/sheet"
)

// loadedMsg carries the result of reading and summarising the spreadsheet.
type loadedMsg struct {
	summary  analytics.Summary
	records  int
	loadedAt time.Time
	err      error
}

// reloadMsg asks the model to read the spreadsheet again, e.g. after the
// file changed on disk.
type reloadMsg struct{}

// loadCmd reads path off the event loop and summarises it relative to now.
func loadCmd(loader *sheet.Loader, path string, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		records, err := loader.Load(path)
		if err != nil {
			return loadedMsg{err: err, loadedAt: now()}
		}
		t := now()
		return loadedMsg{
			summary:  analytics.Compute(records, t),
			records:  len(records),
			loadedAt: t,
		}
	}
}
