// Package watch reloads the dashboard when its spreadsheet changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/scrolldash/internal/logging"
)

// DefaultDebounce coalesces the burst of events most editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher calls a callback after a single file is written, created or
// replaced. It watches the parent directory so atomic-rename saves are seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	logger   *logging.Logger

	wg        conc.WaitGroup
	stopCh    chan struct{}
	closeOnce sync.Once
}

// New creates a watcher for path. Call Start to begin delivering events.
func New(path string, debounce time.Duration, onChange func(), logger *logging.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	return &FileWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger.WithComponent("watch"),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (fw *FileWatcher) Start() {
	fw.wg.Go(fw.loop)
}

// Close stops the watcher and waits for the event loop to exit.
// It is safe to call more than once.
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.stopCh)
		err = fw.watcher.Close()
		fw.wg.Wait()
	})
	return err
}

func (fw *FileWatcher) loop() {
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C
	defer debounceTimer.Stop()
	pending := false

	for {
		select {
		case <-fw.stopCh:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			fw.logger.Debug("spreadsheet event", "op", event.Op.String())
			pending = true
			debounceTimer.Reset(fw.debounce)

		case <-debounceTimer.C:
			if pending {
				pending = false
				fw.onChange()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", "error", err.Error())
		}
	}
}
