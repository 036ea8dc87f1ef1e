package file

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ConsentWatcher = (*Watcher)(nil)

// debounceWindow coalesces the bursts of filesystem events editors produce
// for a single save.
const debounceWindow = 250 * time.Millisecond

// Watcher observes the configuration file for external edits using
// fsnotify. The parent directory is watched rather than the file itself
// so atomic rename-on-save editors are still seen.
type Watcher struct {
	filePath string

	mu      sync.Mutex
	fw      *fsnotify.Watcher
	events  chan struct{}
	closed  bool
	stopped chan struct{}
}

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(filePath string) *Watcher {
	return &Watcher{
		filePath: filePath,
		stopped:  make(chan struct{}),
	}
}

// Watch starts watching and returns the change channel.
func (w *Watcher) Watch() (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(w.filePath)); err != nil {
		fw.Close()
		return nil, err
	}

	w.mu.Lock()
	w.fw = fw
	w.events = make(chan struct{}, 1)
	w.mu.Unlock()

	go w.run(fw)
	return w.events, nil
}

// run forwards debounced config-file events until the watcher closes.
func (w *Watcher) run(fw *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		close(w.events)
	}()

	fire := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.filePath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			logger.Debug("Config file changed: %s", w.filePath)
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watcher error: %v", err)

		case <-w.stopped:
			return
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	close(w.stopped)

	if w.fw != nil {
		return w.fw.Close()
	}
	return nil
}
