package dataset

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph/errors"
)

// Watcher watches a locally selected dataset file and triggers reload
// callbacks when it changes. Editors tend to fire several events per save,
// so changes are debounced before callbacks run.
type Watcher struct {
	path           string
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	done           chan struct{}
	logger         *zap.SugaredLogger
}

// ReloadCallback is called with the watched path after a debounced change.
type ReloadCallback func(path string)

// NewWatcher creates a watcher for the given dataset file.
func NewWatcher(path string, logger *zap.SugaredLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "failed to watch dataset file %s", path)
	}

	return &Watcher{
		path:           path,
		watcher:        fsw,
		debouncePeriod: 500 * time.Millisecond,
		done:           make(chan struct{}),
		logger:         logger.Named("dataset.watcher"),
	}, nil
}

// OnReload registers a callback to run after the watched file changes.
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching in a background goroutine. Call Stop to end it.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends the watch loop and releases the fsnotify handle.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("Watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// scheduleReload resets the debounce timer; callbacks fire once the file has
// been quiet for the debounce period.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fireCallbacks)
}

func (w *Watcher) fireCallbacks() {
	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	w.logger.Infow("Dataset file changed, reloading", "path", w.path)
	for _, cb := range callbacks {
		cb(w.path)
	}
}
