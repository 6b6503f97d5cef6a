package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/neight-app/neight/internal/logging"
)

// watchDebounce coalesces the burst of filesystem events most editors
// emit for a single logical change.
const watchDebounce = 200 * time.Millisecond

// Watcher watches one settings file for external modification.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	onChange func()

	mu    sync.Mutex
	timer *time.Timer
}

// WatchFile watches path and invokes onChange shortly after the file is
// written or created. The parent directory is watched rather than the
// file itself, so replace-by-rename (how the store writes) is seen too.
// Self-initiated saves arrive here like any other change; callers must
// treat onChange as idempotent.
func WatchFile(path string, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{fw: fw, path: abs, onChange: onChange}
	go w.loop()
	return w, nil
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.bounce()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logging.Warn().Err(err).Msg("settings watcher error")
		}
	}
}

// bounce schedules onChange after the debounce window, restarting the
// window if more events arrive first.
func (w *Watcher) bounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.onChange)
}

// Close stops watching and cancels any pending debounced callback.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return w.fw.Close()
}
