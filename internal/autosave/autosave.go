// Package autosave periodically saves the open document while it has
// unsaved changes.
package autosave

import (
	"sync"
	"time"

	"github.com/neight-app/neight/internal/logging"
)

// Target is the saving surface the scheduler drives on each tick.
type Target interface {
	Path() string
	Modified() bool
	Save() error
}

// Scheduler runs the autosave timer the host configures from the
// preferences. A tick saves the target only when it has a file and
// unsaved changes; save failures are logged and swallowed so a full
// disk never interrupts the session.
type Scheduler struct {
	target Target
	saved  func(path string)

	mu   sync.Mutex
	stop chan struct{}
}

// New creates a stopped scheduler for target. saved, when non-nil, runs
// after every successful autosave with the path that was written.
func New(target Target, saved func(path string)) *Scheduler {
	return &Scheduler{target: target, saved: saved}
}

// SetInterval restarts the timer to fire every n minutes. Zero or a
// negative count stops autosaving.
func (s *Scheduler) SetInterval(minutes int) {
	s.SetIntervalDuration(time.Duration(minutes) * time.Minute)
}

// SetIntervalDuration is SetInterval with a free choice of unit.
func (s *Scheduler) SetIntervalDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	if d <= 0 {
		return
	}
	stop := make(chan struct{})
	s.stop = stop
	go s.run(d, stop)
}

// Stop halts autosaving. The scheduler can be restarted with SetInterval.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *Scheduler) run(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	path := s.target.Path()
	if path == "" || !s.target.Modified() {
		return
	}
	if err := s.target.Save(); err != nil {
		logging.Warn().Str("path", path).Err(err).Msg("autosave failed")
		return
	}
	logging.Debug().Str("path", path).Msg("autosaved")
	if s.saved != nil {
		s.saved(path)
	}
}
