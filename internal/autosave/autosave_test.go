package autosave

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	mu       sync.Mutex
	path     string
	modified bool
	failSave bool
	attempts int
	saves    int
}

func (f *fakeTarget) Path() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path
}

func (f *fakeTarget) Modified() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modified
}

func (f *fakeTarget) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.failSave {
		return errors.New("disk full")
	}
	f.saves++
	f.modified = false
	return nil
}

func (f *fakeTarget) counts() (attempts, saves int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts, f.saves
}

func TestSavesModifiedTarget(t *testing.T) {
	target := &fakeTarget{path: "/tmp/note.txt", modified: true}
	s := New(target, nil)
	defer s.Stop()

	s.SetIntervalDuration(20 * time.Millisecond)

	require.Eventually(t, func() bool {
		_, saves := target.counts()
		return saves == 1
	}, 2*time.Second, 10*time.Millisecond)

	// The save cleared the modified flag, so further ticks do nothing.
	time.Sleep(100 * time.Millisecond)
	_, saves := target.counts()
	assert.Equal(t, 1, saves)
}

func TestSkipsUnmodifiedTarget(t *testing.T) {
	target := &fakeTarget{path: "/tmp/note.txt", modified: false}
	s := New(target, nil)
	defer s.Stop()

	s.SetIntervalDuration(20 * time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	attempts, _ := target.counts()
	assert.Zero(t, attempts)
}

func TestSkipsTargetWithoutPath(t *testing.T) {
	target := &fakeTarget{path: "", modified: true}
	s := New(target, nil)
	defer s.Stop()

	s.SetIntervalDuration(20 * time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	attempts, _ := target.counts()
	assert.Zero(t, attempts)
}

func TestKeepsRunningAfterSaveFailure(t *testing.T) {
	target := &fakeTarget{path: "/tmp/note.txt", modified: true, failSave: true}
	s := New(target, nil)
	defer s.Stop()

	s.SetIntervalDuration(20 * time.Millisecond)

	require.Eventually(t, func() bool {
		attempts, _ := target.counts()
		return attempts >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotifiesAfterSave(t *testing.T) {
	target := &fakeTarget{path: "/tmp/note.txt", modified: true}
	savedPaths := make(chan string, 1)
	s := New(target, func(path string) { savedPaths <- path })
	defer s.Stop()

	s.SetIntervalDuration(20 * time.Millisecond)

	select {
	case path := <-savedPaths:
		assert.Equal(t, "/tmp/note.txt", path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the saved callback")
	}
}

func TestZeroIntervalStops(t *testing.T) {
	target := &fakeTarget{path: "/tmp/note.txt", modified: true}
	s := New(target, nil)
	defer s.Stop()

	s.SetIntervalDuration(20 * time.Millisecond)
	require.Eventually(t, func() bool {
		_, saves := target.counts()
		return saves >= 1
	}, 2*time.Second, 10*time.Millisecond)

	s.SetInterval(0)
	target.mu.Lock()
	target.modified = true
	target.mu.Unlock()
	attemptsBefore, _ := target.counts()

	time.Sleep(150 * time.Millisecond)
	attemptsAfter, _ := target.counts()
	assert.Equal(t, attemptsBefore, attemptsAfter)
}

func TestStopIsIdempotent(t *testing.T) {
	s := New(&fakeTarget{}, nil)
	s.SetIntervalDuration(time.Hour)
	s.Stop()
	s.Stop()

	// A stopped scheduler can restart.
	s.SetIntervalDuration(time.Hour)
	s.Stop()
}
