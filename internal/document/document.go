// Package document tracks the file behind the editor buffer: its path,
// its text, and whether there are unsaved changes. Editing itself happens
// elsewhere; the session only sees whole-buffer updates.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoPath is returned by Save when the session has no file yet.
var ErrNoPath = errors.New("no file path set")

// Session is the host-side state of one open file. It is shared between
// the host and the autosave scheduler, so its methods are safe for
// concurrent use.
type Session struct {
	mu       sync.RWMutex
	path     string
	text     string
	modified bool
}

// NewSession returns an empty session with no file attached.
func NewSession() *Session {
	return &Session{}
}

// Path returns the file behind the session, empty for a new buffer.
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Text returns the current buffer content.
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Modified reports whether the buffer has unsaved changes.
func (s *Session) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// Open loads the file at path into the session, replacing the buffer.
func (s *Session) Open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	s.mu.Lock()
	s.path = path
	s.text = string(data)
	s.modified = false
	s.mu.Unlock()
	return nil
}

// Create aims the session at a file that does not exist yet. Nothing is
// written until the first save.
func (s *Session) Create(path string) {
	s.mu.Lock()
	s.path = path
	s.text = ""
	s.modified = false
	s.mu.Unlock()
}

// SetText replaces the buffer and marks it modified.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.modified = true
	s.mu.Unlock()
}

// AppendLine adds one line to the buffer and marks it modified.
func (s *Session) AppendLine(line string) {
	s.mu.Lock()
	s.text += line + "\n"
	s.modified = true
	s.mu.Unlock()
}

// Save writes the buffer to the session's file.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// SaveTo writes the buffer to path and makes it the session's file.
func (s *Session) SaveTo(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	return s.saveLocked()
}

func (s *Session) saveLocked() error {
	if s.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(s.path, []byte(s.text), 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", filepath.Base(s.path), err)
	}
	s.modified = false
	return nil
}
