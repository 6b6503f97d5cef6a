// Package testutil provides helpers for the lifecycle suites.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/neight-app/neight/internal/config"
)

// SettingsLayout is an isolated install layout for one test: a program
// directory and a per-user config directory under a throwaway base.
type SettingsLayout struct {
	BaseDir    string
	ProgramDir string
	UserDir    string
}

// NewSettingsLayout creates the layout with an existing, writable
// program directory. The user directory is left for the store to create.
func NewSettingsLayout() (*SettingsLayout, error) {
	base, err := os.MkdirTemp("", "neight-test-*")
	if err != nil {
		return nil, err
	}
	l := &SettingsLayout{
		BaseDir:    base,
		ProgramDir: filepath.Join(base, "program"),
		UserDir:    filepath.Join(base, "userconf", config.AppName),
	}
	if err := os.MkdirAll(l.ProgramDir, 0755); err != nil {
		os.RemoveAll(base)
		return nil, err
	}
	return l, nil
}

// Candidates returns the candidate locations for this layout.
func (l *SettingsLayout) Candidates() config.Candidates {
	return config.Candidates{
		Primary:  filepath.Join(l.ProgramDir, config.SettingsFileName),
		Fallback: filepath.Join(l.UserDir, config.SettingsFileName),
		Legacy:   []string{filepath.Join(l.ProgramDir, "config.json")},
	}
}

// NewStore creates a store resolved against this layout.
func (l *SettingsLayout) NewStore() *config.Store {
	return config.NewWithCandidates(l.Candidates())
}

// WriteFile writes a file at path, creating parent directories as needed.
func (l *SettingsLayout) WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

// WriteJSON writes doc at path as JSON.
func (l *SettingsLayout) WriteJSON(path string, doc map[string]any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return l.WriteFile(path, data)
}

// ReadJSON reads the JSON document at path.
func (l *SettingsLayout) ReadJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// BlockProgramDir replaces the program directory with a regular file, so
// every write under it fails from then on.
func (l *SettingsLayout) BlockProgramDir() error {
	if err := os.RemoveAll(l.ProgramDir); err != nil {
		return err
	}
	return os.WriteFile(l.ProgramDir, []byte("not a directory"), 0644)
}

// Cleanup removes everything the layout created.
func (l *SettingsLayout) Cleanup() {
	os.RemoveAll(l.BaseDir)
}
