// Package app wires the persistence subsystem to an editing session: it
// owns the settings store, the typed preferences, the document session,
// the autosave scheduler, and the settings watcher, and publishes bus
// events for everything observable.
package app

import (
	"os"
	"sync"

	"github.com/neight-app/neight/internal/autosave"
	"github.com/neight-app/neight/internal/config"
	"github.com/neight-app/neight/internal/document"
	"github.com/neight-app/neight/internal/event"
	"github.com/neight-app/neight/internal/logging"
	"github.com/neight-app/neight/internal/settings"
)

// App is the host for one editing session, minus its GUI.
//
// The store is not safe for concurrent use on its own; every store call
// goes through App methods holding mu, which serializes the host, the
// watcher callback, and shutdown.
type App struct {
	doc   *document.Session
	saver *autosave.Scheduler

	mu      sync.Mutex
	store   *config.Store
	prefs   settings.Preferences
	watcher *config.Watcher
}

// New loads settings through store and seeds the session from them.
func New(store *config.Store) *App {
	a := &App{
		store: store,
		doc:   document.NewSession(),
	}
	a.saver = autosave.New(a.doc, func(path string) {
		event.Publish(event.Event{
			Type: event.DocumentAutosaved,
			Data: event.DocumentAutosavedData{Path: path},
		})
	})
	store.NotifyMigrations(func(source, active string) {
		event.Publish(event.Event{
			Type: event.SettingsMigrated,
			Data: event.SettingsMigratedData{Source: source, Path: active},
		})
	})

	doc := store.Load()
	a.prefs = settings.FromDocument(doc)
	a.saver.SetInterval(a.prefs.AutosaveInterval)

	event.PublishSync(event.Event{
		Type: event.SettingsLoaded,
		Data: event.SettingsLoadedData{Path: store.ActivePath(), Keys: len(doc)},
	})
	logging.Info().Str("path", store.ActivePath()).Int("keys", len(doc)).Msg("settings loaded")
	return a
}

// Document returns the document session.
func (a *App) Document() *document.Session {
	return a.doc
}

// Autosave returns the autosave scheduler.
func (a *App) Autosave() *autosave.Scheduler {
	return a.saver
}

// Preferences returns the currently applied preferences.
func (a *App) Preferences() settings.Preferences {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prefs
}

// ActiveSettingsPath returns the settings file currently in use.
func (a *App) ActiveSettingsPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.ActivePath()
}

// SetPreferences applies p to the session and persists it.
func (a *App) SetPreferences(p settings.Preferences) {
	a.mu.Lock()
	a.prefs = p
	a.persistLocked()
	a.mu.Unlock()
	a.saver.SetInterval(p.AutosaveInterval)
}

// SetAutosaveInterval changes and persists just the autosave timer.
func (a *App) SetAutosaveInterval(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	a.mu.Lock()
	a.prefs.AutosaveInterval = minutes
	a.persistLocked()
	a.mu.Unlock()
	a.saver.SetInterval(minutes)
}

// UpdateWindowState records the geometry the GUI reports. It is called
// on every resize, so nothing is persisted here; the values land on disk
// with the next preference change or at shutdown.
func (a *App) UpdateWindowState(width, height int, maximized bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prefs.WindowWidth = width
	a.prefs.WindowHeight = height
	a.prefs.WindowMaximized = maximized
}

// OpenFile loads path into the session and records it as the last opened
// file.
func (a *App) OpenFile(path string) error {
	if err := a.doc.Open(path); err != nil {
		return err
	}
	a.rememberOpened(path)
	return nil
}

// OpenOrCreate opens path, or aims an empty buffer at it when the file
// does not exist yet.
func (a *App) OpenOrCreate(path string) error {
	err := a.doc.Open(path)
	if os.IsNotExist(err) {
		a.doc.Create(path)
		err = nil
	}
	if err != nil {
		return err
	}
	a.rememberOpened(path)
	return nil
}

func (a *App) rememberOpened(path string) {
	a.mu.Lock()
	a.prefs.LastOpenedFile = path
	a.persistLocked()
	a.mu.Unlock()

	event.Publish(event.Event{
		Type: event.DocumentOpened,
		Data: event.DocumentOpenedData{Path: path},
	})
	logging.Info().Str("path", path).Msg("opened file")
}

// OpenLastFile reopens the file from the previous session. It reports
// false when no last file is recorded or the file is gone.
func (a *App) OpenLastFile() (string, bool) {
	a.mu.Lock()
	last := a.prefs.LastOpenedFile
	a.mu.Unlock()

	if last == "" {
		return "", false
	}
	if _, err := os.Stat(last); err != nil {
		return "", false
	}
	if err := a.OpenFile(last); err != nil {
		logging.Warn().Str("path", last).Err(err).Msg("could not reopen last file")
		return "", false
	}
	return last, true
}

// SaveDocument writes the buffer to its file.
func (a *App) SaveDocument() error {
	if err := a.doc.Save(); err != nil {
		return err
	}
	event.Publish(event.Event{
		Type: event.DocumentSaved,
		Data: event.DocumentSavedData{Path: a.doc.Path()},
	})
	return nil
}

// WatchSettings starts picking up external edits to the active settings
// file. The session works fine without it.
func (a *App) WatchSettings() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.watcher != nil {
		return nil
	}
	w, err := config.WatchFile(a.store.ActivePath(), a.reloadPreferences)
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// reloadPreferences runs on the watcher goroutine after the settings
// file changed on disk.
func (a *App) reloadPreferences() {
	a.mu.Lock()
	doc := a.store.Load()
	a.prefs = settings.FromDocument(doc)
	interval := a.prefs.AutosaveInterval
	path := a.store.ActivePath()
	a.mu.Unlock()

	a.saver.SetInterval(interval)
	event.Publish(event.Event{
		Type: event.SettingsReloaded,
		Data: event.SettingsReloadedData{Path: path},
	})
	logging.Info().Str("path", path).Msg("settings reloaded from disk")
}

// Shutdown persists the final session state and stops the background
// pieces. The app is not usable afterwards.
func (a *App) Shutdown() {
	a.saver.Stop()

	a.mu.Lock()
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if path := a.doc.Path(); path != "" {
		a.prefs.LastOpenedFile = path
	}
	a.persistLocked()
	a.mu.Unlock()

	logging.Info().Msg("session state persisted")
}

// persistLocked merges the current preferences into a freshly loaded
// document and saves it, so keys written by other Neight features stay
// intact. A save that lands on a different path than the load started
// from means the store retargeted mid-save.
func (a *App) persistLocked() {
	before := a.store.ActivePath()
	doc := a.prefs.ApplyTo(a.store.Load())
	a.store.Save(doc)
	after := a.store.ActivePath()

	if after != before {
		event.Publish(event.Event{
			Type: event.SettingsRetargeted,
			Data: event.SettingsRetargetedData{From: before, To: after},
		})
	}
	event.Publish(event.Event{
		Type: event.SettingsSaved,
		Data: event.SettingsSavedData{Path: after},
	})
}
