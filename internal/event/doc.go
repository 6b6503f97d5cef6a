/*
Package event provides a type-safe pub/sub event system for the Neight host.

The settings store itself is a leaf component that never touches this bus;
everything observable about it (which path became active, that a migration
ran, that a save landed) is surfaced by the host publishing events here. The
GUI layer and any diagnostic listeners subscribe instead of reaching into
the store.

# Architecture

The package is built on top of watermill's gochannel for infrastructure while
keeping direct-call semantics, so event data keeps its Go types end to end.
Both synchronous and asynchronous publishing are available.

# Event Types

Settings events:
  - settings.loaded: document read at startup
  - settings.saved: document persisted
  - settings.migrated: document moved forward from a legacy or secondary file
  - settings.retargeted: active path moved to the fallback after a failed write
  - settings.reloaded: settings file changed on disk outside the app

Document events:
  - document.opened: a file was opened into the session
  - document.saved: the session buffer was written out
  - document.autosaved: the autosave scheduler wrote the buffer

# Basic Usage

Publishing:

	event.Publish(event.Event{
		Type: event.SettingsSaved,
		Data: event.SettingsSavedData{Path: store.ActivePath()},
	})

Subscribing:

	unsubscribe := event.Subscribe(event.SettingsRetargeted, func(e event.Event) {
		data := e.Data.(event.SettingsRetargetedData)
		logging.Warn().Str("to", data.To).Msg("settings moved to fallback location")
	})
	defer unsubscribe()

# Subscriber Safety

PublishSync calls subscribers in the publisher's goroutine. Subscribers must
complete quickly, must not publish re-entrantly, and must not block on channels
without a default case.

# Custom Bus Instances

For testing or isolation:

	bus := event.NewBus()
	defer bus.Close()

The global bus can be replaced wholesale in test cleanup with event.Reset.
*/
package event
