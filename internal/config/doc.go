/*
Package config implements Neight's settings persistence: resolving the one
authoritative location of settings.json for the current run, loading the
settings document from it with fallback and legacy-migration logic, and
persisting updates back, degrading to a per-user location when the install
folder is not writable.

# Candidate Locations

Three kinds of location can hold the document:

  - Primary: settings.json next to the running program. Portable installs
    live entirely here.
  - Fallback: settings.json in the per-user configuration directory
    (LOCALAPPDATA on Windows, ~/Library/Application Support on macOS,
    XDG_CONFIG_HOME or ~/.config elsewhere), under the application name.
  - Legacy: superseded filenames next to the primary (config.json), read
    once and migrated forward.

# Resolution

Resolve picks the active path once, eagerly, when a Store is constructed:

 1. Primary exists and is readable: primary.
 2. Fallback exists: fallback.
 3. Primary's directory accepts a probe write (a zero-byte file created
    and removed): primary, to be created on first save.
 4. Otherwise: fallback, to be created on first save. Whether the fallback
    directory is writable right now is deliberately not checked; write
    failures are a save-time concern.

The same Resolve function backs the application store and the "neight
paths" diagnostic, so the tool can never drift from what the app does.

# Loading

Load never returns an error. A candidate that is missing, unreadable, or
not a JSON object counts as "no document" (each case is distinguished
internally and logged, not suppressed wholesale). When the active path has
no document, Load adopts a primary-location document if the fallback is
active (leaving the primary in place), then tries each legacy file in
order, migrating the first hit onto the active path and deleting the
source. A first run with nothing anywhere yields an empty document.

Files are decoded through a tolerant first stage that strips comments and
trailing commas before strict JSON decoding.

# Saving

Save writes indented UTF-8 JSON through a temp file and rename. When the
active path is the primary and the write fails, Save creates the fallback
directory and retries there once; success permanently retargets the store
to the fallback. When the retry fails too, the write is abandoned. Save
never panics and never reports an error to the caller.

The store performs plain blocking filesystem calls and nothing else: no
locks, no timers, no goroutines, no event publishing. Hosts that want to
surface migrations register a synchronous callback via NotifyMigrations
and announce from there; a retarget shows up as ActivePath changing
across a Save.

# Watching

WatchFile observes the active file's directory via fsnotify and delivers
debounced change callbacks, letting the host pick up edits made to
settings.json while the application runs. The Store itself never starts a
watcher.

# Document Shape

The document is an opaque map[string]any. The store never inspects or
drops keys; collaborators that want typed access layer it on top (see the
settings package). Keys unknown to the current build survive round trips
untouched.
*/
package config
