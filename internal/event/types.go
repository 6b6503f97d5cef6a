package event

// SettingsLoadedData is the data for settings.loaded events.
type SettingsLoadedData struct {
	Path string `json:"path"`
	Keys int    `json:"keys"`
}

// SettingsSavedData is the data for settings.saved events.
type SettingsSavedData struct {
	Path string `json:"path"`
}

// SettingsMigratedData is the data for settings.migrated events.
// Source is the legacy or secondary file the document came from.
type SettingsMigratedData struct {
	Source string `json:"source"`
	Path   string `json:"path"`
}

// SettingsRetargetedData is the data for settings.retargeted events,
// published when a failed primary write moved the active path to the
// fallback location.
type SettingsRetargetedData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SettingsReloadedData is the data for settings.reloaded events,
// published when the settings file changed on disk outside the app.
type SettingsReloadedData struct {
	Path string `json:"path"`
}

// DocumentOpenedData is the data for document.opened events.
type DocumentOpenedData struct {
	Path string `json:"path"`
}

// DocumentSavedData is the data for document.saved events.
type DocumentSavedData struct {
	Path string `json:"path"`
}

// DocumentAutosavedData is the data for document.autosaved events.
type DocumentAutosavedData struct {
	Path string `json:"path"`
}
