package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "Neight"
	// SettingsFileName is the settings document filename at every candidate location.
	SettingsFileName = "settings.json"
	// probeFileName is the zero-byte file used to test directory writability.
	probeFileName = ".neight-write-test"
)

// legacyFileNames are superseded settings filenames, in migration priority order.
var legacyFileNames = []string{"config.json"}

// ProgramDir returns the directory containing the running executable.
// When the executable path cannot be determined the working directory
// stands in for it.
func ProgramDir() string {
	exe, err := os.Executable()
	if err != nil {
		if wd, werr := os.Getwd(); werr == nil {
			return wd
		}
		return "."
	}
	return filepath.Dir(exe)
}

// UserConfigDir returns the per-user configuration directory for the given
// application: a local (non-roaming) application-data directory on Windows,
// Application Support on macOS, and XDG_CONFIG_HOME (default ~/.config)
// everywhere else.
func UserConfigDir(appName string) string {
	switch runtime.GOOS {
	case "windows":
		base := getEnvOrDefault("LOCALAPPDATA", filepath.Join(homeDir(), "AppData", "Local"))
		return filepath.Join(base, appName)
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Application Support", appName)
	default:
		base := getEnvOrDefault("XDG_CONFIG_HOME", filepath.Join(homeDir(), ".config"))
		return filepath.Join(base, appName)
	}
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return "."
}
