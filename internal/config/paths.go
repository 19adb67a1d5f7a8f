// Package config loads gish configuration and resolves its on-disk paths.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "gish"

// ConfigDir returns the configuration directory, honoring XDG_CONFIG_HOME.
func ConfigDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appDir)
	}
	return filepath.Join(homeDir(), ".config", appDir)
}

// DataDir returns the data directory, honoring XDG_DATA_HOME.
func DataDir() string {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, appDir)
	}
	return filepath.Join(homeDir(), ".local", "share", appDir)
}

// StateDir returns the state directory, honoring XDG_STATE_HOME.
func StateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, appDir)
	}
	return filepath.Join(homeDir(), ".local", "state", appDir)
}

// RCFilePath returns the startup file sourced before the first prompt.
func RCFilePath() string {
	return filepath.Join(ConfigDir(), "gishrc")
}

// HistoryDBPath returns the SQLite history database location.
func HistoryDBPath() string {
	return filepath.Join(DataDir(), "history.db")
}

// LogFilePath returns the log file location. Logs never go to the
// terminal; it belongs to the prompt.
func LogFilePath() string {
	return filepath.Join(StateDir(), "gish.log")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
