// Package env captures the host values prompt rendering resolves against.
package env

import (
	"os"
	"os/user"
)

// Snapshot is a read-only bundle of host values taken at one point in time.
// The renderer never mutates or caches it; callers take a fresh one per
// prompt.
type Snapshot struct {
	Username   string
	Hostname   string
	WorkingDir string
	HomeDir    string
}

// Capture reads the current host values.
//
// Username prefers $USER then $LOGNAME, matching login-shell convention,
// before falling back to the user database. Hostname falls back to "?" so a
// broken resolver never breaks the prompt. Missing values are empty strings
// (except hostname) and the renderer degrades per directive.
func Capture() Snapshot {
	return Snapshot{
		Username:   username(),
		Hostname:   hostname(),
		WorkingDir: workingDir(),
		HomeDir:    homeDir(),
	}
}

func username() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if name := os.Getenv("LOGNAME"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "?"
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "?"
	}
	return name
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
