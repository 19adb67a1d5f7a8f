package history

import "time"

// Entry is one executed command line.
type Entry struct {
	// ID is a uuid assigned on append.
	ID string
	// SessionID groups entries by shell run.
	SessionID string
	// Command is the line as the user entered it, after nothing more than
	// whitespace trimming.
	Command string
	// Cwd is the working directory the command ran in.
	Cwd string
	// CreatedAt is the append time in UTC.
	CreatedAt time.Time
}
