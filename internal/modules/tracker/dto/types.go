package dto

import "time"

type StartInput struct {
	Label string
}

type StartOutput struct {
	SessionID string
	StartedAt time.Time
	Label     string
}

type StopOutput struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Label     string
	NotePath  string
	// NoteWarning is set when the session was recorded but the journal
	// note could not be written.
	NoteWarning string
}

type ActiveOutput struct {
	SessionID string
	StartedAt time.Time
	Label     string
}

type SessionOutput struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Label     string
}
