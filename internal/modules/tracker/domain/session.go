package domain

import "time"

const SchemaVersion = 1

// ActiveMarker is the record of a session that has been started but not
// yet stopped. At most one exists at a time; it exists iff a session is open.
type ActiveMarker struct {
	SessionID string
	StartedAt time.Time
	Label     string
}

// Session is one completed deep-work interval. EndedAt is never before
// StartedAt.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Label     string
}

func (s Session) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// State is everything the tool persists between invocations: the active
// marker, if any, and the append-only history of completed sessions,
// ordered by start time ascending.
type State struct {
	Active  *ActiveMarker
	History []Session
}
