package clock

import "time"

// Clock is the single source of time for session operations. Services take
// it as a dependency so tests can pin every timestamp.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC; rendering in local time happens
// at the edges.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
