package domain

import (
	"fmt"
	"time"
)

// Session mirrors a completed tracker session for read-only aggregation.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Label     string
}

func (s Session) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Range selects sessions whose start falls within [From, To). A zero bound
// is unbounded on that side.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) Valid() bool {
	if r.From.IsZero() || r.To.IsZero() {
		return true
	}
	return !r.From.After(r.To)
}

func (r Range) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// DayRange is the local calendar day containing t.
func DayRange(t time.Time) Range {
	local := t.Local()
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return Range{From: from, To: from.AddDate(0, 0, 1)}
}

// Filter keeps the sessions starting within r, preserving log order.
func Filter(log []Session, r Range) []Session {
	out := make([]Session, 0, len(log))
	for _, s := range log {
		if r.Contains(s.StartedAt) {
			out = append(out, s)
		}
	}
	return out
}

// Total sums the durations of the sessions starting within r.
func Total(log []Session, r Range) time.Duration {
	total := time.Duration(0)
	for _, s := range log {
		if r.Contains(s.StartedAt) {
			total += s.Duration()
		}
	}
	return total
}

// Bucket is a stats aggregation granularity.
type Bucket string

const (
	BucketDay  Bucket = "day"
	BucketWeek Bucket = "week"
)

// DayKey and WeekKey are the projection grouping keys for a session start.
func DayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

func WeekKey(t time.Time) string {
	year, week := t.Local().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// BucketTotal is one aggregated row.
type BucketTotal struct {
	Key      string
	Total    time.Duration
	Sessions int
}
