package dto

import "time"

type SessionOutput struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Label     string
}

type ReportOutput struct {
	From     time.Time
	To       time.Time
	Total    time.Duration
	Sessions []SessionOutput
}

type SummaryOutput struct {
	Date     time.Time
	Total    time.Duration
	Sessions int
}

type BucketOutput struct {
	Key      string
	Total    time.Duration
	Sessions int
}

type ReindexOutput struct {
	Sessions int
}
