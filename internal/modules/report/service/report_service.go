package service

import (
	"context"
	"fmt"
	"time"

	"dw/internal/modules/report/domain"
	reportout "dw/internal/modules/report/port/out"
	"dw/internal/platform/clock"
	apperrors "dw/internal/platform/errors"
)

// ReportService aggregates the completed-session log. It never mutates the
// log; the only write path is the stats projection rebuild.
type ReportService struct {
	clock  clock.Clock
	source reportout.SessionSource
	stats  reportout.StatsProjector
}

func NewReportService(clock clock.Clock, source reportout.SessionSource, stats reportout.StatsProjector) *ReportService {
	return &ReportService{clock: clock, source: source, stats: stats}
}

func (s *ReportService) Report(ctx context.Context, r domain.Range) (time.Duration, []domain.Session, error) {
	if !r.Valid() {
		return 0, nil, fmt.Errorf("%w: from %s is after to %s",
			apperrors.ErrInvalidRange, r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
	}
	log, err := s.source.Sessions(ctx)
	if err != nil {
		return 0, nil, err
	}
	return domain.Total(log, r), domain.Filter(log, r), nil
}

// Summary aggregates the local calendar day containing now.
func (s *ReportService) Summary(ctx context.Context) (domain.Range, time.Duration, int, error) {
	r := domain.DayRange(s.clock.Now())
	total, sessions, err := s.Report(ctx, r)
	if err != nil {
		return domain.Range{}, 0, 0, err
	}
	return r, total, len(sessions), nil
}

func (s *ReportService) ParseBucket(raw string) (domain.Bucket, error) {
	switch domain.Bucket(raw) {
	case domain.BucketDay:
		return domain.BucketDay, nil
	case domain.BucketWeek:
		return domain.BucketWeek, nil
	default:
		return "", fmt.Errorf("%w: bucket must be day or week, got %q", apperrors.ErrInvalidInput, raw)
	}
}

// Reindex rebuilds the stats projection from the log.
func (s *ReportService) Reindex(ctx context.Context) (int, error) {
	log, err := s.source.Sessions(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.stats.Reset(ctx); err != nil {
		return 0, err
	}
	for _, session := range log {
		if err := s.stats.Upsert(ctx, session); err != nil {
			return 0, err
		}
	}
	return len(log), nil
}

// Stats rebuilds the projection and queries it. The log is small enough
// that a rebuild per query keeps the index consistent with the state file
// without a write hook in the tracker.
func (s *ReportService) Stats(ctx context.Context, bucket domain.Bucket, r domain.Range) ([]domain.BucketTotal, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: from %s is after to %s",
			apperrors.ErrInvalidRange, r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
	}
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}
	return s.stats.Totals(ctx, bucket, r)
}
