package out

import (
	"context"

	"dw/internal/modules/report/domain"
)

// SessionSource yields the completed-session log in chronological order.
type SessionSource interface {
	Sessions(ctx context.Context) ([]domain.Session, error)
}

// StatsProjector maintains the queryable stats index.
type StatsProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, session domain.Session) error
	Totals(ctx context.Context, bucket domain.Bucket, r domain.Range) ([]domain.BucketTotal, error)
}
