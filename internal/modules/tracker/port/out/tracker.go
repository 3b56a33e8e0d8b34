package out

import (
	"context"

	"dw/internal/modules/tracker/domain"
)

// StateStore owns all durable state. Load returns an empty state when
// nothing has been persisted yet; Save replaces the persisted state
// atomically so a crash mid-write never leaves a half-written file.
type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}

// JournalStore writes a markdown note per completed session.
type JournalStore interface {
	Write(ctx context.Context, session domain.Session) (string, error)
}
