package out

import (
	"context"

	"dw/internal/modules/report/domain"
	reportout "dw/internal/modules/report/port/out"
	trackerin "dw/internal/modules/tracker/port/in"
)

// TrackerLogAdapter reads the completed-session log through the tracker's
// usecase, so history reads take the same locked load path as every other
// tracker operation and the state file stays the single source of truth.
type TrackerLogAdapter struct {
	tracker trackerin.Usecase
}

func NewTrackerLogAdapter(tracker trackerin.Usecase) reportout.SessionSource {
	return &TrackerLogAdapter{tracker: tracker}
}

func (a *TrackerLogAdapter) Sessions(ctx context.Context) ([]domain.Session, error) {
	history, err := a.tracker.History(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(history))
	for _, entry := range history {
		out = append(out, domain.Session{
			ID:        entry.ID,
			StartedAt: entry.StartedAt,
			EndedAt:   entry.EndedAt,
			Label:     entry.Label,
		})
	}
	return out, nil
}
