package service

import (
	"fmt"
	"strings"

	"dw/internal/modules/tracker/domain"
	"dw/internal/platform/clock"
	apperrors "dw/internal/platform/errors"
	"dw/internal/platform/id"
)

// TrackerService is the session state machine. It is a pure function of
// (loaded state, operation, now): it never touches storage, so every
// ambiguous situation surfaces as an error instead of a silent repair.
type TrackerService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewTrackerService(clock clock.Clock, idGen id.Generator) *TrackerService {
	return &TrackerService{clock: clock, idGen: idGen}
}

// Start opens a session. A second start while one is open fails and leaves
// the original marker untouched; overwriting it would silently lose the
// original start time.
func (s *TrackerService) Start(state domain.State, label string) (domain.State, domain.ActiveMarker, error) {
	if state.Active != nil {
		return state, domain.ActiveMarker{}, apperrors.ErrActiveSessionExists
	}
	marker := domain.ActiveMarker{
		SessionID: s.idGen.New(),
		StartedAt: s.clock.Now(),
		Label:     strings.TrimSpace(label),
	}
	state.Active = &marker
	return state, marker, nil
}

// Stop closes the open session and appends it to the history. When the
// clock reads earlier than the marker's start (clock skew, corrupted
// marker) nothing is appended and the marker stays in place so the
// operator can inspect it.
func (s *TrackerService) Stop(state domain.State) (domain.State, domain.Session, error) {
	if state.Active == nil {
		return state, domain.Session{}, apperrors.ErrNoActiveSession
	}
	now := s.clock.Now()
	if now.Before(state.Active.StartedAt) {
		return state, domain.Session{}, fmt.Errorf("%w: started %s, stopping %s",
			apperrors.ErrInvalidDuration,
			state.Active.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			now.Format("2006-01-02T15:04:05Z07:00"))
	}
	session := domain.Session{
		ID:        state.Active.SessionID,
		StartedAt: state.Active.StartedAt,
		EndedAt:   now,
		Label:     state.Active.Label,
	}
	state.History = append(state.History, session)
	state.Active = nil
	return state, session, nil
}

// Abort discards the open session without recording it.
func (s *TrackerService) Abort(state domain.State) (domain.State, domain.ActiveMarker, error) {
	if state.Active == nil {
		return state, domain.ActiveMarker{}, apperrors.ErrNoActiveSession
	}
	marker := *state.Active
	state.Active = nil
	return state, marker, nil
}
