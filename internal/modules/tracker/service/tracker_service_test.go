package service_test

import (
	"errors"
	"testing"
	"time"

	"dw/internal/modules/tracker/domain"
	"dw/internal/modules/tracker/service"
	apperrors "dw/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakeID struct{}

func (fakeID) New() string { return "sess-1" }

func TestStartStopComputesExactDuration(t *testing.T) {
	t.Parallel()
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 8, 27, 9, 50, 0, 0, time.UTC)
	svc := service.NewTrackerService(&fakeClock{values: []time.Time{t1, t2}}, fakeID{})

	state, marker, err := svc.Start(domain.State{}, "writing")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !marker.StartedAt.Equal(t1) || marker.Label != "writing" {
		t.Fatalf("unexpected marker: %+v", marker)
	}
	state, session, err := svc.Stop(state)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if session.Duration() != t2.Sub(t1) {
		t.Fatalf("expected %s, got %s", t2.Sub(t1), session.Duration())
	}
	if state.Active != nil {
		t.Fatalf("state must be idle after stop")
	}
	if len(state.History) != 1 || !state.History[0].EndedAt.Equal(t2) {
		t.Fatalf("unexpected history: %+v", state.History)
	}
	if _, _, err := svc.Stop(state); err != apperrors.ErrNoActiveSession {
		t.Fatalf("second stop must fail, got %v", err)
	}
}

func TestSecondStartFailsAndPreservesMarker(t *testing.T) {
	t.Parallel()
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	svc := service.NewTrackerService(&fakeClock{values: []time.Time{t1, t1.Add(time.Hour)}}, fakeID{})

	state, marker, err := svc.Start(domain.State{}, "writing")
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	after, _, err := svc.Start(state, "reading")
	if err != apperrors.ErrActiveSessionExists {
		t.Fatalf("expected active session exists, got %v", err)
	}
	if after.Active == nil || !after.Active.StartedAt.Equal(marker.StartedAt) {
		t.Fatalf("original marker must be preserved, got %+v", after.Active)
	}
	if after.Active.Label != "writing" {
		t.Fatalf("original label must be preserved, got %q", after.Active.Label)
	}
}

func TestStopWithoutActiveFails(t *testing.T) {
	t.Parallel()
	svc := service.NewTrackerService(&fakeClock{values: []time.Time{time.Now().UTC()}}, fakeID{})
	if _, _, err := svc.Stop(domain.State{}); err != apperrors.ErrNoActiveSession {
		t.Fatalf("expected no active session, got %v", err)
	}
}

func TestStopBeforeStartLeavesMarkerIntact(t *testing.T) {
	t.Parallel()
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Minute)
	svc := service.NewTrackerService(&fakeClock{values: []time.Time{t1, t0}}, fakeID{})

	state, _, err := svc.Start(domain.State{}, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	after, _, err := svc.Stop(state)
	if !errors.Is(err, apperrors.ErrInvalidDuration) {
		t.Fatalf("expected invalid duration, got %v", err)
	}
	if after.Active == nil || !after.Active.StartedAt.Equal(t1) {
		t.Fatalf("marker must stay in place, got %+v", after.Active)
	}
	if len(after.History) != 0 {
		t.Fatalf("nothing must be appended on invalid duration")
	}
}

func TestAbortDiscardsMarkerWithoutRecording(t *testing.T) {
	t.Parallel()
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	svc := service.NewTrackerService(&fakeClock{values: []time.Time{t1}}, fakeID{})

	state, _, err := svc.Start(domain.State{}, "writing")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	state, marker, err := svc.Abort(state)
	if err != nil {
		t.Fatalf("abort: %v", err)
	}
	if marker.Label != "writing" {
		t.Fatalf("abort must return the discarded marker, got %+v", marker)
	}
	if state.Active != nil || len(state.History) != 0 {
		t.Fatalf("abort must not record anything: %+v", state)
	}
	if _, _, err := svc.Abort(state); err != apperrors.ErrNoActiveSession {
		t.Fatalf("second abort must fail, got %v", err)
	}
}

func TestStartTrimsLabel(t *testing.T) {
	t.Parallel()
	svc := service.NewTrackerService(&fakeClock{values: []time.Time{time.Now().UTC()}}, fakeID{})
	_, marker, err := svc.Start(domain.State{}, "  focus  ")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if marker.Label != "focus" {
		t.Fatalf("expected trimmed label, got %q", marker.Label)
	}
}
