package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dw/internal/modules/tracker/adapter/out"
	"dw/internal/modules/tracker/domain"
	"dw/internal/modules/tracker/dto"
	trackerin "dw/internal/modules/tracker/port/in"
	"dw/internal/modules/tracker/service"
	"dw/internal/modules/tracker/usecase"
	apperrors "dw/internal/platform/errors"
	"dw/internal/platform/lockfile"
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

type seqID struct {
	next int
}

func (g *seqID) New() string {
	g.next++
	return "sess-" + string(rune('0'+g.next))
}

func TestStartStatusStopCycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 8, 27, 9, 50, 0, 0, time.UTC)

	svc := service.NewTrackerService(&fakeClock{values: []time.Time{t1, t2}}, &seqID{})
	store := out.NewFileStateStore(statePath)
	uc := usecase.NewInteractor(svc, store, nil, lockfile.NoopManager{})

	started, err := uc.Start(context.Background(), dto.StartInput{Label: "writing"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !started.StartedAt.Equal(t1) {
		t.Fatalf("unexpected start time %s", started.StartedAt)
	}

	active, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if active.SessionID != started.SessionID || active.Label != "writing" {
		t.Fatalf("unexpected active session: %+v", active)
	}

	stopped, err := uc.Stop(context.Background())
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.Duration != 50*time.Minute {
		t.Fatalf("expected 50m, got %s", stopped.Duration)
	}

	if _, err := uc.Status(context.Background()); err != apperrors.ErrNoActiveSession {
		t.Fatalf("expected no active session after stop, got %v", err)
	}

	history, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != started.SessionID {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestSecondStartFailsAcrossInvocations(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

	build := func(values ...time.Time) trackerin.Usecase {
		svc := service.NewTrackerService(&fakeClock{values: values}, &seqID{})
		return usecase.NewInteractor(svc, out.NewFileStateStore(statePath), nil, lockfile.NoopManager{})
	}

	first := build(t1)
	if _, err := first.Start(context.Background(), dto.StartInput{Label: "writing"}); err != nil {
		t.Fatalf("first start: %v", err)
	}

	second := build(t1.Add(time.Minute))
	if _, err := second.Start(context.Background(), dto.StartInput{}); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected active session exists, got %v", err)
	}

	active, err := second.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !active.StartedAt.Equal(t1) || active.Label != "writing" {
		t.Fatalf("failed start must not touch the marker: %+v", active)
	}
}

func TestAbortLeavesNoTrace(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

	svc := service.NewTrackerService(&fakeClock{values: []time.Time{t1}}, &seqID{})
	uc := usecase.NewInteractor(svc, out.NewFileStateStore(statePath), nil, lockfile.NoopManager{})

	if _, err := uc.Start(context.Background(), dto.StartInput{Label: "writing"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	discarded, err := uc.Abort(context.Background())
	if err != nil {
		t.Fatalf("abort: %v", err)
	}
	if discarded.Label != "writing" {
		t.Fatalf("unexpected aborted marker: %+v", discarded)
	}
	history, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("aborted session must not be recorded: %+v", history)
	}
}

func TestStopWritesJournalNote(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	journalDir := filepath.Join(dir, "journal")
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(25 * time.Minute)

	svc := service.NewTrackerService(&fakeClock{values: []time.Time{t1, t2}}, &seqID{})
	uc := usecase.NewInteractor(svc, out.NewFileStateStore(statePath), out.NewFileJournalStore(journalDir), lockfile.NoopManager{})

	if _, err := uc.Start(context.Background(), dto.StartInput{Label: "Morning Review"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	stopped, err := uc.Stop(context.Background())
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.NotePath == "" {
		t.Fatalf("expected a journal note path")
	}
	raw, err := os.ReadFile(stopped.NotePath)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	note := string(raw)
	if !strings.HasPrefix(note, "---\n") {
		t.Fatalf("note must open with frontmatter:\n%s", note)
	}
	if !strings.Contains(note, "Morning Review") {
		t.Fatalf("note must carry the label:\n%s", note)
	}
}

type failingJournal struct{}

func (failingJournal) Write(_ context.Context, _ domain.Session) (string, error) {
	return "", errors.New("journal dir is read-only")
}

func TestStopSurvivesJournalFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	t1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(25 * time.Minute)

	svc := service.NewTrackerService(&fakeClock{values: []time.Time{t1, t2}}, &seqID{})
	uc := usecase.NewInteractor(svc, out.NewFileStateStore(statePath), failingJournal{}, lockfile.NoopManager{})

	if _, err := uc.Start(context.Background(), dto.StartInput{Label: "writing"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	stopped, err := uc.Stop(context.Background())
	if err != nil {
		t.Fatalf("a failed note must not fail the stop: %v", err)
	}
	if stopped.NotePath != "" {
		t.Fatalf("no note path expected, got %q", stopped.NotePath)
	}
	if stopped.NoteWarning == "" {
		t.Fatalf("the failed note must surface as a warning")
	}
	history, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("session must be recorded despite the note failure: %+v", history)
	}
}

func TestCorruptStateSurfacesOnEveryOperation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	if err := os.WriteFile(statePath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt state: %v", err)
	}

	svc := service.NewTrackerService(&fakeClock{values: []time.Time{time.Now().UTC()}}, &seqID{})
	uc := usecase.NewInteractor(svc, out.NewFileStateStore(statePath), nil, lockfile.NoopManager{})

	if _, err := uc.Start(context.Background(), dto.StartInput{}); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("start on corrupt state: %v", err)
	}
	if _, err := uc.Stop(context.Background()); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("stop on corrupt state: %v", err)
	}
	if _, err := uc.Status(context.Background()); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("status on corrupt state: %v", err)
	}
}
