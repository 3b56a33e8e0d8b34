package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dw/internal/modules/tracker/domain"
	trackerout "dw/internal/modules/tracker/port/out"
	apperrors "dw/internal/platform/errors"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type persistedMarker struct {
	SessionID string `json:"session_id"`
	StartedAt string `json:"started_at"`
	Label     string `json:"label,omitempty"`
}

type persistedSession struct {
	ID        string `json:"id"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at"`
	Label     string `json:"label,omitempty"`
}

type persistedState struct {
	SchemaVersion int                `json:"schema_version"`
	Active        *persistedMarker   `json:"active"`
	History       []persistedSession `json:"history"`
}

// FileStateStore persists the whole tracker state as one JSON document.
// Saves go through a temp file in the same directory followed by a rename,
// so a crash mid-write leaves either the old state or the new one, never a
// torn file.
type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) trackerout.StateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Load(_ context.Context) (domain.State, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.State{}, nil
		}
		return domain.State{}, fmt.Errorf("read state: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.State{}, nil
	}

	persisted := persistedState{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&persisted); err != nil {
		return domain.State{}, fmt.Errorf("%w: decode %s: %v", apperrors.ErrCorruptState, s.path, err)
	}

	state := domain.State{}
	if persisted.Active != nil {
		startedAt, err := parseTime(persisted.Active.StartedAt, "active.started_at")
		if err != nil {
			return domain.State{}, err
		}
		state.Active = &domain.ActiveMarker{
			SessionID: persisted.Active.SessionID,
			StartedAt: startedAt,
			Label:     persisted.Active.Label,
		}
	}
	state.History = make([]domain.Session, 0, len(persisted.History))
	for idx, entry := range persisted.History {
		startedAt, err := parseTime(entry.StartedAt, fmt.Sprintf("history[%d].started_at", idx))
		if err != nil {
			return domain.State{}, err
		}
		endedAt, err := parseTime(entry.EndedAt, fmt.Sprintf("history[%d].ended_at", idx))
		if err != nil {
			return domain.State{}, err
		}
		if endedAt.Before(startedAt) {
			return domain.State{}, fmt.Errorf("%w: history[%d] ends before it starts", apperrors.ErrCorruptState, idx)
		}
		state.History = append(state.History, domain.Session{
			ID:        entry.ID,
			StartedAt: startedAt,
			EndedAt:   endedAt,
			Label:     entry.Label,
		})
	}
	return state, nil
}

func (s *FileStateStore) Save(_ context.Context, state domain.State) error {
	persisted := persistedState{
		SchemaVersion: domain.SchemaVersion,
		History:       make([]persistedSession, 0, len(state.History)),
	}
	if state.Active != nil {
		persisted.Active = &persistedMarker{
			SessionID: state.Active.SessionID,
			StartedAt: state.Active.StartedAt.Format(timeLayout),
			Label:     state.Active.Label,
		}
	}
	for _, entry := range state.History {
		persisted.History = append(persisted.History, persistedSession{
			ID:        entry.ID,
			StartedAt: entry.StartedAt.Format(timeLayout),
			EndedAt:   entry.EndedAt.Format(timeLayout),
			Label:     entry.Label,
		})
	}
	payload, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	payload = append(payload, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp state: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func parseTime(value, field string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptState, field, err)
	}
	return t, nil
}
