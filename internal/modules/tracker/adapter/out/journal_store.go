package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"dw/internal/modules/tracker/domain"
	trackerout "dw/internal/modules/tracker/port/out"
	"dw/internal/platform/markdown"
	"dw/internal/platform/slug"
)

// FileJournalStore writes one markdown note per completed session under
// <journal>/<year>/<month>/<day>/.
type FileJournalStore struct {
	dir string
}

func NewFileJournalStore(dir string) trackerout.JournalStore {
	return &FileJournalStore{dir: dir}
}

func (s *FileJournalStore) Write(_ context.Context, session domain.Session) (string, error) {
	date := session.StartedAt.Local()
	dir := filepath.Join(s.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(session.Label))
	path := filepath.Join(dir, name)

	meta := map[string]any{
		"schema_version":   domain.SchemaVersion,
		"id":               session.ID,
		"started_at":       session.StartedAt.Format(timeLayout),
		"ended_at":         session.EndedAt.Format(timeLayout),
		"duration_seconds": int(session.Duration().Seconds()),
		"label":            session.Label,
	}
	title := session.Label
	if title == "" {
		title = "Deep work"
	}
	body := fmt.Sprintf("# %s\n\n- Start: %s\n- Stop: %s\n- Duration: %s\n",
		title,
		session.StartedAt.Local().Format("15:04:05"),
		session.EndedAt.Local().Format("15:04:05"),
		session.Duration(),
	)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}
