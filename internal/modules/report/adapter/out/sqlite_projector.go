package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dw/internal/modules/report/domain"
	reportout "dw/internal/modules/report/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStatsProjector keeps a queryable projection of the session log.
// Day and week keys are computed at upsert so the grouped totals are plain
// GROUP BY queries.
type SQLiteStatsProjector struct {
	db *sql.DB
}

func NewSQLiteStatsProjector(dbPath string) (*SQLiteStatsProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteStatsProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

var _ reportout.StatsProjector = (*SQLiteStatsProjector)(nil)

func (s *SQLiteStatsProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  started_day TEXT NOT NULL,
  started_week TEXT NOT NULL,
  label TEXT
);
CREATE INDEX IF NOT EXISTS sessions_started_day ON sessions (started_day);
CREATE INDEX IF NOT EXISTS sessions_started_week ON sessions (started_week);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteStatsProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteStatsProjector) Upsert(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, started_at, ended_at, duration_seconds, started_day, started_week, label)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  duration_seconds=excluded.duration_seconds,
  started_day=excluded.started_day,
  started_week=excluded.started_week,
  label=excluded.label;
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.StartedAt.UTC().Format(timeLayout),
		session.EndedAt.UTC().Format(timeLayout),
		int64(session.Duration().Seconds()),
		domain.DayKey(session.StartedAt),
		domain.WeekKey(session.StartedAt),
		session.Label,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteStatsProjector) Totals(ctx context.Context, bucket domain.Bucket, r domain.Range) ([]domain.BucketTotal, error) {
	column := "started_day"
	if bucket == domain.BucketWeek {
		column = "started_week"
	}
	query := fmt.Sprintf(`
SELECT %s, SUM(duration_seconds), COUNT(*)
FROM sessions
WHERE (? = '' OR started_at >= ?) AND (? = '' OR started_at < ?)
GROUP BY %s
ORDER BY %s;
`, column, column, column)

	from, to := "", ""
	if !r.From.IsZero() {
		from = r.From.UTC().Format(timeLayout)
	}
	if !r.To.IsZero() {
		to = r.To.UTC().Format(timeLayout)
	}
	rows, err := s.db.QueryContext(ctx, query, from, from, to, to)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.BucketTotal{}
	for rows.Next() {
		var key string
		var seconds int64
		var count int
		if err := rows.Scan(&key, &seconds, &count); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		out = append(out, domain.BucketTotal{Key: key, Total: time.Duration(seconds) * time.Second, Sessions: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}
	return out, nil
}

func (s *SQLiteStatsProjector) Close() error {
	return s.db.Close()
}
