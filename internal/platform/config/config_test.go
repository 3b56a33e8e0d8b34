package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dw/internal/platform/config"
)

func TestNewDerivesPathsFromDataDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if cfg.StatePath != filepath.Join(dir, "state.json") {
		t.Fatalf("state path: %s", cfg.StatePath)
	}
	if cfg.LockPath != filepath.Join(dir, "state.lock") {
		t.Fatalf("lock path: %s", cfg.LockPath)
	}
	if cfg.DBPath != filepath.Join(dir, "dw.db") {
		t.Fatalf("db path: %s", cfg.DBPath)
	}
	if cfg.Journal {
		t.Fatalf("journal must default to off")
	}
	if cfg.JournalDir != filepath.Join(dir, "journal") {
		t.Fatalf("journal dir: %s", cfg.JournalDir)
	}
}

func TestNewReadsOptionsFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := "journal: true\njournal_dir: notes\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !cfg.Journal {
		t.Fatalf("journal option ignored")
	}
	if cfg.JournalDir != filepath.Join(dir, "notes") {
		t.Fatalf("relative journal_dir must resolve under the data dir: %s", cfg.JournalDir)
	}
}

func TestNewKeepsAbsoluteJournalDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	notes := t.TempDir()
	content := "journal: true\njournal_dir: " + notes + "\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if cfg.JournalDir != notes {
		t.Fatalf("absolute journal_dir must pass through: %s", cfg.JournalDir)
	}
}

func TestNewRejectsMalformedOptions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("journal: [nope"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("malformed config must fail")
	}
}
