package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options is the optional on-disk configuration at <data>/config.yaml.
type Options struct {
	Journal    bool   `yaml:"journal"`
	JournalDir string `yaml:"journal_dir"`
}

type Config struct {
	DataDir    string
	StatePath  string
	LockPath   string
	DBPath     string
	Journal    bool
	JournalDir string
}

// New resolves all paths under dataDir. An empty dataDir falls back to
// ~/.dw so that every invocation of the tool shares one store.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".dw")
	}
	cfg := Config{
		DataDir:    dataDir,
		StatePath:  filepath.Join(dataDir, "state.json"),
		LockPath:   filepath.Join(dataDir, "state.lock"),
		DBPath:     filepath.Join(dataDir, "dw.db"),
		JournalDir: filepath.Join(dataDir, "journal"),
	}

	opts, err := loadOptions(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		return Config{}, err
	}
	cfg.Journal = opts.Journal
	if opts.JournalDir != "" {
		cfg.JournalDir = opts.JournalDir
		if !filepath.IsAbs(cfg.JournalDir) {
			cfg.JournalDir = filepath.Join(dataDir, opts.JournalDir)
		}
	}
	return cfg, nil
}

func loadOptions(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, nil
		}
		return Options{}, fmt.Errorf("read config: %w", err)
	}
	opts := Options{}
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return Options{}, fmt.Errorf("decode config: %w", err)
	}
	return opts, nil
}
