package lockfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Manager wraps a critical section that spans load, mutate, and save.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// FlockManager serializes store access across concurrent invocations with
// an advisory exclusive lock on a dedicated lock file. The lock is held for
// the whole load-mutate-save cycle and released on every exit path.
type FlockManager struct {
	path string
}

func NewFlockManager(path string) *FlockManager {
	return &FlockManager{path: path}
}

func (m *FlockManager) Within(ctx context.Context, fn func(context.Context) error) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	f, err := os.OpenFile(m.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer func() { _ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN) }()

	return fn(ctx)
}

// NoopManager is used in tests that exercise a store in isolation.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
