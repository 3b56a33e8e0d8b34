package lockfile_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"dw/internal/platform/lockfile"
)

func TestWithinRunsTheCriticalSection(t *testing.T) {
	t.Parallel()
	manager := lockfile.NewFlockManager(filepath.Join(t.TempDir(), "state.lock"))
	ran := false
	err := manager.Within(context.Background(), func(_ context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("within: %v", err)
	}
	if !ran {
		t.Fatalf("critical section did not run")
	}
}

func TestWithinPropagatesError(t *testing.T) {
	t.Parallel()
	manager := lockfile.NewFlockManager(filepath.Join(t.TempDir(), "state.lock"))
	wantErr := errors.New("boom")
	if err := manager.Within(context.Background(), func(_ context.Context) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped section error, got %v", err)
	}
}

func TestWithinSerializesConcurrentSections(t *testing.T) {
	t.Parallel()
	manager := lockfile.NewFlockManager(filepath.Join(t.TempDir(), "state.lock"))

	const workers = 8
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = manager.Within(context.Background(), func(_ context.Context) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	if counter != workers {
		t.Fatalf("expected %d serialized increments, got %d", workers, counter)
	}
}

func TestWithinCreatesLockDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.lock")
	manager := lockfile.NewFlockManager(path)
	if err := manager.Within(context.Background(), func(_ context.Context) error { return nil }); err != nil {
		t.Fatalf("within: %v", err)
	}
}
