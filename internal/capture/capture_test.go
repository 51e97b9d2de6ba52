package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestDirectorySourceCycles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.jpg", []byte("second"))
	writeFile(t, dir, "a.jpg", []byte("first"))
	writeFile(t, dir, "notes.txt", []byte("ignored"))

	src := NewDirectorySource(dir)
	ctx := context.Background()

	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !src.State().Active {
		t.Error("source should be active after Start")
	}

	// Name order, then wrap around.
	want := []string{"first", "second", "first"}
	for i, expected := range want {
		data, err := src.Still(ctx)
		if err != nil {
			t.Fatalf("Still %d failed: %v", i, err)
		}
		if string(data) != expected {
			t.Errorf("Still %d = %q; want %q", i, data, expected)
		}
	}
}

func TestDirectorySourceStop(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", []byte("image"))

	src := NewDirectorySource(dir)
	if err := src.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	src.Stop()
	if src.State().Active {
		t.Error("source should be inactive after Stop")
	}
	if _, err := src.Still(context.Background()); !errors.Is(err, ErrNotActive) {
		t.Errorf("Still after Stop = %v; want ErrNotActive", err)
	}
}

func TestDirectorySourceEmptyDirectory(t *testing.T) {
	src := NewDirectorySource(t.TempDir())

	if err := src.Start(context.Background()); err == nil {
		t.Error("Start should fail on a directory without images")
	}
	if src.State().Err == nil {
		t.Error("State should report the start error")
	}
}

func TestDirectorySourceStillBeforeStart(t *testing.T) {
	src := NewDirectorySource(t.TempDir())
	if _, err := src.Still(context.Background()); !errors.Is(err, ErrNotActive) {
		t.Errorf("Still before Start = %v; want ErrNotActive", err)
	}
}
