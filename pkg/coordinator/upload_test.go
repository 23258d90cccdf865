package coordinator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileUpdaterCommit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "fw.bin")
	if err := os.WriteFile(target, []byte("old"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	u := &FileUpdater{Path: target, Perm: 0o600}
	if err := u.Begin(context.Background()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := u.Begin(context.Background()); err == nil {
		t.Fatalf("expected second begin to fail")
	}
	if _, err := u.Write([]byte("new image")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := u.End(true); err != nil {
		t.Fatalf("end: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil || string(got) != "new image" {
		t.Fatalf("unexpected image %q (%v)", got, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected staging file removed, found %d entries", len(entries))
	}
}

func TestFileUpdaterAbort(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "fw.bin")

	u := &FileUpdater{Path: target}
	if err := u.Begin(context.Background()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := u.Write([]byte("partial")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := u.End(false); err != nil {
		t.Fatalf("end: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected empty directory after abort, found %d entries", len(entries))
	}
}

func TestFileUpdaterMisuse(t *testing.T) {
	u := &FileUpdater{}
	if err := u.Begin(context.Background()); err == nil {
		t.Fatalf("expected empty path to fail")
	}
	if _, err := u.Write([]byte("x")); !errors.Is(err, errUpdateNotStarted) {
		t.Fatalf("expected not started, got %v", err)
	}
	if err := u.End(true); !errors.Is(err, errUpdateNotStarted) {
		t.Fatalf("expected not started, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u.Path = filepath.Join(t.TempDir(), "fw.bin")
	if err := u.Begin(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled context, got %v", err)
	}
}
