package coordinator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Updater receives a firmware image. Begin is called once before the first
// Write; End(true) commits the image and End(false) abandons it. Any error
// fails the upload.
type Updater interface {
	Begin(ctx context.Context) error
	Write(p []byte) (int, error)
	End(commit bool) error
}

// FileUpdater writes the uploaded image to Path. The image is staged in a
// temporary file next to Path and only renamed into place on commit.
type FileUpdater struct {
	Path string
	Perm os.FileMode

	tmp *os.File
}

var errUpdateNotStarted = errors.New("coordinator: update not started")

func (u *FileUpdater) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.Path == "" {
		return errors.New("coordinator: update path is empty")
	}
	if u.tmp != nil {
		return errors.New("coordinator: update already in progress")
	}
	tmp, err := os.CreateTemp(filepath.Dir(u.Path), "."+filepath.Base(u.Path)+".upload-*")
	if err != nil {
		return fmt.Errorf("coordinator: stage update: %w", err)
	}
	u.tmp = tmp
	return nil
}

func (u *FileUpdater) Write(p []byte) (int, error) {
	if u.tmp == nil {
		return 0, errUpdateNotStarted
	}
	return u.tmp.Write(p)
}

func (u *FileUpdater) End(commit bool) error {
	if u.tmp == nil {
		return errUpdateNotStarted
	}
	tmp := u.tmp
	u.tmp = nil

	if !commit {
		tmp.Close()
		return os.Remove(tmp.Name())
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("coordinator: sync update: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("coordinator: close update: %w", err)
	}
	perm := u.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("coordinator: chmod update: %w", err)
	}
	if err := os.Rename(tmp.Name(), u.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("coordinator: install update: %w", err)
	}
	return nil
}
