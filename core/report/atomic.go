package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kilianp07/markbook/core/model"
)

// AtomicWrite calls write with a temporary file in the directory of path and
// renames it onto path once write, sync and close have all succeeded. On any
// failure the temporary file is removed and the error wraps
// model.ErrWriteFailure.
func AtomicWrite(path string, write func(io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", model.ErrWriteFailure, path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = write(f); err != nil {
		return fmt.Errorf("%w: write %s: %w", model.ErrWriteFailure, path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", model.ErrWriteFailure, path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", model.ErrWriteFailure, path, err)
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", model.ErrWriteFailure, path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: publish %s: %w", model.ErrWriteFailure, path, err)
	}
	return nil
}
