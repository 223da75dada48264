// Package fsutil holds small filesystem helpers shared by the stores and renderers.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriter writes to a temporary file next to the target and replaces
// the target on Commit. Readers never observe a partial file.
type AtomicWriter struct {
	path    string
	tmpPath string
	file    *os.File
	done    bool
}

func NewAtomicWriter(path string) (*AtomicWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".replay-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &AtomicWriter{
		path:    path,
		tmpPath: tmpFile.Name(),
		file:    tmpFile,
	}, nil
}

func (w *AtomicWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

// Commit syncs the temporary file and renames it over the target.
func (w *AtomicWriter) Commit() error {
	if w.done {
		return nil
	}
	w.done = true

	if err := w.file.Sync(); err != nil {
		w.cleanup()
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.file.Close(); err != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (w *AtomicWriter) Abort() {
	if w.done {
		return
	}
	w.done = true
	w.cleanup()
}

func (w *AtomicWriter) cleanup() {
	_ = w.file.Close()
	_ = os.Remove(w.tmpPath)
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	w, err := NewAtomicWriter(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Abort()
		return fmt.Errorf("write: %w", err)
	}
	return w.Commit()
}
