package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Save replaces the store file at path with the header followed by every
// entry in store order, and returns the number of entries written.
//
// A failed header write is logged and returned, but entries are still
// written. An entry that fails to write is logged and left out of the count.
func (s *Store) Save(path string) (int, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, &FileError{Op: "create directory", Path: dir, Err: err}
	}

	// Write to temp file first, then rename over the store
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return 0, &FileError{Op: "create", Path: tmpPath, Err: err}
	}

	written, headerErr := s.write(file)

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return 0, &FileError{Op: "sync", Path: tmpPath, Err: err}
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, &FileError{Op: "close", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, &FileError{Op: "replace", Path: path, Err: err}
	}

	s.logger.Debug("store saved", "path", path, "entries", written)
	return written, headerErr
}

// write writes the header and every entry to w and returns the number of
// entries written. A failed header write is returned after the entries
// are written; a failed entry is logged and skipped.
func (s *Store) write(w io.Writer) (int, error) {
	var headerErr error
	if err := s.codec.WriteHeader(w); err != nil {
		s.logger.Error("write header failed", "err", err)
		headerErr = fmt.Errorf("write header: %w", err)
	}

	written := 0
	for i, e := range s.entries {
		if err := s.codec.WriteEntry(w, e); err != nil {
			s.logger.Error("write entry failed", "index", i, "alias", e.Alias, "err", err)
			continue
		}
		written++
	}
	return written, headerErr
}

// Create makes a new store file at path holding only the header line.
// It fails if the file already exists.
func (c *Codec) Create(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}

	if err := c.WriteHeader(file); err != nil {
		file.Close()
		return &FileError{Op: "write", Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &FileError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// Exists returns true if a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
