package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrFileUnavailable matches any *FileError.
	ErrFileUnavailable = errors.New("store file unavailable")

	// ErrInvalidEntry is returned when an entry cannot be stored in the file format.
	ErrInvalidEntry = errors.New("invalid entry")
)

// FileError reports a failure to open, create, read or replace the store file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFileUnavailable) true for every FileError.
func (e *FileError) Is(target error) bool {
	return target == ErrFileUnavailable
}

// MalformedLineError describes a data line that could not be decoded.
// Loading skips the line and continues.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}
