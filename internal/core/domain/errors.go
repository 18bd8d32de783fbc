package domain

import (
	"errors"
	"fmt"
	"os"
)

// Domain errors represent settings lifecycle failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested settings file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, such as a path
	// containing a NUL byte or an absent argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPathTooLong indicates a resolved settings path exceeds what the
	// file system accepts.
	ErrPathTooLong = errors.New("path too long")

	// ErrUnsupportedBackend indicates an unknown file system backend.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrWatcherUnavailable indicates no settings watcher is configured.
	// Change notification is disabled.
	ErrWatcherUnavailable = errors.New("settings watcher unavailable")

	// ErrWatcherClosed indicates the settings watcher has been closed.
	ErrWatcherClosed = errors.New("settings watcher closed")
)

// IsProgrammerError reports whether err belongs to the narrow class of
// failures caused by the caller rather than the environment: invalid
// arguments, absent values and over-long paths.
func IsProgrammerError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrPathTooLong) ||
		errors.Is(err, os.ErrInvalid)
}

// DeserializationError is returned when a settings file holds content that
// cannot be decoded into the requested settings type, even after trailing
// NUL padding has been removed.
type DeserializationError struct {
	Module string
	Path   string
	Err    error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decode settings for module %q at %s: %v", ModuleName(e.Module), e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// PersistenceError is returned when a settings file could not be written,
// either because its directory could not be created or the write failed.
type PersistenceError struct {
	Module string
	Path   string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save settings for module %q at %s: %v", ModuleName(e.Module), e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
