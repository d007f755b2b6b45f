package types

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	// ErrOpen indicates the tag store could not be opened.
	ErrOpen = errors.New("open failed")

	// ErrTagWrite indicates an individual tag mutation was rejected.
	ErrTagWrite = errors.New("tag write failed")

	// ErrPersist indicates staged changes could not be saved.
	ErrPersist = errors.New("persist failed")
)

// OpenError is returned when the tag store for a path cannot be opened:
// missing file, unsupported or corrupt container, permission denied.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s: open metadata: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *OpenError) Unwrap() error { return e.Err }

// Is implements errors.Is support.
func (e *OpenError) Is(target error) bool { return target == ErrOpen }

// TagWriteError is returned when setting or clearing a tag fails. The
// remaining writes of the call are abandoned and nothing is saved.
type TagWriteError struct {
	Path string
	Key  string
	Err  error
}

func (e *TagWriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("write tag %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("%s: write tag %s: %v", e.Path, e.Key, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TagWriteError) Unwrap() error { return e.Err }

// Is implements errors.Is support.
func (e *TagWriteError) Is(target error) bool { return target == ErrTagWrite }

// PersistError is returned when saving staged changes fails. The file is
// left in whatever state the backend leaves it.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: save metadata: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PersistError) Unwrap() error { return e.Err }

// Is implements errors.Is support.
func (e *PersistError) Is(target error) bool { return target == ErrPersist }

// UnsupportedFormatError is returned when the file is not a recognised
// image container.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}
