// Package tagstore defines the tag store capability the reconciler works
// against, plus an in-memory implementation.
//
// A Store is the in-memory view of one file's metadata. Mutations are
// staged until Save commits them to a path. A Store is owned by a single
// caller for the duration of one operation and is not safe for
// concurrent use.
package tagstore

import (
	"context"
	"errors"

	"github.com/simonhull/imagemeta/internal/schema"
)

var (
	// ErrTagNotFound is returned by getters when the tag is absent.
	ErrTagNotFound = errors.New("tag not found")

	// ErrReadOnly is returned by backends that cannot mutate or save.
	ErrReadOnly = errors.New("tag store is read-only")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("tag store is closed")

	// ErrInvalidValue is returned by setters for values the backend cannot
	// store faithfully.
	ErrInvalidValue = errors.New("tag value not supported")
)

// Store is the tag store capability.
type Store interface {
	// GetString returns the single string value of key. Multi-valued tags
	// are joined with ", ".
	GetString(key schema.Key) (string, error)

	// GetStrings returns every value of key.
	GetStrings(key schema.Key) ([]string, error)

	// SetString sets key to value. On a repeatable key it adds an entry.
	SetString(key schema.Key, value string) error

	// SetStrings replaces all values of key in one call.
	SetStrings(key schema.Key, values []string) error

	// Has reports whether key is present.
	Has(key schema.Key) bool

	// Clear removes every value of key.
	Clear(key schema.Key) error

	// Keys lists the backend-native names of every tag present.
	Keys() []string

	// Save commits staged changes to path.
	Save(path string) error

	// Close releases resources held for this file.
	Close() error
}

// Opener opens the tag store of a file.
type Opener interface {
	Open(ctx context.Context, path string) (Store, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, path string) (Store, error)

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, path string) (Store, error) {
	return f(ctx, path)
}
