package tagstore

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/simonhull/imagemeta/internal/schema"
)

// Tags maps canonical keys to their values.
type Tags map[schema.Key][]string

// Clone returns a deep copy.
func (t Tags) Clone() Tags {
	c := make(Tags, len(t))
	for k, v := range t {
		c[k] = slices.Clone(v)
	}
	return c
}

// Memory is an in-memory Store.
//
// SetString on a repeatable key appends an entry; on any other key it
// replaces the value. Failures can be injected per key with FailOn and
// for Save with FailSave.
type Memory struct {
	tags    Tags
	setErrs map[schema.Key]error
	saveErr error
	commit  func(path string, tags Tags) error
	saved   []string
	closed  bool
}

// NewMemory returns a Memory seeded with a copy of tags.
func NewMemory(tags Tags) *Memory {
	if tags == nil {
		tags = Tags{}
	}
	return &Memory{
		tags:    tags.Clone(),
		setErrs: make(map[schema.Key]error),
	}
}

// FailOn makes every mutation of key return err.
func (m *Memory) FailOn(key schema.Key, err error) *Memory {
	m.setErrs[key] = err
	return m
}

// FailSave makes Save return err.
func (m *Memory) FailSave(err error) *Memory {
	m.saveErr = err
	return m
}

// Tags returns a copy of the current (staged) tags.
func (m *Memory) Tags() Tags {
	return m.tags.Clone()
}

// Saved returns the paths passed to successful Save calls.
func (m *Memory) Saved() []string {
	return slices.Clone(m.saved)
}

// Closed reports whether Close was called.
func (m *Memory) Closed() bool {
	return m.closed
}

// GetString implements Store.
func (m *Memory) GetString(key schema.Key) (string, error) {
	values, ok := m.tags[key]
	if !ok || len(values) == 0 {
		return "", ErrTagNotFound
	}
	return strings.Join(values, ", "), nil
}

// GetStrings implements Store.
func (m *Memory) GetStrings(key schema.Key) ([]string, error) {
	values, ok := m.tags[key]
	if !ok || len(values) == 0 {
		return nil, ErrTagNotFound
	}
	return slices.Clone(values), nil
}

// SetString implements Store.
func (m *Memory) SetString(key schema.Key, value string) error {
	if err := m.mutable(key); err != nil {
		return err
	}
	if key.Repeatable() {
		m.tags[key] = append(m.tags[key], value)
		return nil
	}
	m.tags[key] = []string{value}
	return nil
}

// SetStrings implements Store.
func (m *Memory) SetStrings(key schema.Key, values []string) error {
	if err := m.mutable(key); err != nil {
		return err
	}
	m.tags[key] = slices.Clone(values)
	return nil
}

// Has implements Store.
func (m *Memory) Has(key schema.Key) bool {
	_, ok := m.tags[key]
	return ok
}

// Clear implements Store.
func (m *Memory) Clear(key schema.Key) error {
	if err := m.mutable(key); err != nil {
		return err
	}
	delete(m.tags, key)
	return nil
}

// Keys implements Store.
func (m *Memory) Keys() []string {
	keys := make([]string, 0, len(m.tags))
	for k := range m.tags {
		keys = append(keys, string(k))
	}
	slices.Sort(keys)
	return keys
}

// Save implements Store.
func (m *Memory) Save(path string) error {
	if m.closed {
		return ErrClosed
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.commit != nil {
		if err := m.commit(path, m.tags.Clone()); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, path)
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	m.closed = true
	return nil
}

func (m *Memory) mutable(key schema.Key) error {
	if m.closed {
		return ErrClosed
	}
	if err := m.setErrs[key]; err != nil {
		return err
	}
	return nil
}

// MemoryOpener serves Memory stores from a set of in-memory "files".
//
// Each Open returns a working copy; changes become visible to later
// opens only after Save. MemoryOpener is safe for concurrent use.
type MemoryOpener struct {
	mu    sync.Mutex
	files map[string]Tags

	// Prepare, if set, is called on every store before it is returned.
	Prepare func(path string, m *Memory)
}

// NewMemoryOpener returns an empty MemoryOpener.
func NewMemoryOpener() *MemoryOpener {
	return &MemoryOpener{files: make(map[string]Tags)}
}

// Put registers a file with the given tags.
func (o *MemoryOpener) Put(path string, tags Tags) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if tags == nil {
		tags = Tags{}
	}
	o.files[path] = tags.Clone()
}

// Snapshot returns a copy of the committed tags of path.
func (o *MemoryOpener) Snapshot(path string) (Tags, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	tags, ok := o.files[path]
	if !ok {
		return nil, false
	}
	return tags.Clone(), true
}

// Open implements Opener.
func (o *MemoryOpener) Open(ctx context.Context, path string) (Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	tags, ok := o.files[path]
	o.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}

	m := NewMemory(tags)
	m.commit = o.commit
	if o.Prepare != nil {
		o.Prepare(path, m)
	}
	return m, nil
}

func (o *MemoryOpener) commit(path string, tags Tags) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files[path] = tags
	return nil
}
