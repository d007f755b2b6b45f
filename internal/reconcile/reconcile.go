// Package reconcile maps Metadata onto a tag store using the schema table:
// reads take the first present key in fallback order, writes fan out to
// every key of a field.
package reconcile

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/simonhull/imagemeta/internal/schema"
	"github.com/simonhull/imagemeta/internal/tagstore"
	"github.com/simonhull/imagemeta/internal/types"
)

// Reconciler evaluates the schema table against a tag store.
type Reconciler struct {
	log zerolog.Logger
}

// New returns a Reconciler that traces key resolution at debug level.
func New(log zerolog.Logger) *Reconciler {
	return &Reconciler{log: log}
}

var nop = New(zerolog.Nop())

// Read is New(zerolog.Nop()).Read.
func Read(s tagstore.Store) types.Metadata { return nop.Read(s) }

// Write is New(zerolog.Nop()).Write.
func Write(s tagstore.Store, md types.Metadata) error { return nop.Write(s, md) }

// Read builds Metadata from s. Missing or unreadable tags fall through
// to the next key; a field with no usable key keeps its zero value.
func (r *Reconciler) Read(s tagstore.Store) types.Metadata {
	var md types.Metadata

	for _, m := range schema.Table {
		switch m.Kind {
		case schema.KindTextList:
			for _, key := range m.Read {
				values, err := s.GetStrings(key)
				if err != nil || len(values) == 0 {
					r.miss(m.Field, key, err)
					continue
				}
				r.hit(m.Field, key)
				md.Keywords = values
				break
			}
		case schema.KindText, schema.KindOptionalText:
			for _, key := range m.Read {
				value, err := s.GetString(key)
				if err != nil || value == "" {
					r.miss(m.Field, key, err)
					continue
				}
				r.hit(m.Field, key)
				if m.Kind == schema.KindOptionalText {
					*optionalField(&md, m.Field) = &value
				} else {
					*textField(&md, m.Field) = value
				}
				break
			}
		}
	}

	return md
}

// Write stages md into s. Empty fields are skipped and read-only fields
// are never written. Non-empty keywords replace every existing entry of
// repeatable keys. The first failing mutation aborts the call with a
// *types.TagWriteError; s is not saved.
func (r *Reconciler) Write(s tagstore.Store, md types.Metadata) error {
	for _, m := range schema.Table {
		if m.ReadOnly() {
			continue
		}

		switch m.Kind {
		case schema.KindText:
			value := *textField(&md, m.Field)
			if value == "" {
				continue
			}
			for _, key := range m.Write {
				if err := s.SetString(key, value); err != nil {
					return tagWriteError(key, err)
				}
				r.log.Debug().Stringer("field", m.Field).Str("key", string(key)).Msg("tag staged")
			}
		case schema.KindTextList:
			if len(md.Keywords) == 0 {
				continue
			}
			for _, key := range m.Write {
				if err := writeList(s, key, md.Keywords); err != nil {
					return err
				}
				r.log.Debug().Stringer("field", m.Field).Str("key", string(key)).
					Int("count", len(md.Keywords)).Msg("tag staged")
			}
		}
	}
	return nil
}

// ClearKeywords removes every keyword tag from s.
func (r *Reconciler) ClearKeywords(s tagstore.Store) error {
	m, _ := schema.Lookup(schema.FieldKeywords)
	for _, key := range m.Write {
		if !s.Has(key) {
			continue
		}
		if err := s.Clear(key); err != nil {
			return tagWriteError(key, err)
		}
		r.log.Debug().Str("key", string(key)).Msg("tag cleared")
	}
	return nil
}

// Verify reports the first field of want that Write would store but
// got does not hold. Empty and read-only fields of want are ignored.
// Numeric-looking text matches any spelling of the same number, since
// backends may hand it back re-formatted.
func Verify(want, got types.Metadata) error {
	for _, m := range schema.Table {
		if m.ReadOnly() {
			continue
		}
		switch m.Kind {
		case schema.KindText:
			w, g := *textField(&want, m.Field), *textField(&got, m.Field)
			if w != "" && !sameText(w, g) {
				return fmt.Errorf("%s mismatch: got %q, want %q", m.Field, g, w)
			}
		case schema.KindTextList:
			if len(want.Keywords) > 0 && !slices.EqualFunc(want.Keywords, got.Keywords, sameText) {
				return fmt.Errorf("%s mismatch: got %q, want %q", m.Field, got.Keywords, want.Keywords)
			}
		}
	}
	return nil
}

func sameText(a, b string) bool {
	if a == b {
		return true
	}
	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && x == y
}

// writeList writes values to a multi-value key in one call, or to a
// repeatable key as one entry per value after removing old entries.
func writeList(s tagstore.Store, key schema.Key, values []string) error {
	if !key.Repeatable() {
		if err := s.SetStrings(key, values); err != nil {
			return tagWriteError(key, err)
		}
		return nil
	}

	if s.Has(key) {
		if err := s.Clear(key); err != nil {
			return tagWriteError(key, err)
		}
	}
	for _, v := range values {
		if err := s.SetString(key, v); err != nil {
			return tagWriteError(key, err)
		}
	}
	return nil
}

func tagWriteError(key schema.Key, err error) error {
	return &types.TagWriteError{Key: string(key), Err: err}
}

func (r *Reconciler) hit(f schema.Field, key schema.Key) {
	r.log.Debug().Stringer("field", f).Str("key", string(key)).Msg("tag resolved")
}

func (r *Reconciler) miss(f schema.Field, key schema.Key, err error) {
	if err == nil || errors.Is(err, tagstore.ErrTagNotFound) {
		return
	}
	r.log.Debug().Err(err).Stringer("field", f).Str("key", string(key)).Msg("tag unreadable, falling back")
}

func textField(md *types.Metadata, f schema.Field) *string {
	switch f {
	case schema.FieldTitle:
		return &md.Title
	case schema.FieldDescription:
		return &md.Description
	case schema.FieldAuthor:
		return &md.Author
	case schema.FieldCopyright:
		return &md.Copyright
	default:
		panic("reconcile: no text field for " + f.String())
	}
}

func optionalField(md *types.Metadata, f schema.Field) **string {
	switch f {
	case schema.FieldDateTaken:
		return &md.DateTaken
	default:
		panic("reconcile: no optional field for " + f.String())
	}
}
