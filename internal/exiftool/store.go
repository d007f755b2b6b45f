package exiftool

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/simonhull/imagemeta/internal/schema"
	"github.com/simonhull/imagemeta/internal/tagstore"
)

var _ tagstore.Store = (*store)(nil)

const codedCharacterSet = "IPTC:CodedCharacterSet"

// store is the view of one file. Mutations are staged in pending, where a
// nil value marks a deletion, and flushed by Save in one exiftool call.
type store struct {
	backend interface {
		write(path string, fields map[string]interface{}) error
	}
	fields  map[string]interface{}
	pending map[string]interface{}
	closed  bool
}

func newStore(b *Backend, fields map[string]interface{}) *store {
	return &store{
		backend: b,
		fields:  fields,
		pending: make(map[string]interface{}),
	}
}

func (s *store) lookup(key schema.Key) (interface{}, bool) {
	name := TagName(key)
	if v, ok := s.pending[name]; ok {
		return v, v != nil
	}
	v, ok := s.fields[name]
	return v, ok && v != nil
}

func (s *store) GetString(key schema.Key) (string, error) {
	v, ok := s.lookup(key)
	if !ok {
		return "", tagstore.ErrTagNotFound
	}
	return strings.Join(toStrings(v), ", "), nil
}

func (s *store) GetStrings(key schema.Key) ([]string, error) {
	v, ok := s.lookup(key)
	if !ok {
		return nil, tagstore.ErrTagNotFound
	}
	return toStrings(v), nil
}

func (s *store) SetString(key schema.Key, value string) error {
	if s.closed {
		return tagstore.ErrClosed
	}
	if err := checkValue(value); err != nil {
		return err
	}
	s.markCharset(key)
	if key.Repeatable() {
		current, _ := s.GetStrings(key)
		s.pending[TagName(key)] = append(slices.Clip(current), value)
		return nil
	}
	s.pending[TagName(key)] = value
	return nil
}

func (s *store) SetStrings(key schema.Key, values []string) error {
	if s.closed {
		return tagstore.ErrClosed
	}
	for _, v := range values {
		if err := checkValue(v); err != nil {
			return err
		}
	}
	s.markCharset(key)
	s.pending[TagName(key)] = slices.Clone(values)
	return nil
}

// checkValue rejects line breaks: go-exiftool passes each assignment as
// one line of an -@ argument file, so a break would start a new argument.
func checkValue(v string) error {
	if strings.ContainsAny(v, "\r\n") {
		return fmt.Errorf("%w: line breaks cannot be passed to exiftool", tagstore.ErrInvalidValue)
	}
	return nil
}

// markCharset declares UTF-8 IPTC text so that IPTC-only readers decode
// the values exiftool writes with -charset iptc=UTF8.
func (s *store) markCharset(key schema.Key) {
	if key.Namespace() == schema.NamespaceIPTC {
		s.pending[codedCharacterSet] = "UTF8"
	}
}

func (s *store) Has(key schema.Key) bool {
	_, ok := s.lookup(key)
	return ok
}

func (s *store) Clear(key schema.Key) error {
	if s.closed {
		return tagstore.ErrClosed
	}
	s.pending[TagName(key)] = nil
	return nil
}

func (s *store) Keys() []string {
	merged := maps.Clone(s.fields)
	maps.Copy(merged, s.pending)
	delete(merged, "SourceFile")

	keys := make([]string, 0, len(merged))
	for k, v := range merged {
		if v != nil {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Save writes every staged change to path. With nothing staged there is
// nothing to commit and exiftool is not invoked.
func (s *store) Save(path string) error {
	if s.closed {
		return tagstore.ErrClosed
	}
	if len(s.pending) == 0 {
		return nil
	}

	if err := s.backend.write(path, encode(s.pending)); err != nil {
		return err
	}

	for k, v := range s.pending {
		if v == nil {
			delete(s.fields, k)
		} else {
			s.fields[k] = v
		}
	}
	clear(s.pending)
	return nil
}

func (s *store) Close() error {
	s.closed = true
	return nil
}

// encode converts staged values to the shapes go-exiftool writes:
// string, []string, or nil for deletion.
func encode(pending map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(pending))
	for k, v := range pending {
		switch v := v.(type) {
		case nil:
			out[k] = nil
		case []string:
			out[k] = slices.Clone(v)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

// toStrings flattens a decoded exiftool JSON value.
//
// exiftool -j prints numeric-looking text unquoted and go-exiftool decodes
// it as float64, so the original spelling is lost: "1.50" reads back as
// "1.5" and "2.0" as "2".
func toStrings(v interface{}) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return slices.Clone(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, toStrings(item)...)
		}
		return out
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}
	default:
		return []string{fmt.Sprint(v)}
	}
}
