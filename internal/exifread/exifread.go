// Package exifread is a read-only tag store that decodes EXIF in-process.
//
// It needs no external tools but only sees the EXIF namespace of JPEG and
// TIFF files: XMP and IPTC keys always report absent, and every mutation
// returns tagstore.ErrReadOnly.
package exifread

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/schema"
	"github.com/simonhull/imagemeta/internal/tagstore"
	"github.com/simonhull/imagemeta/internal/types"
)

// Name is the registry name of this backend.
const Name = "exif"

func init() {
	registry.Register(Name, func() (tagstore.Opener, error) {
		return Backend{}, nil
	})
}

// Backend opens files with goexif.
type Backend struct{}

var _ tagstore.Opener = Backend{}

// Open decodes the EXIF block of path. A JPEG or TIFF without an EXIF
// block yields an empty store; other containers are unsupported.
func (Backend) Open(ctx context.Context, path string) (tagstore.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	format, err := types.DetectFormat(f, stat.Size(), path)
	if err != nil {
		return nil, err
	}
	if !format.HasEXIF() {
		return nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("%s EXIF is not decoded by the %s backend", format, Name),
		}
	}

	return Decode(f)
}

// Decode reads EXIF from r.
func Decode(r io.Reader) (tagstore.Store, error) {
	x, err := exif.Decode(r)
	if x == nil {
		if err != nil && !isMissingExif(err) {
			return nil, fmt.Errorf("decode exif: %w", err)
		}
		return &store{fields: map[string]string{}}, nil
	}

	w := &walker{fields: make(map[string]string)}
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("walk exif: %w", err)
	}
	return &store{fields: w.fields}, nil
}

// isMissingExif reports whether err only says there is no EXIF to read:
// the APP1 scan reached the end of the JPEG, or the APP1 segment found
// is not an EXIF one. Errors from a truncated or corrupt EXIF block are
// wrapped by goexif and do not match.
func isMissingExif(err error) bool {
	if err == io.EOF { //nolint:errorlint // only the unwrapped scan result means no segment
		return true
	}
	return strings.Contains(err.Error(), "failed to find exif intro marker")
}

type walker struct {
	fields map[string]string
}

func (w *walker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if tag.Format() == tiff.StringVal {
		if s, err := tag.StringVal(); err == nil {
			w.fields[string(name)] = strings.TrimRight(s, "\x00 ")
			return nil
		}
	}
	w.fields[string(name)] = tag.String()
	return nil
}

// fieldName maps "Exif.<IFD>.<Name>" to the goexif field name.
func fieldName(key schema.Key) (string, bool) {
	if key.Namespace() != schema.NamespaceEXIF {
		return "", false
	}
	i := strings.LastIndexByte(string(key), '.')
	return string(key)[i+1:], true
}

type store struct {
	fields map[string]string
}

var _ tagstore.Store = (*store)(nil)

func (s *store) GetString(key schema.Key) (string, error) {
	name, ok := fieldName(key)
	if !ok {
		return "", tagstore.ErrTagNotFound
	}
	v, ok := s.fields[name]
	if !ok {
		return "", tagstore.ErrTagNotFound
	}
	return v, nil
}

func (s *store) GetStrings(key schema.Key) ([]string, error) {
	v, err := s.GetString(key)
	if err != nil {
		return nil, err
	}
	return []string{v}, nil
}

func (s *store) SetString(schema.Key, string) error    { return tagstore.ErrReadOnly }
func (s *store) SetStrings(schema.Key, []string) error { return tagstore.ErrReadOnly }
func (s *store) Clear(schema.Key) error                { return tagstore.ErrReadOnly }
func (s *store) Save(string) error                     { return tagstore.ErrReadOnly }
func (s *store) Close() error                          { return nil }

func (s *store) Has(key schema.Key) bool {
	_, err := s.GetString(key)
	return err == nil
}

func (s *store) Keys() []string {
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
