// Package types provides core data structures for image metadata.
//
// This package defines the Metadata, Format and error types shared by the
// public API, the reconciler and the tag store backends.
package types

import (
	"slices"
	"time"
)

// Metadata is the logical descriptive metadata of an image.
//
// Empty strings and an empty keyword list mean "absent". DateTaken is
// populated from EXIF DateTimeOriginal on read and never written.
type Metadata struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	DateTaken   *string  `json:"date_taken" yaml:"date_taken"`
	Author      string   `json:"author" yaml:"author"`
	Copyright   string   `json:"copyright" yaml:"copyright"`
}

// EXIF stores DateTimeOriginal without a zone.
const exifDateLayout = "2006:01:02 15:04:05"

// TakenTime parses DateTaken.
//
// Both the EXIF "YYYY:MM:DD HH:MM:SS" layout and RFC 3339 are accepted.
// EXIF values carry no zone and are returned in UTC. The second result
// is false when DateTaken is absent or unparseable.
func (m *Metadata) TakenTime() (time.Time, bool) {
	if m.DateTaken == nil || *m.DateTaken == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(exifDateLayout, *m.DateTaken); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, *m.DateTaken); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// IsEmpty reports whether no field carries a value.
func (m *Metadata) IsEmpty() bool {
	return m.Title == "" &&
		m.Description == "" &&
		len(m.Keywords) == 0 &&
		m.DateTaken == nil &&
		m.Author == "" &&
		m.Copyright == ""
}

// Clone returns a deep copy.
func (m *Metadata) Clone() Metadata {
	c := *m
	c.Keywords = slices.Clone(m.Keywords)
	if m.DateTaken != nil {
		d := *m.DateTaken
		c.DateTaken = &d
	}
	return c
}
