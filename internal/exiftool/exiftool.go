// Package exiftool implements the tag store on top of a long-running
// exiftool process.
package exiftool

import (
	"context"
	"fmt"
	"sync"

	"github.com/barasher/go-exiftool"

	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/schema"
	"github.com/simonhull/imagemeta/internal/tagstore"
)

// Name is the registry name of this backend.
const Name = "exiftool"

func init() {
	registry.Register(Name, func() (tagstore.Opener, error) {
		return New()
	})
}

// tagNames translates canonical keys to exiftool group:tag names as
// printed with -G1. Keys not listed are passed through unchanged.
var tagNames = map[schema.Key]string{
	schema.XmpTitle:             "XMP-dc:Title",
	schema.XmpDescription:       "XMP-dc:Description",
	schema.XmpSubject:           "XMP-dc:Subject",
	schema.XmpCreator:           "XMP-dc:Creator",
	schema.XmpRights:            "XMP-dc:Rights",
	schema.IptcHeadline:         "IPTC:Headline",
	schema.IptcCaption:          "IPTC:Caption-Abstract",
	schema.IptcKeywords:         "IPTC:Keywords",
	schema.IptcByline:           "IPTC:By-line",
	schema.IptcCopyright:        "IPTC:CopyrightNotice",
	schema.ExifImageDescription: "IFD0:ImageDescription",
	schema.ExifDateTimeOriginal: "ExifIFD:DateTimeOriginal",
}

// TagName returns the exiftool name for key.
func TagName(key schema.Key) string {
	if name, ok := tagNames[key]; ok {
		return name
	}
	return string(key)
}

// Scanner buffer for exiftool's JSON output. One file's output is a
// single line, so large maker notes or embedded XMP packets need room.
const (
	initialBufferSize = 128 * 1024
	maxBufferSize     = 64 * 1024 * 1024
)

// Option configures a Backend.
type Option func(*config)

type config struct {
	binaryPath string
}

// WithBinaryPath uses the exiftool executable at path instead of the
// one found in PATH.
func WithBinaryPath(path string) Option {
	return func(c *config) {
		c.binaryPath = path
	}
}

var _ tagstore.Opener = (*Backend)(nil)

// Backend owns one exiftool process. It is safe for concurrent use;
// calls into the process are serialised.
type Backend struct {
	mu sync.Mutex
	et *exiftool.Exiftool
}

// New starts exiftool in stay-open mode.
func New(opts ...Option) (*Backend, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	etOpts := []func(*exiftool.Exiftool) error{
		exiftool.PrintGroupNames("1"),
		exiftool.Charset("iptc=UTF8"),
		exiftool.Buffer(make([]byte, initialBufferSize), maxBufferSize),
	}
	if cfg.binaryPath != "" {
		etOpts = append(etOpts, exiftool.SetExiftoolBinaryPath(cfg.binaryPath))
	}

	et, err := exiftool.NewExiftool(etOpts...)
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &Backend{et: et}, nil
}

// Open extracts every tag of path.
func (b *Backend) Open(ctx context.Context, path string) (tagstore.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	infos := b.et.ExtractMetadata(path)
	b.mu.Unlock()

	if len(infos) != 1 {
		return nil, fmt.Errorf("exiftool returned %d results for %s", len(infos), path)
	}
	if infos[0].Err != nil {
		return nil, infos[0].Err
	}

	fields := infos[0].Fields
	if fields == nil {
		fields = make(map[string]interface{})
	}
	return newStore(b, fields), nil
}

// Close stops the exiftool process.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.et.Close()
}

func (b *Backend) write(path string, fields map[string]interface{}) error {
	batch := []exiftool.FileMetadata{{File: path, Fields: fields}}

	b.mu.Lock()
	b.et.WriteMetadata(batch)
	b.mu.Unlock()

	return batch[0].Err
}
