package imagemeta

import "github.com/rs/zerolog"

// Option configures Read, Write and the related operations.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	err := imagemeta.Write("photo.jpg", md,
//	    imagemeta.WithBackup(".bak"),
//	    imagemeta.WithValidation(),
//	)
type Option func(*options)

// options holds configuration for a single operation.
type options struct {
	opener    Opener         // Explicit tag store opener
	backend   string         // Registered backend name, used when opener is nil
	logger    zerolog.Logger // Debug tracing
	anyFormat bool           // Skip container sniffing

	clearKeywords bool // Remove existing keywords before writing

	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read after write to verify
	preserveModTime bool   // Keep original modification time
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		backend: DefaultBackend,
		logger:  zerolog.Nop(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOpener uses o to open tag stores instead of a registered backend.
//
// Example:
//
//	md, err := imagemeta.Read("photo.jpg", imagemeta.WithOpener(myOpener))
func WithOpener(o Opener) Option {
	return func(opts *options) {
		opts.opener = o
	}
}

// WithBackend selects a registered backend by name ("exiftool" or "exif").
//
// The "exif" backend is read-only: Write with it fails with a TagWriteError.
func WithBackend(name string) Option {
	return func(opts *options) {
		opts.backend = name
	}
}

// WithLogger traces field resolution and persistence at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(opts *options) {
		opts.logger = l
	}
}

// WithAnyFormat skips container sniffing and hands any file to the backend.
func WithAnyFormat() Option {
	return func(opts *options) {
		opts.anyFormat = true
	}
}

// WithClearKeywords makes Write remove every existing keyword before
// storing md. The clear and the new values are saved together, so a
// rejected tag leaves the keywords in place.
//
// Example:
//
//	err := imagemeta.Write("photo.jpg", md, imagemeta.WithClearKeywords())
func WithClearKeywords() Option {
	return func(opts *options) {
		opts.clearKeywords = true
	}
}

// WithBackup copies the original file before saving.
//
// The backup file will have the specified suffix appended to the original
// filename. For example, WithBackup(".bak") will create "photo.jpg.bak"
// before modifying "photo.jpg".
//
// If the backup file already exists, it will be overwritten.
func WithBackup(suffix string) Option {
	return func(opts *options) {
		opts.backupSuffix = suffix
	}
}

// WithValidation re-reads the file after writing to verify integrity.
//
// Every non-empty field that was written must read back unchanged,
// otherwise the write fails with a PersistError.
func WithValidation() Option {
	return func(opts *options) {
		opts.validate = true
	}
}

// WithPreserveModTime keeps the original file modification time.
func WithPreserveModTime() Option {
	return func(opts *options) {
		opts.preserveModTime = true
	}
}
