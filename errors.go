package imagemeta

import (
	"github.com/simonhull/imagemeta/internal/types"
)

// OpenError is an alias to types.OpenError.
// Re-exporting from internal/types to maintain public API.
type OpenError = types.OpenError

// TagWriteError is an alias to types.TagWriteError.
// Re-exporting from internal/types to maintain public API.
type TagWriteError = types.TagWriteError

// PersistError is an alias to types.PersistError.
// Re-exporting from internal/types to maintain public API.
type PersistError = types.PersistError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// Sentinels for errors.Is. Every OpenError matches ErrOpen, every
// TagWriteError matches ErrTagWrite and every PersistError matches ErrPersist.
var (
	ErrOpen     = types.ErrOpen
	ErrTagWrite = types.ErrTagWrite
	ErrPersist  = types.ErrPersist
)
