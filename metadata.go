package imagemeta

import (
	"github.com/simonhull/imagemeta/internal/tagstore"
	"github.com/simonhull/imagemeta/internal/types"
)

// Metadata is an alias to types.Metadata.
// Re-exporting from internal/types to maintain public API.
type Metadata = types.Metadata

// Store is the per-file tag store a backend hands out.
type Store = tagstore.Store

// Opener opens the tag store of a file. Pass one with WithOpener to
// plug in a custom backend.
type Opener = tagstore.Opener

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc = tagstore.OpenerFunc

// StringPtr returns a pointer to s, for filling Metadata.DateTaken.
func StringPtr(s string) *string {
	return &s
}
