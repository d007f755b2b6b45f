package imagemeta

import (
	"io"

	"github.com/simonhull/imagemeta/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatJPEG    = types.FormatJPEG
	FormatPNG     = types.FormatPNG
	FormatTIFF    = types.FormatTIFF
	FormatWebP    = types.FormatWebP
	FormatHEIF    = types.FormatHEIF
	FormatAVIF    = types.FormatAVIF
	FormatGIF     = types.FormatGIF
)

// DetectFormat is a wrapper around types.DetectFormat.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
