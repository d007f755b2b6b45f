package types

import (
	"io"

	"github.com/simonhull/imagemeta/internal/binary"
)

// Format represents the detected image container.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatJPEG represents JPEG/JFIF/EXIF files.
	FormatJPEG
	// FormatPNG represents PNG files.
	FormatPNG
	// FormatTIFF represents TIFF and TIFF-based raw files (DNG, NEF, CR2, ARW).
	FormatTIFF
	// FormatWebP represents WebP files.
	FormatWebP
	// FormatHEIF represents HEIF/HEIC files.
	FormatHEIF
	// FormatAVIF represents AVIF files.
	FormatAVIF
	// FormatGIF represents GIF files.
	FormatGIF
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatPNG:
		return "PNG"
	case FormatTIFF:
		return "TIFF"
	case FormatWebP:
		return "WebP"
	case FormatHEIF:
		return "HEIF"
	case FormatAVIF:
		return "AVIF"
	case FormatGIF:
		return "GIF"
	default:
		return "Unknown"
	}
}

// HasEXIF reports whether the container can carry an EXIF IFD that the
// read-only EXIF decoder understands.
func (f Format) HasEXIF() bool {
	return f == FormatJPEG || f == FormatTIFF
}

// DetectFormat determines the image container by examining magic bytes.
//
// Detection is based on file signatures at the beginning of the file and
// does not validate the rest of the structure.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	switch {
	case sr.HasPrefix(0, "\xFF\xD8\xFF"):
		return FormatJPEG, nil
	case sr.HasPrefix(0, "\x89PNG\r\n\x1a\n"):
		return FormatPNG, nil
	case sr.HasPrefix(0, "GIF87a"), sr.HasPrefix(0, "GIF89a"):
		return FormatGIF, nil
	case sr.HasPrefix(0, "II"):
		if magic, err := binary.ReadLE[uint16](sr, 2, "TIFF magic"); err == nil && magic == 42 {
			return FormatTIFF, nil
		}
	case sr.HasPrefix(0, "MM"):
		if magic, err := binary.ReadBE[uint16](sr, 2, "TIFF magic"); err == nil && magic == 42 {
			return FormatTIFF, nil
		}
	case sr.HasPrefix(0, "RIFF"):
		if sr.HasPrefix(8, "WEBP") {
			return FormatWebP, nil
		}
	}

	if sr.HasPrefix(4, "ftyp") {
		return detectBMFF(sr, path)
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unrecognised file signature",
	}
}

// detectBMFF classifies an ISO base media file by its major brand.
func detectBMFF(sr *binary.SafeReader, path string) (Format, error) {
	boxSize, err := binary.ReadBE[uint32](sr, 0, "ftyp box size")
	if err != nil || boxSize < 12 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "ftyp box too small",
		}
	}

	brand, err := sr.Bytes(8, 4, "major brand")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read major brand",
		}
	}

	switch string(brand) {
	case "avif", "avis":
		return FormatAVIF, nil
	case "heic", "heix", "heim", "heis", "hevc", "hevx", "mif1", "msf1":
		return FormatHEIF, nil
	default:
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "unsupported ftyp brand " + string(brand),
		}
	}
}
