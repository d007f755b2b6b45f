package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// createFtyp creates a minimal ISO BMFF ftyp box with the given major brand.
func createFtyp(brand string) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint32(20))
	buf.WriteString("ftyp")
	buf.WriteString(brand)
	binary.Write(buf, binary.BigEndian, uint32(0))
	buf.WriteString(brand)
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, FormatJPEG},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"), FormatPNG},
		{"gif87a", []byte("GIF87a\x01\x00"), FormatGIF},
		{"gif89a", []byte("GIF89a\x01\x00"), FormatGIF},
		{"tiff little endian", []byte{'I', 'I', 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}, FormatTIFF},
		{"tiff big endian", []byte{'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08}, FormatTIFF},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), FormatWebP},
		{"heic", createFtyp("heic"), FormatHEIF},
		{"mif1", createFtyp("mif1"), FormatHEIF},
		{"avif", createFtyp("avif"), FormatAVIF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectFormat(bytes.NewReader(tt.data), int64(len(tt.data)), "test.img")
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if format != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", format, tt.want)
			}
		})
	}
}

func TestDetectFormat_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too small", []byte("abc")},
		{"text", []byte("hello world")},
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVE")},
		{"tiff bad magic", []byte{'I', 'I', 0x2B, 0x00, 0x08, 0x00, 0x00, 0x00}},
		{"mp4 brand", createFtyp("isom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectFormat(bytes.NewReader(tt.data), int64(len(tt.data)), "test.bin")
			if err == nil {
				t.Fatalf("DetectFormat() = %v, want error", format)
			}
			var unsupported *UnsupportedFormatError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected *UnsupportedFormatError, got %T", err)
			}
			if unsupported.Path != "test.bin" {
				t.Errorf("Path = %q", unsupported.Path)
			}
			if format != FormatUnknown {
				t.Errorf("format = %v, want FormatUnknown", format)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	if FormatHEIF.String() != "HEIF" {
		t.Errorf("String() = %q", FormatHEIF.String())
	}
	if Format(99).String() != "Unknown" {
		t.Errorf("String() = %q", Format(99).String())
	}
}

func TestFormat_HasEXIF(t *testing.T) {
	if !FormatJPEG.HasEXIF() || !FormatTIFF.HasEXIF() {
		t.Error("JPEG and TIFF should carry EXIF")
	}
	if FormatPNG.HasEXIF() {
		t.Error("PNG EXIF is not decoded")
	}
}
