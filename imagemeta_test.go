package imagemeta_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/schema"
	"github.com/simonhull/imagemeta/internal/tagstore"
)

// jpegHeader is enough for container sniffing; tags live in the memory opener.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

// createTestImage writes a JPEG stub and registers its tags with opener.
func createTestImage(t testing.TB, opener *tagstore.MemoryOpener, name string, tags tagstore.Tags) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, jpegHeader, 0o644); err != nil {
		t.Fatal(err)
	}
	opener.Put(path, tags)
	return path
}

func TestRead_Fallback(t *testing.T) {
	opener := tagstore.NewMemoryOpener()
	path := createTestImage(t, opener, "photo.jpg", tagstore.Tags{
		schema.IptcHeadline:         {"Headline"},
		schema.XmpDescription:       {""},
		schema.IptcCaption:          {"Caption"},
		schema.ExifImageDescription: {"Exif description"},
		schema.XmpSubject:           {"sky", "sea"},
		schema.IptcKeywords:         {"ignored"},
		schema.ExifDateTimeOriginal: {"2023:07:14 18:30:00"},
		schema.IptcByline:           {"Jane Doe"},
	})

	md, err := imagemeta.Read(path, imagemeta.WithOpener(opener))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if md.Title != "Headline" {
		t.Errorf("Title = %q, want Headline", md.Title)
	}
	if md.Description != "Caption" {
		t.Errorf("Description = %q, want Caption", md.Description)
	}
	if !slices.Equal(md.Keywords, []string{"sky", "sea"}) {
		t.Errorf("Keywords = %q, want [sky sea]", md.Keywords)
	}
	if md.DateTaken == nil || *md.DateTaken != "2023:07:14 18:30:00" {
		t.Errorf("DateTaken = %v, want 2023:07:14 18:30:00", md.DateTaken)
	}
	if md.Author != "Jane Doe" {
		t.Errorf("Author = %q, want Jane Doe", md.Author)
	}
	if md.Copyright != "" {
		t.Errorf("Copyright = %q, want empty", md.Copyright)
	}
}

func TestRead_NoTags(t *testing.T) {
	opener := tagstore.NewMemoryOpener()
	path := createTestImage(t, opener, "blank.jpg", nil)

	md, err := imagemeta.Read(path, imagemeta.WithOpener(opener))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !md.IsEmpty() {
		t.Errorf("expected empty metadata, got %+v", md)
	}
	if md.DateTaken != nil {
		t.Errorf("DateTaken = %q, want nil", *md.DateTaken)
	}
}

func TestRead_FileNotFound(t *testing.T) {
	_, err := imagemeta.Read("/nonexistent/path.jpg", imagemeta.WithOpener(tagstore.NewMemoryOpener()))
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}

	var openErr *imagemeta.OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected OpenError, got %T", err)
	}
	if openErr.Path != "/nonexistent/path.jpg" {
		t.Errorf("Path = %q", openErr.Path)
	}
	if !errors.Is(err, imagemeta.ErrOpen) {
		t.Error("expected errors.Is(err, ErrOpen)")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected errors.Is(err, fs.ErrNotExist)")
	}
}

func TestRead_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not a valid image file"), 0o644); err != nil {
		t.Fatal(err)
	}

	opener := tagstore.NewMemoryOpener()
	opener.Put(path, nil)

	_, err := imagemeta.Read(path, imagemeta.WithOpener(opener))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}

	var unsupported *imagemeta.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Errorf("expected UnsupportedFormatError, got %T: %v", err, err)
	}
	if !errors.Is(err, imagemeta.ErrOpen) {
		t.Error("expected errors.Is(err, ErrOpen)")
	}

	// WithAnyFormat hands the file to the backend regardless.
	if _, err := imagemeta.Read(path, imagemeta.WithOpener(opener), imagemeta.WithAnyFormat()); err != nil {
		t.Errorf("Read with WithAnyFormat failed: %v", err)
	}
}

func TestRead_CorruptExif(t *testing.T) {
	// SOI, APP1 "Exif", TIFF header whose IFD0 offset points past the block.
	data := []byte{
		0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x10,
		'E', 'x', 'i', 'f', 0x00, 0x00,
		'I', 'I', 0x2A, 0x00, 0xFF, 0xFF, 0x00, 0x00,
		0xFF, 0xD9,
	}
	path := filepath.Join(t.TempDir(), "broken.jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	md, err := imagemeta.Read(path, imagemeta.WithBackend("exif"))
	if !errors.Is(err, imagemeta.ErrOpen) {
		t.Fatalf("expected OpenError for corrupt EXIF, got %v (metadata %+v)", err, md)
	}
}

func TestRead_OpenerFailure(t *testing.T) {
	opener := tagstore.NewMemoryOpener()
	path := createTestImage(t, opener, "photo.jpg", nil)

	cause := errors.New("corrupt segment")
	failing := imagemeta.OpenerFunc(func(context.Context, string) (imagemeta.Store, error) {
		return nil, cause
	})

	_, err := imagemeta.Read(path, imagemeta.WithOpener(failing))
	if !errors.Is(err, imagemeta.ErrOpen) || !errors.Is(err, cause) {
		t.Errorf("expected OpenError wrapping cause, got %v", err)
	}
}

func TestRead_UnknownBackend(t *testing.T) {
	opener := tagstore.NewMemoryOpener()
	path := createTestImage(t, opener, "photo.jpg", nil)

	_, err := imagemeta.Read(path, imagemeta.WithBackend("no-such-backend"))
	if !errors.Is(err, imagemeta.ErrOpen) {
		t.Errorf("expected OpenError, got %v", err)
	}
}

func TestReadContext_Cancelled(t *testing.T) {
	opener := tagstore.NewMemoryOpener()
	path := createTestImage(t, opener, "photo.jpg", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imagemeta.ReadContext(ctx, path, imagemeta.WithOpener(opener))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestListTags(t *testing.T) {
	opener := tagstore.NewMemoryOpener()
	path := createTestImage(t, opener, "photo.jpg", tagstore.Tags{
		schema.XmpTitle:     {"Title"},
		schema.IptcKeywords: {"a", "b"},
		schema.IptcHeadline: {"Headline"},
	})

	keys, err := imagemeta.ListTags(path, imagemeta.WithOpener(opener))
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}

	want := []string{string(schema.IptcHeadline), string(schema.IptcKeywords), string(schema.XmpTitle)}
	if !slices.Equal(keys, want) {
		t.Errorf("ListTags = %q, want %q", keys, want)
	}
}

func TestBackends(t *testing.T) {
	names := imagemeta.Backends()
	for _, want := range []string{"exif", imagemeta.DefaultBackend} {
		if !slices.Contains(names, want) {
			t.Errorf("Backends() = %v, missing %q", names, want)
		}
	}
}

func TestErrorSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"open", &imagemeta.OpenError{Path: "a.jpg", Err: fs.ErrNotExist}, imagemeta.ErrOpen},
		{"tag write", &imagemeta.TagWriteError{Path: "a.jpg", Key: "Xmp.dc.title", Err: errors.New("rejected")}, imagemeta.ErrTagWrite},
		{"persist", &imagemeta.PersistError{Path: "a.jpg", Err: errors.New("disk full")}, imagemeta.ErrPersist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
		})
	}
}

func TestGetPlatformInfo(t *testing.T) {
	info := imagemeta.GetPlatformInfo()
	if info.OS == "" || info.Arch == "" {
		t.Errorf("incomplete platform info: %+v", info)
	}
	switch info.Family {
	case "unix", "windows", "other":
	default:
		t.Errorf("unexpected family %q", info.Family)
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := imagemeta.GetVersionInfo()
	if info.Version != imagemeta.Version {
		t.Errorf("Version = %q, want %q", info.Version, imagemeta.Version)
	}
	if info.GoVersion == "" || info.GoVersion == "unknown" {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
}
