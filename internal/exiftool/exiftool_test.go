package exiftool

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/imagemeta/internal/reconcile"
	"github.com/simonhull/imagemeta/internal/types"
)

func requireExiftool(t *testing.T) *Backend {
	t.Helper()
	if _, err := exec.LookPath("exiftool"); err != nil {
		t.Skip("exiftool not installed")
	}
	b, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func writeJPEG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)

	path := filepath.Join(t.TempDir(), "photo.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())
	return path
}

func TestBackend_RoundTrip(t *testing.T) {
	b := requireExiftool(t)
	path := writeJPEG(t)
	ctx := context.Background()

	s, err := b.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, reconcile.Write(s, types.Metadata{
		Title:       "Sunset",
		Description: "Evening at the pier",
		Keywords:    []string{"sea", "sky"},
		Author:      "Jane Doe",
		Copyright:   "(c) Jane Doe",
	}))
	require.NoError(t, s.Save(path))
	require.NoError(t, s.Close())

	s, err = b.Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	md := reconcile.Read(s)
	assert.Equal(t, "Sunset", md.Title)
	assert.Equal(t, "Evening at the pier", md.Description)
	assert.Equal(t, []string{"sea", "sky"}, md.Keywords)
	assert.Equal(t, "Jane Doe", md.Author)
	assert.Equal(t, "(c) Jane Doe", md.Copyright)
	assert.Nil(t, md.DateTaken)
	assert.Contains(t, s.Keys(), "IPTC:Keywords")
}

func TestBackend_OpenMissingFile(t *testing.T) {
	b := requireExiftool(t)

	_, err := b.Open(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestBackend_OpenCancelled(t *testing.T) {
	b := &Backend{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Open(ctx, "a.jpg")
	assert.ErrorIs(t, err, context.Canceled)
}
