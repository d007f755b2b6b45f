package imagemeta

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/imagemeta/internal/reconcile"
	"github.com/simonhull/imagemeta/internal/types"
)

// Read returns the reconciled metadata of the image at path.
//
// Each field is taken from the first of its XMP, IPTC and EXIF sources
// that holds a value; absent fields are left empty. A file that cannot be
// opened yields an *OpenError and no partial result.
//
// Example:
//
//	md, err := imagemeta.Read("photo.jpg")
//	if err != nil {
//		return err
//	}
//	fmt.Println(md.Title, md.Keywords)
func Read(path string, opts ...Option) (Metadata, error) {
	return ReadContext(context.Background(), path, opts...)
}

// ReadContext is Read with context support for cancellation.
func ReadContext(ctx context.Context, path string, opts ...Option) (Metadata, error) {
	o := applyOptions(opts)

	s, err := openStore(ctx, path, o)
	if err != nil {
		return Metadata{}, err
	}
	defer s.Close() //nolint:errcheck // Read-only use

	md := reconcile.New(o.logger.With().Str("path", path).Logger()).Read(s)
	return md, nil
}

// ReadMany reads multiple images concurrently.
//
// Files are read in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the remaining reads and is returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	all, err := imagemeta.ReadMany(ctx, paths)
func ReadMany(ctx context.Context, paths []string, opts ...Option) ([]Metadata, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]Metadata, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			md, err := ReadContext(ctx, path, opts...)
			if err != nil {
				return err
			}
			results[i] = md
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListTags returns the backend-native name of every tag present in the
// file, sorted. It is a debugging aid and ignores the field mapping.
func ListTags(path string, opts ...Option) ([]string, error) {
	return ListTagsContext(context.Background(), path, opts...)
}

// ListTagsContext is ListTags with context support for cancellation.
func ListTagsContext(ctx context.Context, path string, opts ...Option) ([]string, error) {
	o := applyOptions(opts)

	s, err := openStore(ctx, path, o)
	if err != nil {
		return nil, err
	}
	defer s.Close() //nolint:errcheck // Read-only use

	keys := s.Keys()
	slices.Sort(keys)
	return keys, nil
}

// openStore checks the container and opens the tag store of path.
func openStore(ctx context.Context, path string, o *options) (Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !o.anyFormat {
		format, err := sniff(path)
		if err != nil {
			return nil, &OpenError{Path: path, Err: err}
		}
		o.logger.Debug().Str("path", path).Stringer("format", format).Msg("detected container")
	}

	opener := o.opener
	name := "custom"
	if opener == nil {
		var err error
		name = o.backend
		opener, err = backendOpener(name)
		if err != nil {
			return nil, &OpenError{Path: path, Err: err}
		}
	}

	s, err := opener.Open(ctx, path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	o.logger.Debug().Str("path", path).Str("backend", name).Msg("opened tag store")
	return s, nil
}

// sniff detects the container format of path from its magic bytes.
func sniff(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("open file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only use

	stat, err := f.Stat()
	if err != nil {
		return FormatUnknown, fmt.Errorf("stat file: %w", err)
	}
	if stat.IsDir() {
		return FormatUnknown, &types.UnsupportedFormatError{Path: path, Reason: "is a directory"}
	}

	return types.DetectFormat(f, stat.Size(), path)
}
