package imagemeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/simonhull/imagemeta/internal/reconcile"
	"github.com/simonhull/imagemeta/internal/types"
)

// Write stores md into every XMP, IPTC and EXIF slot mapped to each field
// and saves the file.
//
// Empty fields are skipped, so existing values survive. Non-empty keyword
// lists replace the previous keywords; an empty list leaves them alone
// (use ClearKeywords to remove them). DateTaken is never written.
//
// A rejected tag aborts the call with a *TagWriteError before anything is
// saved. A failed save is a *PersistError. WithClearKeywords stages the
// removal of existing keywords in the same save.
//
// Options can be provided to customize save behavior:
//
//	err := imagemeta.Write("photo.jpg", md,
//	    imagemeta.WithBackup(".bak"),
//	    imagemeta.WithValidation(),
//	)
func Write(path string, md Metadata, opts ...Option) error {
	return WriteContext(context.Background(), path, md, opts...)
}

// WriteContext is Write with context support for cancellation.
func WriteContext(ctx context.Context, path string, md Metadata, opts ...Option) error {
	o := applyOptions(opts)

	s, err := openStore(ctx, path, o)
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck // Changes are committed by Save

	r := reconcile.New(o.logger.With().Str("path", path).Logger())
	if o.clearKeywords {
		if err := r.ClearKeywords(s); err != nil {
			return withPath(err, path)
		}
	}
	if err := r.Write(s, md); err != nil {
		return withPath(err, path)
	}

	if err := persist(path, s, o); err != nil {
		return err
	}

	if o.validate {
		if err := validate(ctx, path, md, o); err != nil {
			return &PersistError{Path: path, Err: err}
		}
	}
	return nil
}

// ClearKeywords removes every keyword from the XMP subject and IPTC
// keywords tags of path and saves the file.
func ClearKeywords(path string, opts ...Option) error {
	return ClearKeywordsContext(context.Background(), path, opts...)
}

// ClearKeywordsContext is ClearKeywords with context support for cancellation.
func ClearKeywordsContext(ctx context.Context, path string, opts ...Option) error {
	return WriteContext(ctx, path, Metadata{}, append(slices.Clip(opts), WithClearKeywords())...)
}

// persist saves the staged changes of s, honouring the backup and
// modification time options.
func persist(path string, s Store, o *options) error {
	var info os.FileInfo
	if o.preserveModTime || o.backupSuffix != "" {
		var err error
		if info, err = os.Stat(path); err != nil {
			return &PersistError{Path: path, Err: fmt.Errorf("stat file: %w", err)}
		}
	}

	if o.backupSuffix != "" {
		if err := copyFile(path, path+o.backupSuffix, info.Mode().Perm()); err != nil {
			return &PersistError{Path: path, Err: fmt.Errorf("create backup: %w", err)}
		}
	}

	if err := s.Save(path); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	o.logger.Debug().Str("path", path).Msg("saved metadata")

	if o.preserveModTime {
		_ = os.Chtimes(path, info.ModTime(), info.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}
	return nil
}

// validate re-reads path and compares every non-empty field that was written.
func validate(ctx context.Context, path string, want Metadata, o *options) error {
	s, err := openStore(ctx, path, o)
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}
	defer s.Close() //nolint:errcheck // Read-only use

	got := reconcile.New(o.logger).Read(s)
	if err := reconcile.Verify(want, got); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// withPath records path on tag write errors raised below the file level.
func withPath(err error, path string) error {
	var twe *types.TagWriteError
	if errors.As(err, &twe) && twe.Path == "" {
		twe.Path = path
	}
	return err
}

func copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only use

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
