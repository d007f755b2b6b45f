package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/logging"
)

type writeFlags struct {
	title         string
	description   string
	keywords      []string
	author        string
	copyright     string
	clearKeywords bool
	backup        string
	preserveMTime bool
	validate      bool
}

func newWriteCommand(a *app) *cobra.Command {
	f := &writeFlags{}

	cmd := &cobra.Command{
		Use:   "write PATH",
		Short: "Write metadata fields to an image",
		Long: `Write stores each given field into all of its XMP, IPTC and EXIF tags.
Fields that are not given are left untouched. --keyword replaces every
existing keyword; --clear-keywords removes them first. Everything is
saved at once, so a rejected field leaves the file untouched.`,
		Example: `  imagemeta write photo.jpg --title "Sunset" --keyword sunset --keyword bay
  imagemeta write photo.jpg --clear-keywords --backup .bak`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, a, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "image title")
	flags.StringVar(&f.description, "description", "", "image description / caption")
	flags.StringArrayVarP(&f.keywords, "keyword", "k", nil, "keyword (repeatable)")
	flags.StringVar(&f.author, "author", "", "creator")
	flags.StringVar(&f.copyright, "copyright", "", "copyright notice")
	flags.BoolVar(&f.clearKeywords, "clear-keywords", false, "remove every existing keyword")
	flags.StringVar(&f.backup, "backup", "", "copy the original to PATH+SUFFIX before saving")
	flags.BoolVar(&f.preserveMTime, "preserve-mtime", false, "keep the file modification time")
	flags.BoolVar(&f.validate, "validate", false, "re-read the file after saving and compare")

	return cmd
}

func runWrite(cmd *cobra.Command, a *app, f *writeFlags, path string) error {
	md := imagemeta.Metadata{
		Title:       f.title,
		Description: f.description,
		Keywords:    f.keywords,
		Author:      f.author,
		Copyright:   f.copyright,
	}
	if md.IsEmpty() && !f.clearKeywords {
		return errors.New("nothing to write: set at least one field or --clear-keywords")
	}

	opts := append([]imagemeta.Option{}, a.opts...)
	if f.backup != "" {
		opts = append(opts, imagemeta.WithBackup(f.backup))
	}
	if f.preserveMTime {
		opts = append(opts, imagemeta.WithPreserveModTime())
	}

	if f.clearKeywords {
		opts = append(opts, imagemeta.WithClearKeywords())
	}
	if f.validate {
		opts = append(opts, imagemeta.WithValidation())
	}

	log := logging.FromContext(cmd.Context())
	if err := imagemeta.WriteContext(cmd.Context(), path, md, opts...); err != nil {
		return err
	}
	log.Debug().Str("path", path).Bool("clear_keywords", f.clearKeywords).Msg("write complete")

	if md.IsEmpty() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: keywords cleared\n", path)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: metadata written\n", path)
	return nil
}
