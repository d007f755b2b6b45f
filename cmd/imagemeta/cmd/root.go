// Package cmd implements the imagemeta command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/config"
	"github.com/simonhull/imagemeta/internal/exiftool"
	"github.com/simonhull/imagemeta/internal/logging"
	"github.com/simonhull/imagemeta/internal/output"
)

// app carries the global flags and the state resolved from them before
// a subcommand runs.
type app struct {
	configFile string
	backend    string
	exiftool   string
	output     string
	verbose    bool

	// opener, if set, replaces backend selection.
	opener imagemeta.Opener

	log    zerolog.Logger
	format output.Format
	opts   []imagemeta.Option
	closer io.Closer
}

// Execute runs the CLI with args and releases every backend afterwards.
func Execute(ctx context.Context, args []string) error {
	a := &app{}
	root := newRootCommand(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "imagemeta",
		Short: "Read and write descriptive image metadata",
		Long: `imagemeta reads and writes the title, description, keywords, author and
copyright of images, keeping the XMP, IPTC and EXIF copies of each field
in agreement. The capture date is reported but never modified.

Settings are read from $HOME/.imagemeta.yaml (or --config), .env files and
IMAGEMETA_* environment variables; flags take precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is $HOME/.imagemeta.yaml)")
	flags.StringVar(&a.backend, "backend", "", fmt.Sprintf("tag backend (%v)", imagemeta.Backends()))
	flags.StringVar(&a.exiftool, "exiftool", "", "path to the exiftool executable")
	flags.StringVarP(&a.output, "output", "o", "", "Output format: table, json, yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newReadCommand(a),
		newWriteCommand(a),
		newTagsCommand(a),
		newVersionCommand(a),
	)
	return root
}

// setup resolves configuration, logging and the tag backend.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader()
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		config.KeyBackend:      "backend",
		config.KeyExiftoolPath: "exiftool",
		config.KeyOutput:       "output",
	} {
		if err := loader.BindFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := loader.Load(a.configFile)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.log = logging.New(&logging.Config{Level: level, Format: cfg.LogFormat, Output: "stderr"})
	cmd.SetContext(logging.WithLogger(cmd.Context(), &a.log))

	if cfg.ConfigFile != "" {
		a.log.Debug().Str("file", cfg.ConfigFile).Msg("using config file")
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	a.format = output.DetectFormat(string(format))

	a.opts = []imagemeta.Option{imagemeta.WithLogger(a.log)}
	switch {
	case a.opener != nil:
		a.opts = append(a.opts, imagemeta.WithOpener(a.opener))
	case cfg.Backend == exiftool.Name && cfg.ExiftoolPath != "":
		b, err := exiftool.New(exiftool.WithBinaryPath(cfg.ExiftoolPath))
		if err != nil {
			return err
		}
		a.closer = b
		a.opts = append(a.opts, imagemeta.WithOpener(b))
	default:
		a.opts = append(a.opts, imagemeta.WithBackend(cfg.Backend))
	}

	a.log.Debug().Str("backend", cfg.Backend).Str("output", string(a.format)).Msg("configured")
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
		a.closer = nil
	}
	errs = append(errs, imagemeta.Shutdown())
	return errors.Join(errs...)
}

// render writes data to the command's output in the selected format.
func (a *app) render(cmd *cobra.Command, data any) error {
	return output.NewFormatter(a.format).Format(cmd.OutOrStdout(), data)
}
