package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/logging"
	"github.com/simonhull/imagemeta/internal/output"
)

// readResult is the metadata of one file.
type readResult struct {
	Path               string `json:"path" yaml:"path"`
	imagemeta.Metadata `yaml:",inline"`
}

type readResults []readResult

// Table implements output.Tabular.
func (r readResults) Table() output.Data {
	data := output.Data{Headers: []string{"path", "field", "value"}}
	for _, res := range r {
		md := res.Metadata
		rows := [][2]string{
			{"title", md.Title},
			{"description", md.Description},
			{"keywords", strings.Join(md.Keywords, ", ")},
			{"date_taken", deref(md.DateTaken)},
			{"author", md.Author},
			{"copyright", md.Copyright},
		}
		for _, row := range rows {
			if row[1] == "" {
				continue
			}
			data.Rows = append(data.Rows, []string{res.Path, row[0], row[1]})
		}
	}
	return data
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newReadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read PATH...",
		Short: "Show the reconciled metadata of images",
		Long: `Read prints title, description, keywords, capture date, author and
copyright of each image. Every field is taken from the first of its XMP,
IPTC and EXIF tags that holds a value.`,
		Example: `  imagemeta read photo.jpg
  imagemeta read -o json *.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := imagemeta.ReadMany(cmd.Context(), args, a.opts...)
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug().Int("files", len(all)).Msg("read complete")

			results := make(readResults, len(args))
			for i, md := range all {
				results[i] = readResult{Path: args[i], Metadata: md}
			}
			return a.render(cmd, results)
		},
	}
}
