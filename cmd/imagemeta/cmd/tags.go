package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/output"
)

type tagList struct {
	Path string   `json:"path" yaml:"path"`
	Tags []string `json:"tags" yaml:"tags"`
}

// Table implements output.Tabular.
func (l tagList) Table() output.Data {
	data := output.Data{Headers: []string{"tag"}}
	for _, t := range l.Tags {
		data.Rows = append(data.Rows, []string{t})
	}
	return data
}

func newTagsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags PATH",
		Short: "List every tag the backend reports for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := imagemeta.ListTagsContext(cmd.Context(), args[0], a.opts...)
			if err != nil {
				return err
			}
			return a.render(cmd, tagList{Path: args[0], Tags: tags})
		},
	}
}
