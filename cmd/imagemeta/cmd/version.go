package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/output"
)

type versionReport struct {
	imagemeta.VersionInfo `yaml:",inline"`
	Platform              imagemeta.PlatformInfo `json:"platform" yaml:"platform"`
}

// Table implements output.Tabular.
func (v versionReport) Table() output.Data {
	return output.Data{
		Headers: []string{"component", "value"},
		Rows: [][]string{
			{"version", v.Version},
			{"commit", v.GitCommit},
			{"built", v.BuildTime},
			{"go version", v.GoVersion},
			{"platform", v.Platform.OS + "/" + v.Platform.Arch + " (" + v.Platform.Family + ")"},
		},
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd, versionReport{
				VersionInfo: imagemeta.GetVersionInfo(),
				Platform:    imagemeta.GetPlatformInfo(),
			})
		},
	}
}
