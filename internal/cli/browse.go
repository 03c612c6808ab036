package cli

import (
	"github.com/spf13/cobra"

	"retailadmin/internal/tui"
)

func browseCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive invoice browser",
		RunE: func(_ *cobra.Command, _ []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.closeLog() }()

			return tui.Run(tui.Deps{
				Source:   e.source,
				Exporter: e.exporter,
				Match:    e.match,
				Location: e.loc,
				OutDir:   out,
				Logger:   e.log,
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", ".", "directory ctrl+e exports into")
	return cmd
}
