package cli

import (
	"context"

	"github.com/alexanderramin/relplan/internal/cli/formatter"
	"github.com/alexanderramin/relplan/internal/contract"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App, opts *outputOptions) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a release plan from a JSON file",
		Long: `Import a release plan: the release with its sprints, features and tickets,
plus the team (with PTO) and company holidays. Team members and holidays are
shared across releases and are updated in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportPlan(context.Background(), args[0], contract.ImportOptions{Replace: replace})
			if err != nil {
				return err
			}
			return opts.render(cmd, res, func() string { return formatter.FormatImportResult(res) })
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace a stored release with the same name")
	return cmd
}
