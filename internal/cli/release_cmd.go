package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/relplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReleaseCmd(app *App, opts *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Manage imported releases",
	}
	cmd.AddCommand(
		newReleaseListCmd(app, opts),
		newReleaseShowCmd(app, opts),
		newReleaseDeleteCmd(app),
	)
	return cmd
}

func newReleaseListCmd(app *App, opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			releases, err := app.Releases.List(context.Background())
			if err != nil {
				return err
			}
			if len(releases) == 0 && !opts.json {
				fmt.Fprintln(cmd.OutOrStdout(), "No releases imported yet.")
				return nil
			}
			return opts.render(cmd, releases, func() string { return formatter.FormatReleaseList(releases) })
		},
	}
}

func newReleaseShowCmd(app *App, opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [RELEASE]",
		Short: "Show a release's sprints, features and tickets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ref := opts.release
			if len(args) == 1 {
				ref = args[0]
			}
			rel, err := app.Releases.Get(ctx, ref)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), rel)
			}

			members, err := app.Team.ListMembers(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(members))
			for _, m := range members {
				names[m.ID] = m.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRelease(rel, names))
			return nil
		},
	}
}

func newReleaseDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete RELEASE",
		Short: "Delete a release with its features, sprints and tickets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Releases.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted release %s\n", args[0])
			return nil
		},
	}
}
