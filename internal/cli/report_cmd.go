package cli

import (
	"context"

	"github.com/alexanderramin/relplan/internal/cli/formatter"
	"github.com/alexanderramin/relplan/internal/contract"
	"github.com/spf13/cobra"
)

func newConflictsCmd(app *App, opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "List tickets that double-book a developer",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Analysis.Conflicts(context.Background(), contract.NewAnalysisRequest(opts.release))
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatConflicts(resp) })
		},
	}
}

func newCapacityCmd(app *App, opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "capacity",
		Short: "Show available team-days against planned work per sprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Analysis.Capacity(context.Background(), contract.NewAnalysisRequest(opts.release))
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatCapacity(resp) })
		},
	}
}

func newHealthCmd(app *App, opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Score how likely the release is to land as planned",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Analysis.Health(context.Background(), contract.NewAnalysisRequest(opts.release))
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatHealth(resp) })
		},
	}
}
