package cli

import (
	"github.com/alexanderramin/relplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Import   service.ImportService
	Releases service.ReleaseService
	Analysis service.AnalysisService
	Tickets  service.TicketService
	Team     service.TeamService
	Holidays service.HolidayService

	// JSON is the default output mode; --json overrides it per command.
	JSON bool
	// IsInteractive reports whether stdin is a terminal, which enables forms.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "relplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &outputOptions{json: app.JSON}

	root := &cobra.Command{
		Use:           "relplan",
		Short:         "Release planning: conflicts, sprint capacity and release health",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", app.JSON, "Print JSON instead of tables")
	root.PersistentFlags().StringVarP(&opts.release, "release", "r", "", "Release id, id prefix or name (default: the only release)")

	root.AddCommand(
		newImportCmd(app, opts),
		newReleaseCmd(app, opts),
		newConflictsCmd(app, opts),
		newCapacityCmd(app, opts),
		newHealthCmd(app, opts),
		newTicketCmd(app, opts),
		newTeamCmd(app, opts),
		newPTOCmd(app, opts),
		newHolidayCmd(app, opts),
		newBoardCmd(app, opts),
	)

	return root
}
