package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/relplan/internal/cli/formatter"
	"github.com/alexanderramin/relplan/internal/contract"
	"github.com/spf13/cobra"
)

func newTicketCmd(app *App, opts *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "List, move and reassign tickets",
	}
	cmd.AddCommand(
		newTicketListCmd(app, opts),
		newTicketMoveCmd(app, opts),
		newTicketAssignCmd(app, opts),
	)
	return cmd
}

func newTicketListCmd(app *App, opts *outputOptions) *cobra.Command {
	var assignee, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a release's tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Tickets.List(context.Background(), contract.TicketListRequest{
				ReleaseRef: opts.release,
				Assignee:   assignee,
				Status:     status,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatTicketList(resp) })
		},
	}

	cmd.Flags().StringVar(&assignee, "assignee", "", `Member id or name, or "unassigned"`)
	cmd.Flags().StringVar(&status, "status", "", "planned, in_progress or completed")
	return cmd
}

func newTicketMoveCmd(app *App, opts *outputOptions) *cobra.Command {
	var start, end string
	var shift int

	cmd := &cobra.Command{
		Use:   "move TICKET",
		Short: "Reschedule a ticket and report the conflicts it now has",
		Long: `Reschedule a ticket. Give --start (and optionally --end; without it the
ticket keeps its length), or --shift to move both ends by a number of days.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if shift != 0 && (start != "" || end != "") {
				return fmt.Errorf("use either --shift or --start/--end, not both")
			}
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}

			resp, err := app.Tickets.Move(context.Background(), contract.TicketMoveRequest{
				TicketID:  args[0],
				Start:     startDate,
				End:       endDate,
				ShiftDays: shift,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatTicketChange(resp) })
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&shift, "shift", 0, "Move both dates by this many calendar days")
	return cmd
}

func newTicketAssignCmd(app *App, opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assign TICKET MEMBER",
		Short: `Assign a ticket to a member, or "unassigned" to clear it`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Tickets.Assign(context.Background(), contract.TicketAssignRequest{
				TicketID: args[0],
				Assignee: args[1],
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatTicketChange(resp) })
		},
	}
}
