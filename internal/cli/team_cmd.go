package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/relplan/internal/cli/formatter"
	"github.com/alexanderramin/relplan/internal/contract"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *App, opts *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Show the team",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List team members with their PTO",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Team.ListMembers(context.Background())
			if err != nil {
				return err
			}
			if len(members) == 0 && !opts.json {
				fmt.Fprintln(cmd.OutOrStdout(), "No team members yet; import a plan with a team section.")
				return nil
			}
			return opts.render(cmd, members, func() string { return formatter.FormatMembers(members) })
		},
	})
	return cmd
}

func newPTOCmd(app *App, opts *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pto",
		Short: "Manage time off",
	}
	cmd.AddCommand(
		newPTOAddCmd(app, opts),
		newPTOListCmd(app, opts),
		newPTORemoveCmd(app),
	)
	return cmd
}

func newPTOAddCmd(app *App, opts *outputOptions) *cobra.Command {
	var member, start, end, reason string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book time off for a team member",
		Long:  "Book time off. Run without flags in a terminal to fill in a form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if (member == "" || start == "") && app.interactive() {
				form, err := ptoForm(ctx, app, &member, &start, &end, &reason)
				if err != nil {
					return err
				}
				if err := form.Run(); err != nil {
					return err
				}
			}
			if member == "" || start == "" {
				return fmt.Errorf("--member and --start are required")
			}

			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}
			if endDate.IsZero() {
				endDate = startDate
			}

			view, err := app.Team.AddPTO(ctx, contract.PTOAddRequest{
				Member: member,
				Start:  startDate,
				End:    endDate,
				Reason: reason,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, view, func() string {
				return fmt.Sprintf("Booked %d working day(s) off for %s %s",
					view.WorkingDays, formatter.Bold(view.MemberName), formatter.TruncID(view.ID))
			})
		},
	}

	cmd.Flags().StringVar(&member, "member", "", "Member id or name")
	cmd.Flags().StringVar(&start, "start", "", "First day off (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day off (YYYY-MM-DD, default: the start day)")
	cmd.Flags().StringVar(&reason, "reason", "", "Optional note")
	return cmd
}

func newPTOListCmd(app *App, opts *outputOptions) *cobra.Command {
	var member string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List booked time off",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Team.ListPTO(context.Background(), member)
			if err != nil {
				return err
			}
			if len(entries) == 0 && !opts.json {
				fmt.Fprintln(cmd.OutOrStdout(), "No time off booked.")
				return nil
			}
			return opts.render(cmd, entries, func() string { return formatter.FormatPTO(entries) })
		},
	}

	cmd.Flags().StringVar(&member, "member", "", "Only this member (id or name)")
	return cmd
}

func newPTORemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Cancel a PTO entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Team.RemovePTO(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed PTO %s\n", args[0])
			return nil
		},
	}
}

func newHolidayCmd(app *App, opts *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage company holidays",
	}
	cmd.AddCommand(
		newHolidayAddCmd(app, opts),
		newHolidayListCmd(app, opts),
		newHolidayRemoveCmd(app),
	)
	return cmd
}

func newHolidayAddCmd(app *App, opts *outputOptions) *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a company-wide closure",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate("date", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}
			view, err := app.Holidays.Add(context.Background(), contract.HolidayAddRequest{
				Name:  name,
				Start: startDate,
				End:   endDate,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, view, func() string {
				return fmt.Sprintf("Added %s (%s), %d working day(s) %s",
					formatter.Bold(view.Name), formatter.DateSpan(view.StartDate, view.EndDate),
					view.WorkingDays, formatter.TruncID(view.ID))
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Holiday name")
	cmd.Flags().StringVar(&start, "date", "", "Day of the holiday, or its first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day for multi-day closures (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newHolidayListCmd(app *App, opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List company holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			holidays, err := app.Holidays.List(context.Background())
			if err != nil {
				return err
			}
			if len(holidays) == 0 && !opts.json {
				fmt.Fprintln(cmd.OutOrStdout(), "No holidays recorded.")
				return nil
			}
			return opts.render(cmd, holidays, func() string { return formatter.FormatHolidays(holidays) })
		},
	}
}

func newHolidayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a holiday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Holidays.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed holiday %s\n", args[0])
			return nil
		},
	}
}
