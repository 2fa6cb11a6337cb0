package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/relplan/internal/contract"
)

const utilizationBarWidth = 10

func releaseTitle(r contract.ReleaseSummary) string {
	span := ""
	if r.StartDate != "" {
		span = "  " + Dim(DateSpan(r.StartDate, r.EndDate))
	}
	return Bold(r.Name) + span
}

// FormatConflicts renders every double-booked ticket grouped by developer.
func FormatConflicts(resp *contract.ConflictsResponse) string {
	var b strings.Builder
	b.WriteString(releaseTitle(resp.Release) + "\n\n")

	if len(resp.Conflicts) == 0 {
		b.WriteString(StyleGreen.Render("No scheduling conflicts.") + "\n")
		b.WriteString(Warnings(resp.Warnings))
		return RenderBox("Conflicts", b.String())
	}

	headers := []string{"DEVELOPER", "TICKET", "DATES", "OVERLAPS WITH", "DAYS"}
	rows := make([][]string, 0, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		with := c.With.Title
		if extra := len(c.Others) - 1; extra > 0 {
			with += Dim(fmt.Sprintf(" (+%d more)", extra))
		}
		rows = append(rows, []string{
			StyleRed.Render(c.Assignee),
			c.Title,
			DateSpan(c.StartDate, c.EndDate),
			with,
			fmt.Sprintf("%d", c.With.OverlapDays),
		})
	}
	b.WriteString(RenderTable(headers, rows, 4))

	b.WriteString("\n")
	parts := make([]string, 0, len(resp.Summary.AffectedDevelopers))
	for _, dev := range resp.Summary.AffectedDevelopers {
		parts = append(parts, fmt.Sprintf("%s %d", dev, resp.Summary.ConflictsByDeveloper[dev]))
	}
	b.WriteString(StyleRed.Render(fmt.Sprintf("%d conflicting tickets", resp.Summary.TotalConflicts)))
	b.WriteString(Dim("  ("+strings.Join(parts, ", ")+")") + "\n")
	b.WriteString(Warnings(resp.Warnings))

	return RenderBox("Conflicts", b.String())
}

// FormatCapacity renders the per-sprint capacity table.
func FormatCapacity(resp *contract.CapacityResponse) string {
	var b strings.Builder
	b.WriteString(releaseTitle(resp.Release) + "\n\n")

	headers := []string{"SPRINT", "DATES", "TEAM", "DAYS", "HOL", "PTO", "CAPACITY", "PLANNED", "LOAD", "STATUS"}
	rows := make([][]string, 0, len(resp.Sprints))
	for _, s := range resp.Sprints {
		rows = append(rows, []string{
			Bold(s.Name),
			DateSpan(s.StartDate, s.EndDate),
			fmt.Sprintf("%d", s.TeamSize),
			fmt.Sprintf("%d", s.WorkingDays),
			fmt.Sprintf("%d", s.HolidayDays),
			fmt.Sprintf("%d", s.PTODays),
			fmt.Sprintf("%d", s.TotalTeamDays),
			FormatDays(s.PlannedDays),
			RenderUtilization(s.UtilizationPct, s.Status, utilizationBarWidth),
			CapacityPill(s.Status),
		})
	}
	if len(rows) > 0 {
		b.WriteString(RenderTable(headers, rows, 2, 3, 4, 5, 6, 7))
	}

	if len(resp.Unscheduled) > 0 {
		b.WriteString("\n" + Header("Outside every sprint") + "\n")
		for _, u := range resp.Unscheduled {
			b.WriteString(fmt.Sprintf("  %s  %s %s\n", TruncID(u.ItemID), u.Title, Dim("starts "+u.StartDate)))
		}
	}
	b.WriteString(Warnings(resp.Warnings))

	return RenderBox("Capacity", b.String())
}

// FormatHealth renders the release confidence score with what drags it down.
func FormatHealth(resp *contract.HealthResponse) string {
	c := resp.Confidence
	var b strings.Builder
	b.WriteString(releaseTitle(resp.Release) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", RiskIndicator(c.Level), Bold(fmt.Sprintf("%.0f/100", c.Score))))
	b.WriteString(Dim(fmt.Sprintf("mean load %.0f%% ± %.0f across %d sprints", c.MeanUtilizationPct, c.UtilizationStdDev, c.SprintCount)) + "\n")

	if c.Feasible {
		b.WriteString(StyleGreen.Render("No sprint is over capacity.") + "\n")
	} else {
		b.WriteString(StyleRed.Render("Over capacity: "+strings.Join(c.OverSprints, ", ")) + "\n")
	}
	if c.ConflictingItems > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d tickets are double-booked.", c.ConflictingItems)) + "\n")
	}

	if len(resp.Violations) > 0 {
		b.WriteString("\n" + Header("Dependencies") + "\n")
		for _, v := range resp.Violations {
			if v.BlockerTitle == "" {
				b.WriteString(fmt.Sprintf("  %s depends on unknown ticket %s\n", v.ItemTitle, Dim(v.BlockerID)))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s starts %s, before %s ends %s\n",
				v.ItemTitle, v.ItemStart, v.BlockerTitle, v.BlockerEnd))
		}
	}

	if len(resp.RoleMismatches) > 0 {
		b.WriteString("\n" + Header("Role mismatches") + "\n")
		for _, m := range resp.RoleMismatches {
			b.WriteString(fmt.Sprintf("  %s needs %s, %s is %s\n",
				m.Title, StylePurple.Render(m.RequiredRole), m.Assignee, Dim(m.AssigneeRole)))
		}
	}
	b.WriteString(Warnings(resp.Warnings))

	return RenderBox("Release health", b.String())
}
