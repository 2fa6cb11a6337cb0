package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/relplan/internal/contract"
	"github.com/alexanderramin/relplan/internal/domain"
)

func FormatReleaseList(releases []contract.ReleaseSummary) string {
	headers := []string{"ID", "NAME", "DATES", "FEATURES", "SPRINTS", "TICKETS"}
	rows := make([][]string, 0, len(releases))
	for _, r := range releases {
		rows = append(rows, []string{
			Dim(r.ShortID),
			Bold(r.Name),
			DateSpan(r.StartDate, r.EndDate),
			fmt.Sprintf("%d", r.FeatureCount),
			fmt.Sprintf("%d", r.SprintCount),
			fmt.Sprintf("%d", r.ItemCount),
		})
	}
	return RenderTable(headers, rows, 3, 4, 5)
}

// FormatRelease renders a release's sprints and its features with tickets.
// names maps member ids to display names.
func FormatRelease(rel *domain.Release, names map[string]string) string {
	var b strings.Builder
	b.WriteString(Bold(rel.Name) + "  " + Dim(rel.ID) + "\n")
	if rel.HasWindow() {
		b.WriteString(Dim(DateSpan(rel.StartDate.Format("2006-01-02"), rel.EndDate.Format("2006-01-02"))) + "\n")
	}

	if len(rel.Sprints) > 0 {
		b.WriteString("\n" + Header("Sprints") + "\n")
		for _, s := range rel.Sprints {
			b.WriteString(fmt.Sprintf("  %s  %s\n", Bold(s.Name),
				Dim(DateSpan(s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02")))))
		}
	}

	for _, f := range rel.Features {
		b.WriteString("\n" + Header(f.Name) + "\n")
		if len(f.WorkItems) == 0 {
			b.WriteString(Dim("  no tickets") + "\n")
			continue
		}
		for _, it := range f.WorkItems {
			owner := Dim("unassigned")
			if name, ok := names[it.AssignedTo]; ok {
				owner = StyleBlue.Render(name)
			} else if it.IsAssigned() {
				owner = StyleYellow.Render(it.AssignedTo)
			}
			b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
				StatusPill(it.Status), it.Title,
				Dim(DateSpan(it.StartDate.Format("2006-01-02"), it.EndDate.Format("2006-01-02"))),
				owner))
		}
	}
	return RenderBox("Release", b.String())
}

// StatusPill returns a colored indicator for a ticket status.
func StatusPill(status domain.WorkItemStatus) string {
	switch status {
	case domain.WorkItemPlanned:
		return StyleBlue.Render("○")
	case domain.WorkItemInProgress:
		return StyleGreen.Render("●")
	case domain.WorkItemCompleted:
		return StyleDim.Render("✔")
	default:
		return StyleDim.Render("?")
	}
}

func FormatTicketList(resp *contract.TicketListResponse) string {
	if len(resp.Tickets) == 0 {
		return Dim("No tickets match.") + "\n"
	}
	headers := []string{"ID", "TICKET", "FEATURE", "DATES", "EFFORT", "ADJ", "ASSIGNEE", ""}
	rows := make([][]string, 0, len(resp.Tickets))
	for _, t := range resp.Tickets {
		flag := ""
		if t.Conflicting {
			flag = StyleRed.Render("⚠ conflict")
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			StatusPill(t.Status) + " " + t.Title,
			Dim(t.Feature),
			DateSpan(t.StartDate, t.EndDate),
			FormatDays(t.EffortDays),
			FormatDays(t.AdjustedDays),
			OrDash(t.Assignee),
			flag,
		})
	}
	return RenderTable(headers, rows, 4, 5)
}

// FormatTicketChange reports a ticket after a move or reassignment.
func FormatTicketChange(resp *contract.TicketChangeResponse) string {
	t := resp.Ticket
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", Bold(t.Title), DateSpan(t.StartDate, t.EndDate), OrDash(t.Assignee)))
	if len(resp.Conflicts) == 0 {
		b.WriteString(StyleGreen.Render("No conflicts.") + "\n")
		return b.String()
	}
	b.WriteString(StyleRed.Render(fmt.Sprintf("Now overlaps %d ticket(s):", len(resp.Conflicts))) + "\n")
	for _, c := range resp.Conflicts {
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n", c.Title, DateSpan(c.StartDate, c.EndDate),
			Dim(fmt.Sprintf("%d working days", c.OverlapDays))))
	}
	return b.String()
}

func FormatImportResult(res *contract.ImportResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Imported release %s %s\n", Bold(res.Release.Name), Dim(res.Release.DisplayID())))
	b.WriteString(Dim(fmt.Sprintf("  %d features, %d sprints, %d tickets, %d members, %d PTO entries, %d holidays",
		res.FeatureCount, res.SprintCount, res.WorkItemCount, res.MemberCount, res.PTOCount, res.HolidayCount)) + "\n")
	b.WriteString(Warnings(res.Warnings))
	return b.String()
}

func FormatMembers(members []contract.MemberView) string {
	headers := []string{"ID", "NAME", "ROLE", "LEVEL", "VELOCITY", "PTO DAYS"}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			TruncID(m.ID),
			Bold(m.Name),
			OrDash(m.Role),
			m.Experience,
			fmt.Sprintf("%.2gx", m.Velocity),
			fmt.Sprintf("%d", m.PTODays),
		})
	}
	return RenderTable(headers, rows, 4, 5)
}

func FormatPTO(entries []contract.PTOView) string {
	headers := []string{"ID", "MEMBER", "DATES", "DAYS", "REASON"}
	rows := make([][]string, 0, len(entries))
	for _, p := range entries {
		rows = append(rows, []string{
			TruncID(p.ID),
			p.MemberName,
			DateSpan(p.StartDate, p.EndDate),
			fmt.Sprintf("%d", p.WorkingDays),
			OrDash(p.Reason),
		})
	}
	return RenderTable(headers, rows, 3)
}

func FormatHolidays(holidays []contract.HolidayView) string {
	headers := []string{"ID", "NAME", "DATES", "DAYS"}
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		rows = append(rows, []string{
			TruncID(h.ID),
			h.Name,
			DateSpan(h.StartDate, h.EndDate),
			fmt.Sprintf("%d", h.WorkingDays),
		})
	}
	return RenderTable(headers, rows, 3)
}
