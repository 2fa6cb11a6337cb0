package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/alexanderramin/relplan/internal/scheduler"
	"github.com/google/uuid"
)

// Plan is a converted plan file, ready for persistence.
type Plan struct {
	Release  *domain.Release
	Team     []domain.TeamMember
	Holidays []domain.Holiday
	// Warnings describe data the conversion repaired, such as an assignee
	// that matched nobody and was cleared.
	Warnings []string
}

// Convert transforms a validated PlanSchema into domain objects. Call
// ValidatePlanSchema first; Convert assumes the schema is valid.
//
// Assignee references are resolved against the plan's team and then the
// already stored team, by id first and by name second, and are stored as
// member ids.
func Convert(schema *PlanSchema, known []domain.TeamMember) (*Plan, error) {
	now := time.Now().UTC().Truncate(time.Second)
	plan := &Plan{}

	release := &domain.Release{
		ID:        idOrNew(schema.Release.ID),
		Name:      schema.Release.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if schema.Release.StartDate != nil && schema.Release.EndDate != nil {
		var err error
		if release.StartDate, err = parseDate(*schema.Release.StartDate); err != nil {
			return nil, fmt.Errorf("parsing release start_date: %w", err)
		}
		if release.EndDate, err = parseDate(*schema.Release.EndDate); err != nil {
			return nil, fmt.Errorf("parsing release end_date: %w", err)
		}
	}

	for _, s := range schema.Sprints {
		start, end, err := parseRange(s.StartDate, s.EndDate)
		if err != nil {
			return nil, fmt.Errorf("sprint %q: %w", s.Name, err)
		}
		release.Sprints = append(release.Sprints, domain.Sprint{
			ID:        idOrNew(s.ID),
			ReleaseID: release.ID,
			Name:      s.Name,
			StartDate: start,
			EndDate:   end,
		})
	}

	for _, m := range schema.Team {
		member := domain.TeamMember{
			ID:                 m.ID,
			Name:               m.Name,
			Role:               m.Role,
			Experience:         domain.ExperienceLevel(domain.CoalesceStr(m.Experience, string(domain.ExperienceMid))),
			VelocityMultiplier: domain.Float64FromPtrWithDefault(1.0, m.Velocity),
		}
		for _, p := range m.PTO {
			start, end, err := parseRange(p.StartDate, p.EndDate)
			if err != nil {
				return nil, fmt.Errorf("pto for %q: %w", m.Name, err)
			}
			member.PTO = append(member.PTO, domain.PTOEntry{
				ID:        idOrNew(p.ID),
				MemberID:  m.ID,
				Reason:    p.Reason,
				StartDate: start,
				EndDate:   end,
			})
		}
		plan.Team = append(plan.Team, member)
	}

	for _, h := range schema.Holidays {
		startStr, endStr := holidaySpan(h)
		start, end, err := parseRange(startStr, endStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", h.Name, err)
		}
		plan.Holidays = append(plan.Holidays, domain.Holiday{
			ID:        idOrNew(h.ID),
			Name:      h.Name,
			StartDate: start,
			EndDate:   end,
		})
	}

	roster := scheduler.NewRoster(mergeTeams(plan.Team, known))
	ticketIDs := make(map[string]bool)
	for i, f := range schema.Features {
		feature := domain.Feature{
			ID:         idOrNew(f.ID),
			ReleaseID:  release.ID,
			Name:       f.Name,
			OrderIndex: i,
		}
		for _, t := range f.Tickets {
			item, err := convertTicket(t, feature.ID, roster, now, plan)
			if err != nil {
				return nil, err
			}
			ticketIDs[item.ID] = true
			feature.WorkItems = append(feature.WorkItems, item)
		}
		release.Features = append(release.Features, feature)
	}

	for _, it := range release.WorkItems() {
		for _, dep := range it.DependsOn {
			if !ticketIDs[dep] {
				plan.Warnings = append(plan.Warnings,
					fmt.Sprintf("ticket %q depends on %q, which is not in the plan", it.Title, dep))
			}
		}
	}

	plan.Release = release
	return plan, nil
}

func convertTicket(t TicketImport, featureID string, roster scheduler.Roster, now time.Time, plan *Plan) (domain.WorkItem, error) {
	start, end, err := parseRange(t.StartDate, t.EndDate)
	if err != nil {
		return domain.WorkItem{}, fmt.Errorf("ticket %q: %w", t.Title, err)
	}
	status, ok := domain.ParseWorkItemStatus(t.Status)
	if !ok {
		return domain.WorkItem{}, fmt.Errorf("ticket %q: invalid status %q", t.Title, t.Status)
	}

	assignee := ""
	if ref := domain.AssigneeKey(t.AssignedTo); ref != "" {
		if m, ok := roster.Resolve(ref); ok {
			assignee = m.ID
		} else if m, ok := resolveFold(roster, ref); ok {
			assignee = m.ID
		} else {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("ticket %q: assignee %q matches no team member, left unassigned", t.Title, t.AssignedTo))
		}
	}

	var deps []string
	for _, d := range t.DependsOn {
		if d = strings.TrimSpace(d); d != "" {
			deps = append(deps, d)
		}
	}

	return domain.WorkItem{
		ID:           idOrNew(t.ID),
		FeatureID:    featureID,
		Title:        t.Title,
		Status:       status,
		StartDate:    start,
		EndDate:      end,
		EffortDays:   t.EffortDays,
		StoryPoints:  t.StoryPoints,
		AssignedTo:   assignee,
		RequiredRole: t.RequiredRole,
		DependsOn:    deps,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// resolveFold retries a name lookup case-insensitively, for hand-written plans.
func resolveFold(roster scheduler.Roster, ref string) (*domain.TeamMember, bool) {
	var found *domain.TeamMember
	for _, m := range roster.Members() {
		if strings.EqualFold(m.Name, ref) {
			if found != nil {
				return nil, false
			}
			found = m
		}
	}
	return found, found != nil
}

// mergeTeams lists the plan's team first, then stored members it does not redefine.
func mergeTeams(plan, known []domain.TeamMember) []domain.TeamMember {
	seen := make(map[string]bool, len(plan))
	merged := make([]domain.TeamMember, 0, len(plan)+len(known))
	for _, m := range plan {
		seen[m.ID] = true
		merged = append(merged, m)
	}
	for _, m := range known {
		if !seen[m.ID] {
			merged = append(merged, m)
		}
	}
	return merged
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing start_date: %w", err)
	}
	end, err := parseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing end_date: %w", err)
	}
	return start, end, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.New().String()
}
