package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/relplan/internal/domain"
)

const dateLayout = "2006-01-02"

var validExperience = map[string]bool{
	string(domain.ExperienceJunior): true,
	string(domain.ExperienceMid):    true,
	string(domain.ExperienceSenior): true,
	string(domain.ExperienceLead):   true,
}

// ValidatePlanSchema checks the plan before conversion and returns every
// error found, not just the first.
func ValidatePlanSchema(schema *PlanSchema) []error {
	var errs []error

	errs = append(errs, validateRelease(&schema.Release)...)
	errs = append(errs, validateSprints(schema.Sprints)...)
	errs = append(errs, validateTeam(schema.Team)...)
	errs = append(errs, validateHolidays(schema.Holidays)...)

	ticketIDs := make(map[string]bool)
	errs = append(errs, validateFeatures(schema.Features, ticketIDs)...)
	errs = append(errs, detectCycles(schema.Features)...)

	return errs
}

func validateRelease(r *ReleaseImport) []error {
	var errs []error
	if r.Name == "" {
		errs = append(errs, fmt.Errorf("release.name is required"))
	}

	start, startErr := optionalDate("release.start_date", r.StartDate)
	end, endErr := optionalDate("release.end_date", r.EndDate)
	errs = appendIf(errs, startErr)
	errs = appendIf(errs, endErr)
	if startErr == nil && endErr == nil && !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, fmt.Errorf("release.end_date %q must not be before start_date %q", *r.EndDate, *r.StartDate))
	}
	if (r.StartDate == nil) != (r.EndDate == nil) {
		errs = append(errs, fmt.Errorf("release: start_date and end_date must be given together"))
	}
	return errs
}

func validateSprints(sprints []SprintImport) []error {
	var errs []error
	ids := make(map[string]bool)
	for i, s := range sprints {
		prefix := fmt.Sprintf("sprints[%d]", i)
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, duplicateID(prefix, s.ID, ids)...)
		errs = append(errs, validateRange(prefix, s.StartDate, s.EndDate)...)
	}
	return errs
}

func validateTeam(team []MemberImport) []error {
	var errs []error
	ids := make(map[string]bool)
	names := make(map[string]bool)
	for i, m := range team {
		prefix := fmt.Sprintf("team[%d]", i)
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		}
		errs = append(errs, duplicateID(prefix, m.ID, ids)...)
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[m.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q makes name references ambiguous", prefix, m.Name))
		} else {
			names[m.Name] = true
		}
		if m.Experience != "" && !validExperience[m.Experience] {
			errs = append(errs, fmt.Errorf("%s.experience: invalid value %q", prefix, m.Experience))
		}
		if m.Velocity != nil && *m.Velocity <= 0 {
			errs = append(errs, fmt.Errorf("%s.velocity_multiplier must be positive", prefix))
		}
		for j, p := range m.PTO {
			errs = append(errs, validateRange(fmt.Sprintf("%s.pto[%d]", prefix, j), p.StartDate, p.EndDate)...)
		}
	}
	return errs
}

func validateHolidays(holidays []HolidayImport) []error {
	var errs []error
	for i, h := range holidays {
		prefix := fmt.Sprintf("holidays[%d]", i)
		if h.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		start, end := holidaySpan(h)
		errs = append(errs, validateRange(prefix, start, end)...)
	}
	return errs
}

func validateFeatures(features []FeatureImport, ticketIDs map[string]bool) []error {
	var errs []error
	for i, f := range features {
		prefix := fmt.Sprintf("features[%d]", i)
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		for j, t := range f.Tickets {
			tp := fmt.Sprintf("%s.tickets[%d]", prefix, j)
			errs = append(errs, duplicateID(tp, t.ID, ticketIDs)...)
			if t.Title == "" {
				errs = append(errs, fmt.Errorf("%s.title is required", tp))
			}
			if _, ok := domain.ParseWorkItemStatus(t.Status); !ok {
				errs = append(errs, fmt.Errorf("%s.status: invalid value %q", tp, t.Status))
			}
			errs = append(errs, validateRange(tp, t.StartDate, t.EndDate)...)
			if t.EffortDays != nil && *t.EffortDays < 0 {
				errs = append(errs, fmt.Errorf("%s.effort_days must not be negative", tp))
			}
			if t.StoryPoints != nil && *t.StoryPoints < 0 {
				errs = append(errs, fmt.Errorf("%s.story_points must not be negative", tp))
			}
			for _, dep := range t.DependsOn {
				if dep != "" && dep == t.ID {
					errs = append(errs, fmt.Errorf("%s.depends_on: self-dependency on %q", tp, dep))
				}
			}
		}
	}
	return errs
}

// detectCycles reports dependency cycles among tickets. References to
// tickets outside the plan are not edges here; they surface later as
// missing blockers.
func detectCycles(features []FeatureImport) []error {
	graph := make(map[string][]string)
	for _, f := range features {
		for _, t := range f.Tickets {
			if t.ID == "" {
				continue
			}
			for _, dep := range t.DependsOn {
				if dep != "" && dep != t.ID {
					graph[t.ID] = append(graph[t.ID], dep)
				}
			}
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // done
	)
	color := make(map[string]int)
	var errs []error

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, next := range graph[node] {
			if color[next] == gray {
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q", node, next))
				return true
			}
			if color[next] == white && visit(next) {
				return true
			}
		}
		color[node] = black
		return false
	}

	// Sorted for stable error output.
	nodes := make([]string, 0, len(graph))
	for n := range graph {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	for _, n := range nodes {
		if color[n] == white {
			visit(n)
		}
	}
	return errs
}

func validateRange(prefix, startStr, endStr string) []error {
	var errs []error
	start, err := requiredDate(prefix+".start_date", startStr)
	errs = appendIf(errs, err)
	end, err2 := requiredDate(prefix+".end_date", endStr)
	errs = appendIf(errs, err2)
	if err == nil && err2 == nil && end.Before(start) {
		errs = append(errs, fmt.Errorf("%s: end_date %q must not be before start_date %q", prefix, endStr, startStr))
	}
	return errs
}

func requiredDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)
	}
	return t, nil
}

func optionalDate(field string, s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	return requiredDate(field, *s)
}

func duplicateID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return nil
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
	}
	seen[id] = true
	return nil
}

func appendIf(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}

func holidaySpan(h HolidayImport) (string, string) {
	start := domain.CoalesceStr(h.StartDate, h.Date)
	end := domain.CoalesceStr(h.EndDate, start)
	return start, end
}
