package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/relplan/internal/calendar"
	"github.com/alexanderramin/relplan/internal/domain"
)

// UtilizationOverflow is reported as the utilization of a sprint that has
// work planned but no capacity at all.
const UtilizationOverflow = 999.0

// SprintCapacity is the capacity picture of one sprint. All day counts are
// working days. HolidayDays sums every holiday's working days inside the
// sprint, and PTODays sums each involved member's distinct PTO days, so a
// day can be lost to several holidays or to a holiday and PTO at once.
type SprintCapacity struct {
	SprintID   string
	SprintName string
	StartDate  time.Time
	EndDate    time.Time

	WorkingDays int
	TeamSize    int
	// Members lists the roster keys counted in TeamSize, sorted.
	Members       []string
	HolidayDays   int
	PTODays       int
	TotalTeamDays int

	PlannedDays float64
	// PlannedStoryPoints is PlannedDays rounded, kept for older displays.
	PlannedStoryPoints int
	ItemCount          int

	UtilizationPercent float64
	OverCapacity       bool
}

// Status classifies the sprint's utilization for display.
func (c SprintCapacity) Status() domain.CapacityStatus {
	return ClassifyUtilization(c.UtilizationPercent)
}

// ClassifyUtilization maps a utilization percentage onto the display ladder:
// over above 100, near from 90, good from 70, low below that.
func ClassifyUtilization(pct float64) domain.CapacityStatus {
	switch {
	case pct > 100:
		return domain.CapacityOver
	case pct >= 90:
		return domain.CapacityNear
	case pct >= 70:
		return domain.CapacityGood
	default:
		return domain.CapacityLow
	}
}

// ComputeSprintCapacities computes available team-days against planned work
// for every sprint of the release.
//
// Team size counts only people with work intersecting the sprint, not the
// whole roster. Work is attributed to the sprint containing its start date,
// so an item is never split. Items lying wholly outside the release window
// are ignored, and the rest are clamped to it, start date included.
func ComputeSprintCapacities(release *domain.Release, holidays []domain.Holiday, roster Roster) map[string]SprintCapacity {
	if release == nil {
		panic("scheduler: ComputeSprintCapacities called with nil release")
	}

	items := itemsInRelease(release)

	holidayRanges := make([]calendar.Range, 0, len(holidays))
	for _, h := range holidays {
		holidayRanges = append(holidayRanges, calendar.NewRange(h.StartDate, h.EndDate))
	}

	result := make(map[string]SprintCapacity, len(release.Sprints))
	for _, sp := range release.Sprints {
		result[sp.ID] = computeSprint(sp, items, holidayRanges, roster)
	}
	return result
}

// Unsprinted returns the items that count toward no sprint: their start date,
// after clamping to the release window, falls in a gap or outside every
// sprint. Items wholly outside the release window are not reported.
func Unsprinted(release *domain.Release) []domain.WorkItem {
	if release == nil {
		panic("scheduler: Unsprinted called with nil release")
	}
	windows := make([]calendar.Range, 0, len(release.Sprints))
	for _, sp := range release.Sprints {
		windows = append(windows, calendar.NewRange(sp.StartDate, sp.EndDate))
	}

	var out []domain.WorkItem
	for _, s := range itemsInRelease(release) {
		placed := false
		for _, w := range windows {
			if w.Contains(s.start) {
				placed = true
				break
			}
		}
		if !placed {
			out = append(out, s.item)
		}
	}
	return out
}

type scopedItem struct {
	item  domain.WorkItem
	span  calendar.Range
	start time.Time
}

func itemsInRelease(release *domain.Release) []scopedItem {
	var window calendar.Range
	hasWindow := release.HasWindow()
	if hasWindow {
		window = calendar.NewRange(release.StartDate, release.EndDate)
	}

	all := release.WorkItems()
	scoped := make([]scopedItem, 0, len(all))
	for _, it := range all {
		span := calendar.NewRange(it.StartDate, it.EndDate)
		start := calendar.Day(it.StartDate)
		if hasWindow {
			if _, ok := calendar.Overlap(span, window); !ok && !window.Contains(start) {
				continue
			}
			span = span.Clamp(window)
			if !span.Empty() {
				start = span.Start
			}
		}
		scoped = append(scoped, scopedItem{item: it, span: span, start: start})
	}
	return scoped
}

func computeSprint(sp domain.Sprint, items []scopedItem, holidayRanges []calendar.Range, roster Roster) SprintCapacity {
	window := calendar.NewRange(sp.StartDate, sp.EndDate)

	c := SprintCapacity{
		SprintID:    sp.ID,
		SprintName:  sp.Name,
		StartDate:   window.Start,
		EndDate:     window.End,
		WorkingDays: window.WorkingDays(),
	}

	involved := make(map[string]struct{})
	for _, s := range items {
		key := roster.Key(s.item.AssignedTo)
		if key == "" {
			continue
		}
		if _, ok := calendar.Overlap(s.span, window); ok {
			involved[key] = struct{}{}
		}
	}
	c.Members = make([]string, 0, len(involved))
	for key := range involved {
		c.Members = append(c.Members, key)
	}
	sort.Strings(c.Members)
	c.TeamSize = len(c.Members)

	for _, h := range holidayRanges {
		if ov, ok := calendar.Overlap(h, window); ok {
			c.HolidayDays += ov.WorkingDays()
		}
	}

	for _, ref := range c.Members {
		member, ok := roster.Resolve(ref)
		if !ok {
			continue
		}
		c.PTODays += memberPTODays(member, window)
	}

	c.TotalTeamDays = max(0, (c.WorkingDays-c.HolidayDays)*c.TeamSize-c.PTODays)

	for _, s := range items {
		if !window.Contains(s.start) {
			continue
		}
		member, _ := roster.Resolve(s.item.AssignedTo)
		c.PlannedDays += AdjustedDuration(s.item, member)
		c.ItemCount++
	}
	c.PlannedStoryPoints = int(math.Round(c.PlannedDays))

	switch {
	case c.TotalTeamDays > 0:
		c.UtilizationPercent = c.PlannedDays / float64(c.TotalTeamDays) * 100
	case c.PlannedDays > 0:
		c.UtilizationPercent = UtilizationOverflow
	default:
		c.UtilizationPercent = 0
	}
	c.OverCapacity = c.PlannedDays > float64(c.TotalTeamDays)

	return c
}

// memberPTODays counts the member's distinct PTO working days inside window.
// Overlapping entries count each day once.
func memberPTODays(member *domain.TeamMember, window calendar.Range) int {
	if len(member.PTO) == 0 {
		return 0
	}
	ranges := make([]calendar.Range, 0, len(member.PTO))
	for _, p := range member.PTO {
		ranges = append(ranges, calendar.NewRange(p.StartDate, p.EndDate))
	}
	return len(calendar.WorkingDaySet(window, ranges...))
}
