package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/relplan/internal/calendar"
	"github.com/alexanderramin/relplan/internal/domain"
)

// ConflictRef describes the other side of a conflict.
type ConflictRef struct {
	ItemID    string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	// OverlapDays counts working days in the overlap, not calendar days.
	OverlapDays  int
	OverlapStart time.Time
	OverlapEnd   time.Time
}

// TicketConflict records that an item shares working days with at least one
// other item assigned to the same person. Assignee is the roster key of that
// person. With is the first conflicting
// partner in list order; All lists every partner in list order, With included.
type TicketConflict struct {
	ItemID   string
	Assignee string
	With     ConflictRef
	All      []ConflictRef
}

// ConflictSummary aggregates a conflict map per developer. Counts are of
// conflicting items, so an item in several pairs counts once.
type ConflictSummary struct {
	TotalConflicts       int
	AffectedDevelopers   []string
	ConflictsByDeveloper map[string]int
}

// DetectConflicts finds, per assignee, every pair of items whose date ranges
// share at least one working day. Unassigned items never conflict. References
// are grouped by the member they resolve to through roster, so an ID and a
// name for the same person land in one partition.
//
// Pairs are compared exhaustively within each assignee's partition. That is
// quadratic in the partition size, which stays in the tens for real plans.
func DetectConflicts(items []domain.WorkItem, roster Roster) map[string]TicketConflict {
	conflicts := make(map[string]TicketConflict)

	for _, part := range partitionByAssignee(items, roster) {
		for a := 0; a < len(part.indexes); a++ {
			left := items[part.indexes[a]]
			leftRange := calendar.NewRange(left.StartDate, left.EndDate)
			for b := a + 1; b < len(part.indexes); b++ {
				right := items[part.indexes[b]]
				if left.ID == right.ID {
					continue
				}
				ov, ok := calendar.Overlap(leftRange, calendar.NewRange(right.StartDate, right.EndDate))
				if !ok {
					continue
				}
				days := ov.WorkingDays()
				if days == 0 {
					continue
				}
				recordConflict(conflicts, left, right, part.key, ov, days)
				recordConflict(conflicts, right, left, part.key, ov, days)
			}
		}
	}

	return conflicts
}

// HasConflict reports whether itemID participates in any conflict.
func HasConflict(itemID string, conflicts map[string]TicketConflict) bool {
	_, ok := conflicts[itemID]
	return ok
}

// Summarize counts conflicting items per developer. Developer names come from
// the roster; references that do not resolve are reported as written.
func Summarize(conflicts map[string]TicketConflict, roster Roster) ConflictSummary {
	byDev := make(map[string]int)
	for _, c := range conflicts {
		byDev[roster.DisplayName(c.Assignee)]++
	}

	devs := make([]string, 0, len(byDev))
	for name := range byDev {
		devs = append(devs, name)
	}
	sort.Strings(devs)

	return ConflictSummary{
		TotalConflicts:       len(conflicts),
		AffectedDevelopers:   devs,
		ConflictsByDeveloper: byDev,
	}
}

type assigneePartition struct {
	key     string
	indexes []int
}

// partitionByAssignee groups item indexes by roster key, in order of first
// appearance, dropping unassigned items.
func partitionByAssignee(items []domain.WorkItem, roster Roster) []assigneePartition {
	var parts []assigneePartition
	pos := make(map[string]int)
	for i := range items {
		key := roster.Key(items[i].AssignedTo)
		if key == "" {
			continue
		}
		p, ok := pos[key]
		if !ok {
			p = len(parts)
			pos[key] = p
			parts = append(parts, assigneePartition{key: key})
		}
		parts[p].indexes = append(parts[p].indexes, i)
	}
	return parts
}

func recordConflict(conflicts map[string]TicketConflict, item, other domain.WorkItem, assignee string, ov calendar.Range, days int) {
	ref := ConflictRef{
		ItemID:       other.ID,
		Title:        other.Title,
		StartDate:    calendar.Day(other.StartDate),
		EndDate:      calendar.Day(other.EndDate),
		OverlapDays:  days,
		OverlapStart: ov.Start,
		OverlapEnd:   ov.End,
	}
	c, ok := conflicts[item.ID]
	if !ok {
		c = TicketConflict{ItemID: item.ID, Assignee: assignee, With: ref}
	}
	c.All = append(c.All, ref)
	conflicts[item.ID] = c
}
