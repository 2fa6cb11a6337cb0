package domain

import (
	"strings"
	"time"
)

// WorkItem is a schedulable ticket. StartDate and EndDate are inclusive
// calendar days. The engine reads work items but never writes to them.
type WorkItem struct {
	ID        string
	FeatureID string
	Title     string
	Status    WorkItemStatus

	StartDate time.Time
	EndDate   time.Time

	// Effort in days. StoryPoints is the legacy field used when EffortDays is unset.
	EffortDays  *float64
	StoryPoints *float64

	// AssignedTo references a TeamMember by ID (names are accepted from legacy plans).
	AssignedTo   string
	RequiredRole string
	DependsOn    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAssigned reports whether the item has an owner. Blank references and the
// "Unassigned" sentinel both count as unassigned.
func (w *WorkItem) IsAssigned() bool {
	return AssigneeKey(w.AssignedTo) != ""
}

// Reschedule moves the item to new dates, as a drag or resize in the planner does.
func (w *WorkItem) Reschedule(start, end time.Time, now time.Time) {
	w.StartDate = start
	w.EndDate = end
	w.UpdatedAt = now
}

// AssigneeKey normalizes an assignee reference for partitioning. It returns ""
// for references that mean "nobody".
func AssigneeKey(ref string) string {
	key := strings.TrimSpace(ref)
	if strings.EqualFold(key, UnassignedSentinel) {
		return ""
	}
	return key
}
