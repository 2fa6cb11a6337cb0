package scheduler

import (
	"time"

	"github.com/alexanderramin/relplan/internal/calendar"
	"github.com/alexanderramin/relplan/internal/domain"
)

type DependencyViolationCode string

const (
	// ViolationStartsBeforeBlockerEnds: the item starts on or before the day its blocker ends.
	ViolationStartsBeforeBlockerEnds DependencyViolationCode = "STARTS_BEFORE_BLOCKER_ENDS"
	// ViolationMissingBlocker: the item depends on an id that is not in the plan.
	ViolationMissingBlocker DependencyViolationCode = "MISSING_BLOCKER"
)

// DependencyViolation reports an item scheduled against its dependency set.
// Nothing is moved; callers decide what to do.
type DependencyViolation struct {
	Code      DependencyViolationCode
	ItemID    string
	ItemTitle string
	BlockerID string
	// Blocker fields are zero for ViolationMissingBlocker.
	BlockerTitle string
	BlockerEnd   time.Time
	ItemStart    time.Time
}

// CheckDependencies reports every dependency an item's dates do not respect,
// in item order then dependency order. Self-references are ignored.
func CheckDependencies(items []domain.WorkItem) []DependencyViolation {
	byID := make(map[string]*domain.WorkItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	var out []DependencyViolation
	for _, it := range items {
		start := calendar.Day(it.StartDate)
		for _, dep := range it.DependsOn {
			if dep == "" || dep == it.ID {
				continue
			}
			blocker, ok := byID[dep]
			if !ok {
				out = append(out, DependencyViolation{
					Code:      ViolationMissingBlocker,
					ItemID:    it.ID,
					ItemTitle: it.Title,
					BlockerID: dep,
					ItemStart: start,
				})
				continue
			}
			blockerEnd := calendar.Day(blocker.EndDate)
			if start.After(blockerEnd) {
				continue
			}
			out = append(out, DependencyViolation{
				Code:         ViolationStartsBeforeBlockerEnds,
				ItemID:       it.ID,
				ItemTitle:    it.Title,
				BlockerID:    blocker.ID,
				BlockerTitle: blocker.Title,
				BlockerEnd:   blockerEnd,
				ItemStart:    start,
			})
		}
	}
	return out
}
