package scheduler

import (
	"math"

	"github.com/alexanderramin/relplan/internal/domain"
)

const (
	defaultEffortDays = 1.0
	baselineVelocity  = 1.0
)

// ResolveEffortDays returns the item's nominal effort: EffortDays when
// positive, else the legacy StoryPoints when positive, else 1.
func ResolveEffortDays(item domain.WorkItem) float64 {
	return domain.FirstPositive(defaultEffortDays, item.EffortDays, item.StoryPoints)
}

// Velocity returns the member's usable velocity multiplier. A nil member or a
// multiplier that is not a positive finite number counts as baseline.
func Velocity(member *domain.TeamMember) float64 {
	if member == nil {
		return baselineVelocity
	}
	v := member.VelocityMultiplier
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return baselineVelocity
	}
	return v
}

// AdjustedDuration is the velocity-adjusted scheduled span of an item in
// days. It is independent of the item's literal start and end dates.
func AdjustedDuration(item domain.WorkItem, member *domain.TeamMember) float64 {
	return ResolveEffortDays(item) / Velocity(member)
}
