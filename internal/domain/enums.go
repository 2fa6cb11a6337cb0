package domain

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)

type WorkItemStatus string

const (
	WorkItemPlanned    WorkItemStatus = "planned"
	WorkItemInProgress WorkItemStatus = "in_progress"
	WorkItemCompleted  WorkItemStatus = "completed"
)

// ParseWorkItemStatus maps a status string to a WorkItemStatus. The hyphenated
// "in-progress" spelling is accepted; empty input defaults to planned.
func ParseWorkItemStatus(s string) (WorkItemStatus, bool) {
	switch s {
	case "", string(WorkItemPlanned):
		return WorkItemPlanned, true
	case string(WorkItemInProgress), "in-progress":
		return WorkItemInProgress, true
	case string(WorkItemCompleted):
		return WorkItemCompleted, true
	default:
		return "", false
	}
}

type CapacityStatus string

const (
	CapacityOver CapacityStatus = "over"
	CapacityNear CapacityStatus = "near"
	CapacityGood CapacityStatus = "good"
	CapacityLow  CapacityStatus = "low"
)

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

// UnassignedSentinel is the literal assignee value the planner UI writes for
// tickets nobody owns.
const UnassignedSentinel = "Unassigned"
