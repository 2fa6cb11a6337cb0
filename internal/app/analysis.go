package app

import (
	"time"

	"github.com/alexanderramin/relplan/internal/domain"
)

// AnalysisRequest selects the release a report runs against. ReleaseRef may
// be a release id, an id prefix or a name; empty means the only release.
type AnalysisRequest struct {
	ReleaseRef string
	Now        *time.Time
}

func NewAnalysisRequest(releaseRef string) AnalysisRequest {
	return AnalysisRequest{ReleaseRef: releaseRef}
}

type ConflictPartner struct {
	ItemID       string `json:"item_id"`
	Title        string `json:"title"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	OverlapDays  int    `json:"overlap_days"`
	OverlapStart string `json:"overlap_start"`
	OverlapEnd   string `json:"overlap_end"`
}

// ConflictView is one conflicting ticket. With is the first overlapping
// ticket in plan order; Others lists every overlapping ticket.
type ConflictView struct {
	ItemID      string            `json:"item_id"`
	Title       string            `json:"title"`
	Assignee    string            `json:"assignee"`
	AssigneeRef string            `json:"assignee_ref"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	With        ConflictPartner   `json:"with"`
	Others      []ConflictPartner `json:"others"`
}

type ConflictSummaryView struct {
	TotalConflicts       int            `json:"total_conflicts"`
	AffectedDevelopers   []string       `json:"affected_developers"`
	ConflictsByDeveloper map[string]int `json:"conflicts_by_developer"`
}

type ConflictsResponse struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Release     ReleaseSummary      `json:"release"`
	Summary     ConflictSummaryView `json:"summary"`
	Conflicts   []ConflictView      `json:"conflicts"`
	Warnings    []string            `json:"warnings,omitempty"`
}

type SprintCapacityView struct {
	SprintID           string                `json:"sprint_id"`
	Name               string                `json:"name"`
	StartDate          string                `json:"start_date"`
	EndDate            string                `json:"end_date"`
	WorkingDays        int                   `json:"working_days"`
	TeamSize           int                   `json:"team_size"`
	Members            []string              `json:"members"`
	HolidayDays        int                   `json:"holiday_days"`
	PTODays            int                   `json:"pto_days"`
	TotalTeamDays      int                   `json:"total_team_days"`
	PlannedDays        float64               `json:"planned_days"`
	PlannedStoryPoints int                   `json:"planned_story_points"`
	ItemCount          int                   `json:"item_count"`
	UtilizationPct     float64               `json:"utilization_pct"`
	OverCapacity       bool                  `json:"over_capacity"`
	Status             domain.CapacityStatus `json:"status"`
}

// UnscheduledItem is a ticket whose start date falls in no sprint, so no
// sprint's planned work counts it.
type UnscheduledItem struct {
	ItemID    string `json:"item_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
}

type CapacityResponse struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Release     ReleaseSummary       `json:"release"`
	Sprints     []SprintCapacityView `json:"sprints"`
	Unscheduled []UnscheduledItem    `json:"unscheduled,omitempty"`
	Warnings    []string             `json:"warnings,omitempty"`
}

type DependencyViolationView struct {
	Code         string `json:"code"`
	ItemID       string `json:"item_id"`
	ItemTitle    string `json:"item_title"`
	ItemStart    string `json:"item_start"`
	BlockerID    string `json:"blocker_id"`
	BlockerTitle string `json:"blocker_title,omitempty"`
	BlockerEnd   string `json:"blocker_end,omitempty"`
}

type RoleMismatchView struct {
	ItemID       string `json:"item_id"`
	Title        string `json:"title"`
	RequiredRole string `json:"required_role"`
	Assignee     string `json:"assignee"`
	AssigneeRole string `json:"assignee_role"`
}

type ConfidenceView struct {
	Level              domain.RiskLevel `json:"level"`
	Score              float64          `json:"score"`
	Feasible           bool             `json:"feasible"`
	SprintCount        int              `json:"sprint_count"`
	OverSprints        []string         `json:"over_sprints"`
	MeanUtilizationPct float64          `json:"mean_utilization_pct"`
	UtilizationStdDev  float64          `json:"utilization_std_dev"`
	ConflictingItems   int              `json:"conflicting_items"`
	ViolationCount     int              `json:"violation_count"`
}

type HealthResponse struct {
	GeneratedAt    time.Time                 `json:"generated_at"`
	Release        ReleaseSummary            `json:"release"`
	Confidence     ConfidenceView            `json:"confidence"`
	Violations     []DependencyViolationView `json:"violations"`
	RoleMismatches []RoleMismatchView        `json:"role_mismatches"`
	Warnings       []string                  `json:"warnings,omitempty"`
}
