package scheduler

import (
	"math"
	"sort"

	"github.com/alexanderramin/relplan/internal/domain"
	"gonum.org/v1/gonum/stat"
)

const (
	overSprintWeight   = 40.0
	conflictPenalty    = 2.0
	violationPenalty   = 5.0
	penaltyCap         = 20.0
	volatilityFreePct  = 25.0
	onTrackScoreFloor  = 75.0
	atRiskScoreFloor   = 50.0
	maxConfidenceScore = 100.0
)

type ConfidenceInput struct {
	Capacities map[string]SprintCapacity
	Conflicts  ConflictSummary
	Violations []DependencyViolation
}

type ConfidenceResult struct {
	Level domain.RiskLevel
	Score float64
	// Feasible is true when no sprint is over capacity.
	Feasible bool

	SprintCount     int
	OverSprintCount int
	// MeanUtilizationPct and UtilizationStdDev cover sprints with capacity only.
	MeanUtilizationPct float64
	UtilizationStdDev  float64
	ConflictingItems   int
	ViolationCount     int
	// OverSprintIDs lists sprints over capacity, sorted by sprint start.
	OverSprintIDs []string
}

// ComputeConfidence scores how likely the release is to land as planned.
// Over-capacity sprints weigh most; conflicts, dependency violations and a
// lopsided load across sprints each take a capped penalty.
func ComputeConfidence(input ConfidenceInput) ConfidenceResult {
	result := ConfidenceResult{
		SprintCount:      len(input.Capacities),
		ConflictingItems: input.Conflicts.TotalConflicts,
		ViolationCount:   len(input.Violations),
	}

	caps := make([]SprintCapacity, 0, len(input.Capacities))
	for _, c := range input.Capacities {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool {
		if !caps[i].StartDate.Equal(caps[j].StartDate) {
			return caps[i].StartDate.Before(caps[j].StartDate)
		}
		return caps[i].SprintID < caps[j].SprintID
	})

	utilizations := make([]float64, 0, len(caps))
	for _, c := range caps {
		if c.OverCapacity {
			result.OverSprintCount++
			result.OverSprintIDs = append(result.OverSprintIDs, c.SprintID)
		}
		if c.TotalTeamDays > 0 {
			utilizations = append(utilizations, c.UtilizationPercent)
		}
	}

	switch len(utilizations) {
	case 0:
	case 1:
		result.MeanUtilizationPct = utilizations[0]
	default:
		result.MeanUtilizationPct, result.UtilizationStdDev = stat.MeanStdDev(utilizations, nil)
	}

	score := maxConfidenceScore
	if result.SprintCount > 0 {
		score -= overSprintWeight * float64(result.OverSprintCount) / float64(result.SprintCount)
	}
	score -= math.Min(penaltyCap, conflictPenalty*float64(result.ConflictingItems))
	score -= math.Min(penaltyCap, violationPenalty*float64(result.ViolationCount))
	score -= math.Min(penaltyCap, math.Max(0, result.UtilizationStdDev-volatilityFreePct)/2)
	result.Score = math.Max(0, math.Min(maxConfidenceScore, score))

	result.Feasible = result.OverSprintCount == 0

	switch {
	case result.Score >= onTrackScoreFloor:
		result.Level = domain.RiskOnTrack
	case result.Score >= atRiskScoreFloor:
		result.Level = domain.RiskAtRisk
	default:
		result.Level = domain.RiskCritical
	}

	return result
}
