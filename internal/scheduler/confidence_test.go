package scheduler

import (
	"testing"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func capAt(id string, day int, total int, planned float64) SprintCapacity {
	c := SprintCapacity{SprintID: id, StartDate: jun(day), TotalTeamDays: total, PlannedDays: planned}
	if total > 0 {
		c.UtilizationPercent = planned / float64(total) * 100
	} else if planned > 0 {
		c.UtilizationPercent = UtilizationOverflow
	}
	c.OverCapacity = planned > float64(total)
	return c
}

func TestComputeConfidence_HealthyRelease(t *testing.T) {
	result := ComputeConfidence(ConfidenceInput{
		Capacities: map[string]SprintCapacity{
			"s1": capAt("s1", 1, 20, 10),
			"s2": capAt("s2", 15, 20, 12),
		},
	})
	assert.Equal(t, domain.RiskOnTrack, result.Level)
	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.Feasible)
	assert.InDelta(t, 55.0, result.MeanUtilizationPct, 0.001)
	assert.InDelta(t, 7.071, result.UtilizationStdDev, 0.001)
	assert.Empty(t, result.OverSprintIDs)
}

func TestComputeConfidence_OverSprintAndConflicts(t *testing.T) {
	result := ComputeConfidence(ConfidenceInput{
		Capacities: map[string]SprintCapacity{
			"s1": capAt("s1", 1, 20, 21),
			"s2": capAt("s2", 15, 20, 20),
		},
		Conflicts: ConflictSummary{TotalConflicts: 5},
	})
	// 100 - 40*1/2 - 2*5
	assert.InDelta(t, 70.0, result.Score, 0.001)
	assert.Equal(t, domain.RiskAtRisk, result.Level)
	assert.False(t, result.Feasible)
	assert.Equal(t, []string{"s1"}, result.OverSprintIDs)
	assert.Equal(t, 1, result.OverSprintCount)
	assert.Equal(t, 5, result.ConflictingItems)
}

func TestComputeConfidence_PenaltiesAreCapped(t *testing.T) {
	result := ComputeConfidence(ConfidenceInput{
		Capacities: map[string]SprintCapacity{
			"s1": capAt("s1", 1, 10, 11),
			"s2": capAt("s2", 15, 0, 3),
		},
		Conflicts:  ConflictSummary{TotalConflicts: 40},
		Violations: []DependencyViolation{{ItemID: "x"}},
	})
	// 100 - 40 - 20 (capped) - 5
	assert.InDelta(t, 35.0, result.Score, 0.001)
	assert.Equal(t, domain.RiskCritical, result.Level)
	assert.Equal(t, []string{"s1", "s2"}, result.OverSprintIDs)
	assert.InDelta(t, 110.0, result.MeanUtilizationPct, 0.001, "sprints without capacity are left out of the stats")
	assert.Equal(t, 0.0, result.UtilizationStdDev)
}

func TestComputeConfidence_LopsidedLoadPenalized(t *testing.T) {
	result := ComputeConfidence(ConfidenceInput{
		Capacities: map[string]SprintCapacity{
			"s1": capAt("s1", 1, 10, 1),
			"s2": capAt("s2", 15, 10, 13),
		},
	})
	// stddev(10, 130) ~ 84.85, penalty capped at 20; one of two sprints over: -20
	assert.InDelta(t, 60.0, result.Score, 0.001)
	assert.Equal(t, domain.RiskAtRisk, result.Level)
}

func TestComputeConfidence_NoSprints(t *testing.T) {
	result := ComputeConfidence(ConfidenceInput{})
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, domain.RiskOnTrack, result.Level)
	assert.True(t, result.Feasible)
	assert.Equal(t, 0, result.SprintCount)
}
