package scheduler

import (
	"math"
	"testing"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveEffortDays(t *testing.T) {
	cases := []struct {
		name        string
		effort      *float64
		storyPoints *float64
		want        float64
	}{
		{"effort days win", ptr(3), ptr(8), 3},
		{"falls back to story points", nil, ptr(5), 5},
		{"defaults to one", nil, nil, 1},
		{"zero effort falls through", ptr(0), ptr(2), 2},
		{"negative everywhere", ptr(-4), ptr(-1), 1},
		{"fractional effort", ptr(0.5), nil, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := domain.WorkItem{EffortDays: tc.effort, StoryPoints: tc.storyPoints}
			assert.Equal(t, tc.want, ResolveEffortDays(w))
		})
	}
}

func TestAdjustedDuration_StoryPointsWithFastMember(t *testing.T) {
	w := domain.WorkItem{StoryPoints: ptr(5)}
	member := &domain.TeamMember{VelocityMultiplier: 2.0}
	assert.Equal(t, 5.0, ResolveEffortDays(w))
	assert.Equal(t, 2.5, AdjustedDuration(w, member))
}

func TestAdjustedDuration_InvalidVelocityIsBaseline(t *testing.T) {
	w := domain.WorkItem{EffortDays: ptr(4)}
	for _, v := range []float64{0, -1.5, math.NaN(), math.Inf(1)} {
		assert.Equal(t, 4.0, AdjustedDuration(w, &domain.TeamMember{VelocityMultiplier: v}), "velocity=%v", v)
	}
	assert.Equal(t, 4.0, AdjustedDuration(w, nil))
}

func TestAdjustedDuration_SlowMemberTakesLonger(t *testing.T) {
	w := domain.WorkItem{EffortDays: ptr(3)}
	assert.Equal(t, 6.0, AdjustedDuration(w, &domain.TeamMember{VelocityMultiplier: 0.5}))
}

func TestAdjustedDuration_DoesNotTouchDates(t *testing.T) {
	w := item("t1", "alice", jun(1), jun(10))
	w.EffortDays = ptr(2)
	_ = AdjustedDuration(w, &domain.TeamMember{VelocityMultiplier: 2})
	assert.Equal(t, jun(1), w.StartDate)
	assert.Equal(t, jun(10), w.EndDate)
}
