package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConflicts_SameAssigneeOverlap(t *testing.T) {
	items := []domain.WorkItem{
		item("t1", "Alice", jun(1), jun(5)),
		item("t2", "Alice", jun(3), jun(7)),
	}

	conflicts := DetectConflicts(items, Roster{})
	require.Len(t, conflicts, 2)

	c1 := conflicts["t1"]
	assert.Equal(t, "t2", c1.With.ItemID)
	assert.Equal(t, "Ticket t2", c1.With.Title)
	assert.Equal(t, 3, c1.With.OverlapDays, "jun 3-5 are working days")
	assert.Equal(t, jun(3), c1.With.OverlapStart)
	assert.Equal(t, jun(5), c1.With.OverlapEnd)
	assert.Equal(t, jun(3), c1.With.StartDate)
	assert.Equal(t, jun(7), c1.With.EndDate)

	c2 := conflicts["t2"]
	assert.Equal(t, "t1", c2.With.ItemID)
	assert.Equal(t, 3, c2.With.OverlapDays)
	assert.Equal(t, "Alice", c2.Assignee)
}

func TestDetectConflicts_DifferentAssignees(t *testing.T) {
	items := []domain.WorkItem{
		item("t1", "Alice", jun(1), jun(5)),
		item("t2", "Bob", jun(3), jun(7)),
	}
	assert.Empty(t, DetectConflicts(items, Roster{}))
}

func TestDetectConflicts_WeekendOnlyOverlapIgnored(t *testing.T) {
	items := []domain.WorkItem{
		item("t1", "Alice", jun(1), jun(7)),
		item("t2", "Alice", jun(6), jun(12)),
	}
	assert.Empty(t, DetectConflicts(items, Roster{}), "overlap is sat+sun only")
}

func TestDetectConflicts_SingleDayItemsConflict(t *testing.T) {
	items := []domain.WorkItem{
		item("t1", "Alice", jun(3), jun(3)),
		item("t2", "Alice", jun(3), jun(3)),
	}
	conflicts := DetectConflicts(items, Roster{})
	require.Len(t, conflicts, 2)
	assert.Equal(t, 1, conflicts["t1"].With.OverlapDays)
}

func TestDetectConflicts_UnassignedExcluded(t *testing.T) {
	items := []domain.WorkItem{
		item("t1", "", jun(1), jun(5)),
		item("t2", "", jun(1), jun(5)),
		item("t3", "Unassigned", jun(1), jun(5)),
		item("t4", "unassigned", jun(1), jun(5)),
		item("t5", "  ", jun(1), jun(5)),
	}
	assert.Empty(t, DetectConflicts(items, Roster{}))
}

func TestDetectConflicts_InvertedRangeNeverConflicts(t *testing.T) {
	items := []domain.WorkItem{
		item("t1", "Alice", jun(5), jun(1)),
		item("t2", "Alice", jun(1), jun(12)),
	}
	assert.Empty(t, DetectConflicts(items, Roster{}))
}

func TestDetectConflicts_FirstFoundInListOrderAndAggregate(t *testing.T) {
	items := []domain.WorkItem{
		item("a", "Alice", jun(1), jun(3)),
		item("b", "Alice", jun(8), jun(10)),
		item("c", "Alice", jun(2), jun(9)), // overlaps a and b
	}

	conflicts := DetectConflicts(items, Roster{})
	require.Len(t, conflicts, 3)

	c := conflicts["c"]
	assert.Equal(t, "a", c.With.ItemID, "first partner in list order")
	require.Len(t, c.All, 2)
	assert.Equal(t, "a", c.All[0].ItemID)
	assert.Equal(t, "b", c.All[1].ItemID)
	assert.Equal(t, 2, c.All[0].OverlapDays) // jun 2-3
	assert.Equal(t, 2, c.All[1].OverlapDays) // jun 8-9

	b := conflicts["b"]
	assert.Equal(t, "c", b.With.ItemID)
	assert.Len(t, b.All, 1)
}

func TestDetectConflicts_IDAndNameReferencesShareAPartition(t *testing.T) {
	roster := NewRoster([]domain.TeamMember{{ID: "m-a", Name: "Alice"}})
	items := []domain.WorkItem{
		item("t1", "m-a", jun(1), jun(5)),
		item("t2", "Alice", jun(3), jun(7)),
	}

	conflicts := DetectConflicts(items, roster)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "t2", conflicts["t1"].With.ItemID)
	assert.Equal(t, "m-a", conflicts["t1"].Assignee)
	assert.Equal(t, "m-a", conflicts["t2"].Assignee)

	summary := Summarize(conflicts, roster)
	assert.Equal(t, map[string]int{"Alice": 2}, summary.ConflictsByDeveloper)
}

func TestHasConflict(t *testing.T) {
	conflicts := DetectConflicts([]domain.WorkItem{
		item("t1", "Alice", jun(1), jun(5)),
		item("t2", "Alice", jun(3), jun(7)),
		item("t3", "Alice", jun(15), jun(19)),
	}, Roster{})
	assert.True(t, HasConflict("t1", conflicts))
	assert.False(t, HasConflict("t3", conflicts))
	assert.False(t, HasConflict("missing", conflicts))
}

func TestSummarize_CountsItemsNotPairs(t *testing.T) {
	roster := NewRoster([]domain.TeamMember{
		{ID: "m-a", Name: "Alice"},
		{ID: "m-b", Name: "Bob"},
	})
	conflicts := DetectConflicts([]domain.WorkItem{
		item("a1", "m-a", jun(1), jun(5)),
		item("a2", "m-a", jun(2), jun(4)),
		item("a3", "m-a", jun(3), jun(3)), // three items, three pairs
		item("b1", "m-b", jun(1), jun(2)),
		item("b2", "m-b", jun(2), jun(2)),
		item("c1", "ghost", jun(1), jun(1)),
		item("c2", "ghost", jun(1), jun(1)),
	}, roster)

	summary := Summarize(conflicts, roster)
	assert.Equal(t, 7, summary.TotalConflicts)
	assert.Equal(t, []string{"Alice", "Bob", "ghost"}, summary.AffectedDevelopers)
	assert.Equal(t, map[string]int{"Alice": 3, "Bob": 2, "ghost": 2}, summary.ConflictsByDeveloper)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(map[string]TicketConflict{}, Roster{})
	assert.Equal(t, 0, summary.TotalConflicts)
	assert.Empty(t, summary.AffectedDevelopers)
	assert.Empty(t, summary.ConflictsByDeveloper)
}

// TestDetectConflicts_Invariants property-tests symmetry, absence of
// self-conflicts, exclusion of unassigned items and idempotence.
func TestDetectConflicts_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	assignees := []string{"Alice", "Bob", "Carol", "", "Unassigned"}

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(12) + 1
		items := make([]domain.WorkItem, n)
		for i := range items {
			start := jun(1).AddDate(0, 0, rng.Intn(30))
			end := start.AddDate(0, 0, rng.Intn(10)-1) // occasionally inverted
			items[i] = item(fmt.Sprintf("t%d", i), assignees[rng.Intn(len(assignees))], start, end)
		}

		conflicts := DetectConflicts(items, Roster{})
		byID := make(map[string]domain.WorkItem, n)
		for _, it := range items {
			byID[it.ID] = it
		}

		for id, c := range conflicts {
			assert.Equal(t, id, c.ItemID, "trial %d", trial)
			it := byID[id]
			assert.True(t, it.IsAssigned(), "trial %d: unassigned item %s in conflict map", trial, id)
			for _, ref := range c.All {
				assert.NotEqual(t, id, ref.ItemID, "trial %d: self conflict on %s", trial, id)
				assert.Positive(t, ref.OverlapDays, "trial %d", trial)

				other, ok := conflicts[ref.ItemID]
				require.True(t, ok, "trial %d: %s conflicts with %s but not vice versa", trial, id, ref.ItemID)
				found := false
				for _, back := range other.All {
					if back.ItemID == id {
						found = true
						break
					}
				}
				assert.True(t, found, "trial %d: conflict %s<->%s not symmetric", trial, id, ref.ItemID)
			}
		}

		assert.Equal(t, conflicts, DetectConflicts(items, Roster{}), "trial %d: not idempotent", trial)
	}
}
