package scheduler

import (
	"testing"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDependencies_StartsBeforeBlockerEnds(t *testing.T) {
	api := item("api", "m-a", jun(1), jun(5))
	ui := item("ui", "m-b", jun(5), jun(9))
	ui.DependsOn = []string{"api"}

	violations := CheckDependencies([]domain.WorkItem{api, ui})
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, ViolationStartsBeforeBlockerEnds, v.Code)
	assert.Equal(t, "ui", v.ItemID)
	assert.Equal(t, "api", v.BlockerID)
	assert.Equal(t, "Ticket api", v.BlockerTitle)
	assert.Equal(t, jun(5), v.BlockerEnd)
	assert.Equal(t, jun(5), v.ItemStart)
}

func TestCheckDependencies_StartingAfterBlockerIsFine(t *testing.T) {
	api := item("api", "m-a", jun(1), jun(5))
	ui := item("ui", "m-b", jun(8), jun(9))
	ui.DependsOn = []string{"api"}
	assert.Empty(t, CheckDependencies([]domain.WorkItem{ui, api}))
}

func TestCheckDependencies_MissingBlockerAndSelfReference(t *testing.T) {
	ui := item("ui", "m-b", jun(8), jun(9))
	ui.DependsOn = []string{"ui", "", "ghost"}

	violations := CheckDependencies([]domain.WorkItem{ui})
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationMissingBlocker, violations[0].Code)
	assert.Equal(t, "ghost", violations[0].BlockerID)
	assert.True(t, violations[0].BlockerEnd.IsZero())
}

func TestCheckDependencies_DoesNotMoveItems(t *testing.T) {
	api := item("api", "m-a", jun(1), jun(5))
	ui := item("ui", "m-b", jun(2), jun(3))
	ui.DependsOn = []string{"api"}
	items := []domain.WorkItem{api, ui}

	_ = CheckDependencies(items)
	assert.Equal(t, jun(2), items[1].StartDate)
	assert.Equal(t, jun(3), items[1].EndDate)
}
