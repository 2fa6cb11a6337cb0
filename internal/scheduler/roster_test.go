package scheduler

import (
	"testing"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_ResolvesByIDThenName(t *testing.T) {
	r := NewRoster([]domain.TeamMember{
		{ID: "m-1", Name: "Alice", VelocityMultiplier: 1.2},
		{ID: "m-2", Name: "Bob"},
	})

	m, ok := r.Resolve("m-1")
	require.True(t, ok)
	assert.Equal(t, "Alice", m.Name)

	m, ok = r.Resolve(" Bob ")
	require.True(t, ok)
	assert.Equal(t, "m-2", m.ID)

	_, ok = r.Resolve("Carol")
	assert.False(t, ok)
	_, ok = r.Resolve("Unassigned")
	assert.False(t, ok)
}

func TestRoster_Key(t *testing.T) {
	r := NewRoster([]domain.TeamMember{
		{ID: "m-1", Name: "Alice"},
		{Name: "Legacy"},
	})
	assert.Equal(t, "m-1", r.Key("m-1"))
	assert.Equal(t, "m-1", r.Key(" Alice "))
	assert.Equal(t, "Legacy", r.Key("Legacy"))
	assert.Equal(t, "ghost", r.Key(" ghost "))
	assert.Equal(t, "", r.Key("unassigned"))
	assert.Equal(t, "m-1", Roster{}.Key("m-1"))
}

func TestRoster_MembersKeepTeamOrder(t *testing.T) {
	r := NewRoster([]domain.TeamMember{{ID: "m-2", Name: "Bob"}, {ID: "m-1", Name: "Alice"}})
	members := r.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "m-2", members[0].ID)
	assert.Equal(t, "m-1", members[1].ID)
	assert.Empty(t, Roster{}.Members())
}

func TestRoster_DisplayName(t *testing.T) {
	r := NewRoster([]domain.TeamMember{{ID: "m-1", Name: "Alice"}})
	assert.Equal(t, "Alice", r.DisplayName("m-1"))
	assert.Equal(t, "ghost", r.DisplayName("ghost"))
}

func TestRoster_ZeroValueResolvesNothing(t *testing.T) {
	var r Roster
	_, ok := r.Resolve("m-1")
	assert.False(t, ok)
	assert.Equal(t, "m-1", r.DisplayName("m-1"))
}
