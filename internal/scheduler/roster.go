package scheduler

import "github.com/alexanderramin/relplan/internal/domain"

// Roster resolves assignee references to team members. It is built once per
// computation and passed to the functions that need member data, so no
// function scans the team list per ticket. The zero value resolves nothing.
type Roster struct {
	byID   map[string]*domain.TeamMember
	byName map[string]*domain.TeamMember
	all    []*domain.TeamMember
}

// NewRoster indexes members by ID, and by name for plans that still reference
// people by name. IDs win when a name collides with another member's ID.
func NewRoster(members []domain.TeamMember) Roster {
	r := Roster{
		byID:   make(map[string]*domain.TeamMember, len(members)),
		byName: make(map[string]*domain.TeamMember, len(members)),
		all:    make([]*domain.TeamMember, 0, len(members)),
	}
	for i := range members {
		m := &members[i]
		r.all = append(r.all, m)
		if m.ID != "" {
			r.byID[m.ID] = m
		}
		if m.Name != "" {
			if _, taken := r.byName[m.Name]; !taken {
				r.byName[m.Name] = m
			}
		}
	}
	return r
}

// Resolve looks up the member an assignee reference points at.
func (r Roster) Resolve(ref string) (*domain.TeamMember, bool) {
	key := domain.AssigneeKey(ref)
	if key == "" {
		return nil, false
	}
	if m, ok := r.byID[key]; ok {
		return m, true
	}
	if m, ok := r.byName[key]; ok {
		return m, true
	}
	return nil, false
}

// Members returns the indexed members in team order.
func (r Roster) Members() []*domain.TeamMember {
	return r.all
}

// DisplayName returns the member's name, or the reference itself when it
// does not resolve.
func (r Roster) DisplayName(ref string) string {
	if m, ok := r.Resolve(ref); ok && m.Name != "" {
		return m.Name
	}
	return domain.AssigneeKey(ref)
}

// Key returns the canonical identity of an assignee reference: the member ID
// when the reference resolves, the normalized reference otherwise. An ID and
// a name pointing at the same member share one key.
func (r Roster) Key(ref string) string {
	m, ok := r.Resolve(ref)
	switch {
	case !ok:
		return domain.AssigneeKey(ref)
	case m.ID != "":
		return m.ID
	default:
		return m.Name
	}
}
