package testutil

import (
	"time"

	"github.com/alexanderramin/relplan/internal/calendar"
	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/google/uuid"
)

// Jun returns a day in June 2026, a month that starts on a Monday.
func Jun(day int) time.Time {
	return calendar.Date(2026, time.June, day)
}

// Release options
type ReleaseOption func(*domain.Release)

func WithWindow(start, end time.Time) ReleaseOption {
	return func(r *domain.Release) {
		r.StartDate = start
		r.EndDate = end
	}
}

func WithoutWindow() ReleaseOption {
	return func(r *domain.Release) {
		r.StartDate = time.Time{}
		r.EndDate = time.Time{}
	}
}

// NewTestRelease returns a release spanning June 2026 with no features or sprints.
func NewTestRelease(name string, opts ...ReleaseOption) *domain.Release {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.Release{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: Jun(1),
		EndDate:   Jun(30),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestFeature(releaseID, name string, orderIndex int) *domain.Feature {
	return &domain.Feature{
		ID:         uuid.New().String(),
		ReleaseID:  releaseID,
		Name:       name,
		OrderIndex: orderIndex,
	}
}

func NewTestSprint(releaseID, name string, start, end time.Time) *domain.Sprint {
	return &domain.Sprint{
		ID:        uuid.New().String(),
		ReleaseID: releaseID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}
}

// WorkItem options
type WorkItemOption func(*domain.WorkItem)

func WithDates(start, end time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.StartDate = start
		w.EndDate = end
	}
}

func WithAssignee(ref string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.AssignedTo = ref
	}
}

func WithEffortDays(d float64) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.EffortDays = &d
	}
}

func WithStoryPoints(p float64) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.StoryPoints = &p
	}
}

func WithRequiredRole(role string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.RequiredRole = role
	}
}

func WithDependsOn(ids ...string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.DependsOn = ids
	}
}

func WithWorkItemStatus(s domain.WorkItemStatus) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Status = s
	}
}

// NewTestWorkItem returns an unassigned item on Jun 1 to Jun 2 2026.
func NewTestWorkItem(featureID, title string, opts ...WorkItemOption) *domain.WorkItem {
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.WorkItem{
		ID:        uuid.New().String(),
		FeatureID: featureID,
		Title:     title,
		Status:    domain.WorkItemPlanned,
		StartDate: Jun(1),
		EndDate:   Jun(2),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// TeamMember options
type MemberOption func(*domain.TeamMember)

func WithRole(role string) MemberOption {
	return func(m *domain.TeamMember) {
		m.Role = role
	}
}

func WithVelocity(v float64) MemberOption {
	return func(m *domain.TeamMember) {
		m.VelocityMultiplier = v
	}
}

func WithPTO(start, end time.Time) MemberOption {
	return func(m *domain.TeamMember) {
		m.PTO = append(m.PTO, domain.PTOEntry{
			ID:        uuid.New().String(),
			MemberID:  m.ID,
			StartDate: start,
			EndDate:   end,
		})
	}
}

func NewTestMember(name string, opts ...MemberOption) *domain.TeamMember {
	m := &domain.TeamMember{
		ID:                 uuid.New().String(),
		Name:               name,
		Role:               "developer",
		Experience:         domain.ExperienceMid,
		VelocityMultiplier: 1.0,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func NewTestHoliday(name string, start, end time.Time) *domain.Holiday {
	return &domain.Holiday{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}
}
