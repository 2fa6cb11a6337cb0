package domain

import (
	"strings"
	"time"
)

// Release is the aggregate root of a plan: its features carry the work items
// and its sprints time-box them. Sprints may leave gaps.
type Release struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Features  []Feature
	Sprints   []Sprint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Feature groups work items. It has no scheduling semantics of its own.
type Feature struct {
	ID         string
	ReleaseID  string
	Name       string
	OrderIndex int
	WorkItems  []WorkItem
}

// Sprint is an inclusive time box inside a release.
type Sprint struct {
	ID        string
	ReleaseID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// WorkItems flattens the release's features into one list, preserving
// feature order and item order within each feature.
func (r *Release) WorkItems() []WorkItem {
	var n int
	for _, f := range r.Features {
		n += len(f.WorkItems)
	}
	items := make([]WorkItem, 0, n)
	for _, f := range r.Features {
		items = append(items, f.WorkItems...)
	}
	return items
}

// HasWindow reports whether the release has a usable date span.
func (r *Release) HasWindow() bool {
	return !r.StartDate.IsZero() && !r.EndDate.IsZero() && !r.EndDate.Before(r.StartDate)
}

// DisplayID returns the best short identifier for display.
func (r *Release) DisplayID() string {
	if len(r.ID) >= 8 && strings.Count(r.ID, "-") == 4 {
		return r.ID[:8]
	}
	return r.ID
}
