package scheduler

import (
	"time"

	"github.com/alexanderramin/relplan/internal/calendar"
	"github.com/alexanderramin/relplan/internal/domain"
)

// June 2026 starts on a Monday.
func jun(day int) time.Time {
	return calendar.Date(2026, time.June, day)
}

func ptr(f float64) *float64 {
	return &f
}

func item(id, assignee string, start, end time.Time) domain.WorkItem {
	return domain.WorkItem{
		ID:         id,
		Title:      "Ticket " + id,
		Status:     domain.WorkItemPlanned,
		StartDate:  start,
		EndDate:    end,
		AssignedTo: assignee,
	}
}

func withEffort(w domain.WorkItem, days float64) domain.WorkItem {
	w.EffortDays = ptr(days)
	return w
}

func releaseWith(sprints []domain.Sprint, items ...domain.WorkItem) *domain.Release {
	return &domain.Release{
		ID:        "rel-1",
		Name:      "Q3",
		StartDate: jun(1),
		EndDate:   calendar.Date(2026, time.August, 31),
		Features:  []domain.Feature{{ID: "f-1", Name: "Core", WorkItems: items}},
		Sprints:   sprints,
	}
}
