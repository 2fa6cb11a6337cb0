package app

import (
	"time"

	"github.com/alexanderramin/relplan/internal/domain"
)

// TicketListRequest filters a release's tickets. Assignee matches a member id
// or name; "unassigned" selects tickets nobody owns.
type TicketListRequest struct {
	ReleaseRef string
	Assignee   string
	Status     string
}

type TicketView struct {
	ID           string                `json:"id"`
	Feature      string                `json:"feature"`
	Title        string                `json:"title"`
	Status       domain.WorkItemStatus `json:"status"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	EffortDays   float64               `json:"effort_days"`
	AdjustedDays float64               `json:"adjusted_days"`
	Assignee     string                `json:"assignee"`
	AssigneeRef  string                `json:"assignee_ref"`
	RequiredRole string                `json:"required_role,omitempty"`
	DependsOn    []string              `json:"depends_on,omitempty"`
	Conflicting  bool                  `json:"conflicting"`
}

type TicketListResponse struct {
	Release ReleaseSummary `json:"release"`
	Tickets []TicketView   `json:"tickets"`
}

// TicketMoveRequest reschedules a ticket. Either give new dates, or a
// ShiftDays offset applied to both ends. A zero End keeps the ticket's length.
type TicketMoveRequest struct {
	TicketID  string
	Start     time.Time
	End       time.Time
	ShiftDays int
	Now       *time.Time
}

// TicketAssignRequest changes a ticket's owner. An empty Assignee unassigns.
type TicketAssignRequest struct {
	TicketID string
	Assignee string
	Now      *time.Time
}

// TicketChangeResponse reports a ticket after a mutation together with the
// conflicts it now takes part in.
type TicketChangeResponse struct {
	Ticket    TicketView        `json:"ticket"`
	Conflicts []ConflictPartner `json:"conflicts"`
}
