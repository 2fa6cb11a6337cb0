package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/calendar"
	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/alexanderramin/relplan/internal/repository"
	"github.com/alexanderramin/relplan/internal/scheduler"
)

type ticketService struct {
	repos    Repos
	observer UseCaseObserver
}

// NewTicketService builds the ticket use cases. Moves and reassignments are
// explicit caller actions; the scheduler itself never changes a ticket.
func NewTicketService(repos Repos, observers ...UseCaseObserver) TicketService {
	return &ticketService{repos: repos, observer: useCaseObserverOrNoop(observers)}
}

func (s *ticketService) List(ctx context.Context, req app.TicketListRequest) (*app.TicketListResponse, error) {
	snap, err := loadSnapshot(ctx, s.repos, req.ReleaseRef)
	if err != nil {
		return nil, err
	}

	var status domain.WorkItemStatus
	if req.Status != "" {
		st, ok := domain.ParseWorkItemStatus(req.Status)
		if !ok {
			return nil, app.NewError(app.ErrInvalidInput, fmt.Sprintf("unknown status %q", req.Status))
		}
		status = st
	}

	matchAssignee, err := assigneeFilter(snap, req.Assignee)
	if err != nil {
		return nil, err
	}

	conflicts := scheduler.DetectConflicts(snap.release.WorkItems(), snap.roster)
	resp := &app.TicketListResponse{Release: summarizeRelease(snap.release), Tickets: []app.TicketView{}}
	for _, f := range snap.release.Features {
		for _, it := range f.WorkItems {
			if status != "" && it.Status != status {
				continue
			}
			if !matchAssignee(it) {
				continue
			}
			resp.Tickets = append(resp.Tickets, ticketView(it, f.Name, snap.roster, conflicts))
		}
	}
	return resp, nil
}

func assigneeFilter(snap *snapshot, ref string) (func(domain.WorkItem) bool, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return func(domain.WorkItem) bool { return true }, nil
	case strings.EqualFold(ref, domain.UnassignedSentinel):
		return func(it domain.WorkItem) bool { return !it.IsAssigned() }, nil
	}
	m, err := resolveMember(snap.team, ref)
	if err != nil {
		return nil, err
	}
	return func(it domain.WorkItem) bool {
		got, ok := snap.roster.Resolve(it.AssignedTo)
		return ok && got.ID == m.ID
	}, nil
}

func (s *ticketService) Move(ctx context.Context, req app.TicketMoveRequest) (resp *app.TicketChangeResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ticket": req.TicketID, "shift_days": req.ShiftDays}
	defer observe(ctx, s.observer, "move-ticket", startedAt, fields, &err)

	item, err := s.getItem(ctx, req.TicketID)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	switch {
	case req.ShiftDays != 0:
		start = item.StartDate.AddDate(0, 0, req.ShiftDays)
		end = item.EndDate.AddDate(0, 0, req.ShiftDays)
	case !req.Start.IsZero():
		start = calendar.Day(req.Start)
		end = calendar.Day(req.End)
		if req.End.IsZero() {
			end = start.AddDate(0, 0, calendar.DaysBetween(item.StartDate, item.EndDate))
		}
	default:
		return nil, app.NewError(app.ErrInvalidInput, "give a new start date or a day shift")
	}
	if end.Before(start) {
		return nil, invalidRange(start, end)
	}
	fields["start"] = app.FormatDate(start)
	fields["end"] = app.FormatDate(end)

	item.Reschedule(start, end, nowOr(req.Now))
	if err := s.repos.WorkItems.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("saving ticket: %w", err)
	}
	return s.changeResponse(ctx, item)
}

func (s *ticketService) Assign(ctx context.Context, req app.TicketAssignRequest) (resp *app.TicketChangeResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ticket": req.TicketID, "assignee": req.Assignee}
	defer observe(ctx, s.observer, "assign-ticket", startedAt, fields, &err)

	item, err := s.getItem(ctx, req.TicketID)
	if err != nil {
		return nil, err
	}

	assignee := ""
	if domain.AssigneeKey(req.Assignee) != "" {
		team, err := s.repos.Team.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading team: %w", err)
		}
		m, err := resolveMember(team, req.Assignee)
		if err != nil {
			return nil, err
		}
		assignee = m.ID
	}

	item.AssignedTo = assignee
	item.UpdatedAt = nowOr(req.Now)
	if err := s.repos.WorkItems.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("saving ticket: %w", err)
	}
	return s.changeResponse(ctx, item)
}

func (s *ticketService) getItem(ctx context.Context, id string) (*domain.WorkItem, error) {
	item, err := s.repos.WorkItems.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, app.NewError(app.ErrTicketNotFound, fmt.Sprintf("no ticket with id %q", id))
	}
	if err != nil {
		return nil, fmt.Errorf("loading ticket: %w", err)
	}
	return item, nil
}

// changeResponse re-runs conflict detection on the ticket's release so the
// caller sees the effect of the change at once.
func (s *ticketService) changeResponse(ctx context.Context, item *domain.WorkItem) (*app.TicketChangeResponse, error) {
	feature, err := s.repos.Features.GetByID(ctx, item.FeatureID)
	if err != nil {
		return nil, fmt.Errorf("loading feature: %w", err)
	}
	snap, err := loadSnapshot(ctx, s.repos, feature.ReleaseID)
	if err != nil {
		return nil, err
	}
	conflicts := scheduler.DetectConflicts(snap.release.WorkItems(), snap.roster)

	resp := &app.TicketChangeResponse{
		Ticket:    ticketView(*item, feature.Name, snap.roster, conflicts),
		Conflicts: []app.ConflictPartner{},
	}
	if c, ok := conflicts[item.ID]; ok {
		for _, ref := range c.All {
			resp.Conflicts = append(resp.Conflicts, partnerView(ref))
		}
	}
	return resp, nil
}

func ticketView(it domain.WorkItem, feature string, roster scheduler.Roster, conflicts map[string]scheduler.TicketConflict) app.TicketView {
	member, _ := roster.Resolve(it.AssignedTo)
	return app.TicketView{
		ID:           it.ID,
		Feature:      feature,
		Title:        it.Title,
		Status:       it.Status,
		StartDate:    app.FormatDate(it.StartDate),
		EndDate:      app.FormatDate(it.EndDate),
		EffortDays:   scheduler.ResolveEffortDays(it),
		AdjustedDays: scheduler.AdjustedDuration(it, member),
		Assignee:     roster.DisplayName(it.AssignedTo),
		AssigneeRef:  roster.Key(it.AssignedTo),
		RequiredRole: it.RequiredRole,
		DependsOn:    it.DependsOn,
		Conflicting:  scheduler.HasConflict(it.ID, conflicts),
	}
}
