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
	"github.com/google/uuid"
)

type teamService struct {
	repos    Repos
	observer UseCaseObserver
}

func NewTeamService(repos Repos, observers ...UseCaseObserver) TeamService {
	return &teamService{repos: repos, observer: useCaseObserverOrNoop(observers)}
}

func (s *teamService) ListMembers(ctx context.Context) ([]app.MemberView, error) {
	team, err := s.repos.Team.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	views := make([]app.MemberView, 0, len(team))
	for _, m := range team {
		views = append(views, app.MemberView{
			ID:         m.ID,
			Name:       m.Name,
			Role:       m.Role,
			Experience: string(m.Experience),
			Velocity:   m.VelocityMultiplier,
			PTODays:    ptoWorkingDays(m.PTO),
		})
	}
	return views, nil
}

// ptoWorkingDays counts distinct weekdays covered by the entries.
func ptoWorkingDays(entries []domain.PTOEntry) int {
	if len(entries) == 0 {
		return 0
	}
	ranges := make([]calendar.Range, 0, len(entries))
	span := calendar.NewRange(entries[0].StartDate, entries[0].EndDate)
	for _, p := range entries {
		r := calendar.NewRange(p.StartDate, p.EndDate)
		ranges = append(ranges, r)
		if r.Start.Before(span.Start) {
			span.Start = r.Start
		}
		if r.End.After(span.End) {
			span.End = r.End
		}
	}
	return len(calendar.WorkingDaySet(span, ranges...))
}

func (s *teamService) AddPTO(ctx context.Context, req app.PTOAddRequest) (view *app.PTOView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"member": req.Member}
	defer observe(ctx, s.observer, "add-pto", startedAt, fields, &err)

	if req.Start.IsZero() || req.End.IsZero() {
		return nil, app.NewError(app.ErrInvalidInput, "pto needs a start and an end date")
	}
	start, end := calendar.Day(req.Start), calendar.Day(req.End)
	if end.Before(start) {
		return nil, invalidRange(start, end)
	}

	team, err := s.repos.Team.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	member, err := resolveMember(team, req.Member)
	if err != nil {
		return nil, err
	}

	entry := domain.PTOEntry{
		ID:        uuid.New().String(),
		MemberID:  member.ID,
		Reason:    strings.TrimSpace(req.Reason),
		StartDate: start,
		EndDate:   end,
	}
	if err := s.repos.Team.AddPTO(ctx, &entry); err != nil {
		return nil, err
	}
	fields["pto_id"] = entry.ID

	v := ptoView(entry, member.Name)
	return &v, nil
}

// ListPTO lists one member's PTO, or everyone's when member is "".
func (s *teamService) ListPTO(ctx context.Context, member string) ([]app.PTOView, error) {
	team, err := s.repos.Team.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}

	var selected []domain.TeamMember
	if strings.TrimSpace(member) == "" {
		selected = team
	} else {
		m, err := resolveMember(team, member)
		if err != nil {
			return nil, err
		}
		selected = []domain.TeamMember{*m}
	}

	views := []app.PTOView{}
	for _, m := range selected {
		for _, p := range m.PTO {
			views = append(views, ptoView(p, m.Name))
		}
	}
	return views, nil
}

func (s *teamService) RemovePTO(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"pto_id": id}
	defer observe(ctx, s.observer, "remove-pto", startedAt, fields, &err)

	err = s.repos.Team.DeletePTO(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrNotFound) {
		return app.NewError(app.ErrInvalidInput, fmt.Sprintf("no pto entry with id %q", id))
	}
	return err
}

func ptoView(p domain.PTOEntry, memberName string) app.PTOView {
	return app.PTOView{
		ID:          p.ID,
		MemberID:    p.MemberID,
		MemberName:  memberName,
		StartDate:   app.FormatDate(p.StartDate),
		EndDate:     app.FormatDate(p.EndDate),
		WorkingDays: calendar.WorkingDays(p.StartDate, p.EndDate),
		Reason:      p.Reason,
	}
}
