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

type holidayService struct {
	repos    Repos
	observer UseCaseObserver
}

func NewHolidayService(repos Repos, observers ...UseCaseObserver) HolidayService {
	return &holidayService{repos: repos, observer: useCaseObserverOrNoop(observers)}
}

// Add records a company closure. A zero End makes it a single day.
func (s *holidayService) Add(ctx context.Context, req app.HolidayAddRequest) (view *app.HolidayView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": req.Name}
	defer observe(ctx, s.observer, "add-holiday", startedAt, fields, &err)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, app.NewError(app.ErrInvalidInput, "holiday name is required")
	}
	if req.Start.IsZero() {
		return nil, app.NewError(app.ErrInvalidInput, "holiday date is required")
	}
	start := calendar.Day(req.Start)
	end := start
	if !req.End.IsZero() {
		end = calendar.Day(req.End)
	}
	if end.Before(start) {
		return nil, invalidRange(start, end)
	}

	h := domain.Holiday{ID: uuid.New().String(), Name: name, StartDate: start, EndDate: end}
	if err := s.repos.Holidays.Upsert(ctx, &h); err != nil {
		return nil, err
	}
	v := holidayView(h)
	return &v, nil
}

func (s *holidayService) List(ctx context.Context) ([]app.HolidayView, error) {
	holidays, err := s.repos.Holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}
	views := make([]app.HolidayView, 0, len(holidays))
	for _, h := range holidays {
		views = append(views, holidayView(h))
	}
	return views, nil
}

func (s *holidayService) Remove(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"holiday_id": id}
	defer observe(ctx, s.observer, "remove-holiday", startedAt, fields, &err)

	err = s.repos.Holidays.Delete(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrNotFound) {
		return app.NewError(app.ErrInvalidInput, fmt.Sprintf("no holiday with id %q", id))
	}
	return err
}

func holidayView(h domain.Holiday) app.HolidayView {
	return app.HolidayView{
		ID:          h.ID,
		Name:        h.Name,
		StartDate:   app.FormatDate(h.StartDate),
		EndDate:     app.FormatDate(h.EndDate),
		WorkingDays: calendar.WorkingDays(h.StartDate, h.EndDate),
	}
}
