package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/alexanderramin/relplan/internal/scheduler"
)

type analysisService struct {
	repos    Repos
	observer UseCaseObserver
}

// NewAnalysisService builds the report use cases. Every report loads a fresh
// snapshot and runs the scheduler on it; nothing is cached between calls.
func NewAnalysisService(repos Repos, observers ...UseCaseObserver) AnalysisService {
	return &analysisService{repos: repos, observer: useCaseObserverOrNoop(observers)}
}

func (s *analysisService) Conflicts(ctx context.Context, req app.AnalysisRequest) (resp *app.ConflictsResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"release": req.ReleaseRef}
	defer observe(ctx, s.observer, "conflicts", startedAt, fields, &err)

	snap, err := loadSnapshot(ctx, s.repos, req.ReleaseRef)
	if err != nil {
		return nil, err
	}
	items := snap.release.WorkItems()
	conflicts := scheduler.DetectConflicts(items, snap.roster)
	summary := scheduler.Summarize(conflicts, snap.roster)
	fields["conflicting_items"] = summary.TotalConflicts

	return &app.ConflictsResponse{
		GeneratedAt: nowOr(req.Now),
		Release:     summarizeRelease(snap.release),
		Summary: app.ConflictSummaryView{
			TotalConflicts:       summary.TotalConflicts,
			AffectedDevelopers:   summary.AffectedDevelopers,
			ConflictsByDeveloper: summary.ConflictsByDeveloper,
		},
		Conflicts: conflictViews(items, conflicts, snap.roster),
		Warnings:  assigneeWarnings(items, snap.roster),
	}, nil
}

func (s *analysisService) Capacity(ctx context.Context, req app.AnalysisRequest) (resp *app.CapacityResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"release": req.ReleaseRef}
	defer observe(ctx, s.observer, "capacity", startedAt, fields, &err)

	snap, err := loadSnapshot(ctx, s.repos, req.ReleaseRef)
	if err != nil {
		return nil, err
	}
	caps := scheduler.ComputeSprintCapacities(snap.release, snap.holidays, snap.roster)
	views := capacityViews(snap.release.Sprints, caps, snap.roster)
	fields["sprints"] = len(views)

	resp = &app.CapacityResponse{
		GeneratedAt: nowOr(req.Now),
		Release:     summarizeRelease(snap.release),
		Sprints:     views,
		Warnings:    assigneeWarnings(snap.release.WorkItems(), snap.roster),
	}
	for _, it := range scheduler.Unsprinted(snap.release) {
		resp.Unscheduled = append(resp.Unscheduled, app.UnscheduledItem{
			ItemID:    it.ID,
			Title:     it.Title,
			StartDate: app.FormatDate(it.StartDate),
		})
	}
	if len(snap.release.Sprints) == 0 {
		resp.Warnings = append(resp.Warnings, "release has no sprints; capacity cannot be computed")
	}
	return resp, nil
}

func (s *analysisService) Health(ctx context.Context, req app.AnalysisRequest) (resp *app.HealthResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"release": req.ReleaseRef}
	defer observe(ctx, s.observer, "health", startedAt, fields, &err)

	snap, err := loadSnapshot(ctx, s.repos, req.ReleaseRef)
	if err != nil {
		return nil, err
	}
	items := snap.release.WorkItems()
	caps := scheduler.ComputeSprintCapacities(snap.release, snap.holidays, snap.roster)
	conflicts := scheduler.DetectConflicts(items, snap.roster)
	violations := scheduler.CheckDependencies(items)
	result := scheduler.ComputeConfidence(scheduler.ConfidenceInput{
		Capacities: caps,
		Conflicts:  scheduler.Summarize(conflicts, snap.roster),
		Violations: violations,
	})
	fields["level"] = string(result.Level)
	fields["score"] = result.Score

	overNames := make([]string, 0, len(result.OverSprintIDs))
	for _, id := range result.OverSprintIDs {
		overNames = append(overNames, caps[id].SprintName)
	}

	resp = &app.HealthResponse{
		GeneratedAt: nowOr(req.Now),
		Release:     summarizeRelease(snap.release),
		Confidence: app.ConfidenceView{
			Level:              result.Level,
			Score:              result.Score,
			Feasible:           result.Feasible,
			SprintCount:        result.SprintCount,
			OverSprints:        overNames,
			MeanUtilizationPct: result.MeanUtilizationPct,
			UtilizationStdDev:  result.UtilizationStdDev,
			ConflictingItems:   result.ConflictingItems,
			ViolationCount:     result.ViolationCount,
		},
		Violations:     violationViews(violations),
		RoleMismatches: roleMismatches(items, snap.roster),
		Warnings:       assigneeWarnings(items, snap.roster),
	}
	return resp, nil
}

// conflictViews orders conflicts by developer, then start date, then title.
func conflictViews(items []domain.WorkItem, conflicts map[string]scheduler.TicketConflict, roster scheduler.Roster) []app.ConflictView {
	byID := make(map[string]domain.WorkItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	views := make([]app.ConflictView, 0, len(conflicts))
	for id, c := range conflicts {
		it := byID[id]
		v := app.ConflictView{
			ItemID:      id,
			Title:       it.Title,
			Assignee:    roster.DisplayName(c.Assignee),
			AssigneeRef: c.Assignee,
			StartDate:   app.FormatDate(it.StartDate),
			EndDate:     app.FormatDate(it.EndDate),
			With:        partnerView(c.With),
		}
		for _, ref := range c.All {
			v.Others = append(v.Others, partnerView(ref))
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.Assignee != b.Assignee {
			return a.Assignee < b.Assignee
		}
		if a.StartDate != b.StartDate {
			return a.StartDate < b.StartDate
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ItemID < b.ItemID
	})
	return views
}

func partnerView(ref scheduler.ConflictRef) app.ConflictPartner {
	return app.ConflictPartner{
		ItemID:       ref.ItemID,
		Title:        ref.Title,
		StartDate:    app.FormatDate(ref.StartDate),
		EndDate:      app.FormatDate(ref.EndDate),
		OverlapDays:  ref.OverlapDays,
		OverlapStart: app.FormatDate(ref.OverlapStart),
		OverlapEnd:   app.FormatDate(ref.OverlapEnd),
	}
}

// capacityViews lists sprints in release order.
func capacityViews(sprints []domain.Sprint, caps map[string]scheduler.SprintCapacity, roster scheduler.Roster) []app.SprintCapacityView {
	views := make([]app.SprintCapacityView, 0, len(sprints))
	for _, sp := range sprints {
		c, ok := caps[sp.ID]
		if !ok {
			continue
		}
		members := make([]string, 0, len(c.Members))
		for _, ref := range c.Members {
			members = append(members, roster.DisplayName(ref))
		}
		sort.Strings(members)
		views = append(views, app.SprintCapacityView{
			SprintID:           c.SprintID,
			Name:               c.SprintName,
			StartDate:          app.FormatDate(c.StartDate),
			EndDate:            app.FormatDate(c.EndDate),
			WorkingDays:        c.WorkingDays,
			TeamSize:           c.TeamSize,
			Members:            members,
			HolidayDays:        c.HolidayDays,
			PTODays:            c.PTODays,
			TotalTeamDays:      c.TotalTeamDays,
			PlannedDays:        c.PlannedDays,
			PlannedStoryPoints: c.PlannedStoryPoints,
			ItemCount:          c.ItemCount,
			UtilizationPct:     c.UtilizationPercent,
			OverCapacity:       c.OverCapacity,
			Status:             c.Status(),
		})
	}
	return views
}

func violationViews(violations []scheduler.DependencyViolation) []app.DependencyViolationView {
	views := make([]app.DependencyViolationView, 0, len(violations))
	for _, v := range violations {
		views = append(views, app.DependencyViolationView{
			Code:         string(v.Code),
			ItemID:       v.ItemID,
			ItemTitle:    v.ItemTitle,
			ItemStart:    app.FormatDate(v.ItemStart),
			BlockerID:    v.BlockerID,
			BlockerTitle: v.BlockerTitle,
			BlockerEnd:   app.FormatDate(v.BlockerEnd),
		})
	}
	return views
}

// roleMismatches lists tickets whose required role differs from the role of
// the member they are assigned to.
func roleMismatches(items []domain.WorkItem, roster scheduler.Roster) []app.RoleMismatchView {
	views := []app.RoleMismatchView{}
	for _, it := range items {
		if it.RequiredRole == "" {
			continue
		}
		m, ok := roster.Resolve(it.AssignedTo)
		if !ok || m.Role == "" || strings.EqualFold(m.Role, it.RequiredRole) {
			continue
		}
		views = append(views, app.RoleMismatchView{
			ItemID:       it.ID,
			Title:        it.Title,
			RequiredRole: it.RequiredRole,
			Assignee:     m.Name,
			AssigneeRole: m.Role,
		})
	}
	return views
}

func nowOr(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return time.Now().UTC()
}

func invalidRange(start, end time.Time) error {
	return app.NewError(app.ErrInvalidRange,
		fmt.Sprintf("end %s is before start %s", app.FormatDate(end), app.FormatDate(start)))
}
