package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/alexanderramin/relplan/internal/repository"
	"github.com/alexanderramin/relplan/internal/scheduler"
)

// snapshot is one release with the org-wide team and holidays, loaded fresh
// for a single computation.
type snapshot struct {
	release  *domain.Release
	team     []domain.TeamMember
	holidays []domain.Holiday
	roster   scheduler.Roster
}

// resolveRelease finds a release by id, name, unique id prefix or unique
// case-insensitive name prefix. An empty ref selects the only stored release.
func resolveRelease(ctx context.Context, releases repository.ReleaseRepo, ref string) (*domain.Release, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		all, err := releases.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing releases: %w", err)
		}
		switch len(all) {
		case 0:
			return nil, app.NewError(app.ErrNoReleases, "no releases imported yet; run `relplan import <plan.json>`")
		case 1:
			return all[0], nil
		default:
			return nil, app.NewError(app.ErrAmbiguousRelease,
				fmt.Sprintf("%d releases stored (%s); pass --release", len(all), releaseNames(all)))
		}
	}

	rel, err := releases.GetByID(ctx, ref)
	if err == nil {
		return rel, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading release: %w", err)
	}

	rel, err = releases.GetByName(ctx, ref)
	if err == nil {
		return rel, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading release: %w", err)
	}

	matches, err := releases.FindByIDPrefix(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		if matches, err = releasesWithNamePrefix(ctx, releases, ref); err != nil {
			return nil, err
		}
	}
	switch len(matches) {
	case 0:
		return nil, app.NewError(app.ErrReleaseNotFound, fmt.Sprintf("no release matches %q", ref))
	case 1:
		return matches[0], nil
	default:
		return nil, app.NewError(app.ErrAmbiguousRelease,
			fmt.Sprintf("%q matches %d releases (%s)", ref, len(matches), releaseNames(matches)))
	}
}

func releasesWithNamePrefix(ctx context.Context, releases repository.ReleaseRepo, prefix string) ([]*domain.Release, error) {
	all, err := releases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	prefix = strings.ToLower(prefix)
	var matches []*domain.Release
	for _, r := range all {
		if strings.HasPrefix(strings.ToLower(r.Name), prefix) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

func releaseNames(releases []*domain.Release) string {
	names := make([]string, 0, len(releases))
	for _, r := range releases {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// loadRelease fills a release header with its features, items and sprints.
func loadRelease(ctx context.Context, repos Repos, rel *domain.Release) error {
	features, err := repos.Features.ListByRelease(ctx, rel.ID)
	if err != nil {
		return fmt.Errorf("loading features: %w", err)
	}
	items, err := repos.WorkItems.ListByRelease(ctx, rel.ID)
	if err != nil {
		return fmt.Errorf("loading work items: %w", err)
	}
	byFeature := make(map[string]int, len(features))
	for i := range features {
		byFeature[features[i].ID] = i
	}
	for _, it := range items {
		if i, ok := byFeature[it.FeatureID]; ok {
			features[i].WorkItems = append(features[i].WorkItems, it)
		}
	}
	rel.Features = features

	if rel.Sprints, err = repos.Sprints.ListByRelease(ctx, rel.ID); err != nil {
		return fmt.Errorf("loading sprints: %w", err)
	}
	return nil
}

func loadSnapshot(ctx context.Context, repos Repos, releaseRef string) (*snapshot, error) {
	rel, err := resolveRelease(ctx, repos.Releases, releaseRef)
	if err != nil {
		return nil, err
	}
	if err := loadRelease(ctx, repos, rel); err != nil {
		return nil, err
	}
	team, err := repos.Team.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	holidays, err := repos.Holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}
	return &snapshot{
		release:  rel,
		team:     team,
		holidays: holidays,
		roster:   scheduler.NewRoster(team),
	}, nil
}

// resolveMember finds a team member by id or name, ignoring case for names.
func resolveMember(team []domain.TeamMember, ref string) (*domain.TeamMember, error) {
	roster := scheduler.NewRoster(team)
	if m, ok := roster.Resolve(ref); ok {
		return m, nil
	}
	var found *domain.TeamMember
	for i := range team {
		if strings.EqualFold(team[i].Name, strings.TrimSpace(ref)) {
			if found != nil {
				return nil, app.NewError(app.ErrMemberNotFound, fmt.Sprintf("%q matches more than one member", ref))
			}
			found = &team[i]
		}
	}
	if found == nil {
		return nil, app.NewError(app.ErrMemberNotFound, fmt.Sprintf("no team member matches %q", ref))
	}
	return found, nil
}

func summarizeRelease(rel *domain.Release) app.ReleaseSummary {
	return app.ReleaseSummary{
		ID:           rel.ID,
		ShortID:      rel.DisplayID(),
		Name:         rel.Name,
		StartDate:    app.FormatDate(rel.StartDate),
		EndDate:      app.FormatDate(rel.EndDate),
		FeatureCount: len(rel.Features),
		SprintCount:  len(rel.Sprints),
		ItemCount:    len(rel.WorkItems()),
	}
}

// assigneeWarnings lists tickets whose assignee matches no team member.
func assigneeWarnings(items []domain.WorkItem, roster scheduler.Roster) []string {
	var warnings []string
	for _, it := range items {
		if !it.IsAssigned() {
			continue
		}
		if _, ok := roster.Resolve(it.AssignedTo); !ok {
			warnings = append(warnings,
				fmt.Sprintf("ticket %q is assigned to %q, who is not on the team", it.Title, it.AssignedTo))
		}
	}
	return warnings
}
