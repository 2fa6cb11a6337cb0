package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/domain"
)

type releaseService struct {
	repos    Repos
	observer UseCaseObserver
}

func NewReleaseService(repos Repos, observers ...UseCaseObserver) ReleaseService {
	return &releaseService{repos: repos, observer: useCaseObserverOrNoop(observers)}
}

func (s *releaseService) List(ctx context.Context) ([]app.ReleaseSummary, error) {
	releases, err := s.repos.Releases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	summaries := make([]app.ReleaseSummary, 0, len(releases))
	for _, rel := range releases {
		if err := loadRelease(ctx, s.repos, rel); err != nil {
			return nil, err
		}
		summaries = append(summaries, summarizeRelease(rel))
	}
	return summaries, nil
}

// Get returns the full release aggregate.
func (s *releaseService) Get(ctx context.Context, ref string) (*domain.Release, error) {
	rel, err := resolveRelease(ctx, s.repos.Releases, ref)
	if err != nil {
		return nil, err
	}
	if err := loadRelease(ctx, s.repos, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *releaseService) Delete(ctx context.Context, ref string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"release": ref}
	defer observe(ctx, s.observer, "delete-release", startedAt, fields, &err)

	if ref == "" {
		return app.NewError(app.ErrInvalidInput, "a release must be named explicitly to delete it")
	}
	rel, err := resolveRelease(ctx, s.repos.Releases, ref)
	if err != nil {
		return err
	}
	if err := s.repos.Releases.Delete(ctx, rel.ID); err != nil {
		return fmt.Errorf("deleting release: %w", err)
	}
	return nil
}
