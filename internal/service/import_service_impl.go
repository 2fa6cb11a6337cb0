package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/importer"
	"github.com/alexanderramin/relplan/internal/repository"
)

type importService struct {
	repos    Repos
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService builds the plan import use case. The whole plan is
// written in one transaction.
func NewImportService(repos Repos, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{repos: repos, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string, opts app.ImportOptions) (*app.ImportResult, error) {
	schema, err := importer.LoadPlanSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading plan file: %w", err)
	}
	return s.ImportPlanFromSchema(ctx, schema, opts)
}

func (s *importService) ImportPlanFromSchema(ctx context.Context, schema *importer.PlanSchema, opts app.ImportOptions) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"release": schema.Release.Name, "replace": opts.Replace}
	defer observe(ctx, s.observer, "import-plan", startedAt, fields, &err)

	if errs := importer.ValidatePlanSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	known, err := s.repos.Team.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	plan, err := importer.Convert(schema, known)
	if err != nil {
		return nil, fmt.Errorf("converting plan: %w", err)
	}

	result = &app.ImportResult{
		Release:      plan.Release,
		FeatureCount: len(plan.Release.Features),
		SprintCount:  len(plan.Release.Sprints),
		MemberCount:  len(plan.Team),
		HolidayCount: len(plan.Holidays),
		Warnings:     plan.Warnings,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepos := NewSQLiteRepos(tx)

		existing, err := txRepos.Releases.GetByName(ctx, plan.Release.Name)
		switch {
		case err == nil && !opts.Replace:
			return app.NewError(app.ErrReleaseExists,
				fmt.Sprintf("release %q already exists; re-run with --replace to overwrite it", existing.Name))
		case err == nil:
			if err := txRepos.Releases.Delete(ctx, existing.ID); err != nil {
				return fmt.Errorf("replacing release: %w", err)
			}
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("checking for existing release: %w", err)
		}

		for i := range plan.Team {
			m := &plan.Team[i]
			if err := txRepos.Team.Upsert(ctx, m); err != nil {
				return fmt.Errorf("saving member %q: %w", m.Name, err)
			}
			for j := range m.PTO {
				if err := txRepos.Team.AddPTO(ctx, &m.PTO[j]); err != nil {
					return fmt.Errorf("saving pto for %q: %w", m.Name, err)
				}
				result.PTOCount++
			}
		}
		for i := range plan.Holidays {
			if err := txRepos.Holidays.Upsert(ctx, &plan.Holidays[i]); err != nil {
				return fmt.Errorf("saving holiday %q: %w", plan.Holidays[i].Name, err)
			}
		}

		rel := plan.Release
		if err := txRepos.Releases.Create(ctx, rel); err != nil {
			return fmt.Errorf("creating release: %w", err)
		}
		for i := range rel.Sprints {
			if err := txRepos.Sprints.Create(ctx, &rel.Sprints[i], i); err != nil {
				return fmt.Errorf("creating sprint %q: %w", rel.Sprints[i].Name, err)
			}
		}
		for i := range rel.Features {
			f := &rel.Features[i]
			if err := txRepos.Features.Create(ctx, f); err != nil {
				return fmt.Errorf("creating feature %q: %w", f.Name, err)
			}
			for j := range f.WorkItems {
				if err := txRepos.WorkItems.Create(ctx, &f.WorkItems[j], j); err != nil {
					return fmt.Errorf("creating ticket %q: %w", f.WorkItems[j].Title, err)
				}
				result.WorkItemCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["work_items"] = result.WorkItemCount
	fields["warnings"] = len(result.Warnings)
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("plan validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return app.NewError(app.ErrInvalidInput, msg)
}
