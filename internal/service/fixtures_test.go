package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/importer"
	"github.com/alexanderramin/relplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func newTestRepos(t *testing.T) Repos {
	t.Helper()
	return NewSQLiteRepos(testutil.NewTestDB(t))
}

// scenarioSchema is a two-sprint June 2026 release with two developers.
// Alice's tickets t1 and t2 overlap on Jun 3 to Jun 5.
func scenarioSchema() *importer.PlanSchema {
	return &importer.PlanSchema{
		Release: importer.ReleaseImport{
			ID:        "rel-june",
			Name:      "June Release",
			StartDate: strPtr("2026-06-01"),
			EndDate:   strPtr("2026-06-30"),
		},
		Sprints: []importer.SprintImport{
			{ID: "s1", Name: "Sprint 1", StartDate: "2026-06-01", EndDate: "2026-06-12"},
			{ID: "s2", Name: "Sprint 2", StartDate: "2026-06-15", EndDate: "2026-06-26"},
		},
		Team: []importer.MemberImport{
			{ID: "alice", Name: "Alice", Role: "backend", Experience: "senior",
				PTO: []importer.PTOImport{{ID: "pto-a", StartDate: "2026-06-10", EndDate: "2026-06-11", Reason: "trip"}}},
			{ID: "bob", Name: "Bob", Role: "frontend", Experience: "mid", Velocity: floatPtr(2)},
		},
		Holidays: []importer.HolidayImport{
			{ID: "h1", Name: "Company day", Date: "2026-06-05"},
		},
		Features: []importer.FeatureImport{
			{ID: "f1", Name: "Checkout", Tickets: []importer.TicketImport{
				{ID: "t1", Title: "API", StartDate: "2026-06-01", EndDate: "2026-06-05", EffortDays: floatPtr(5), AssignedTo: "alice", RequiredRole: "backend"},
				{ID: "t2", Title: "Schema", StartDate: "2026-06-03", EndDate: "2026-06-07", EffortDays: floatPtr(3), AssignedTo: "Alice"},
				{ID: "t3", Title: "UI", StartDate: "2026-06-03", EndDate: "2026-06-05", StoryPoints: floatPtr(5), AssignedTo: "bob", RequiredRole: "backend"},
			}},
			{ID: "f2", Name: "Reports", Tickets: []importer.TicketImport{
				{ID: "t4", Title: "Export", StartDate: "2026-06-15", EndDate: "2026-06-16", EffortDays: floatPtr(2), AssignedTo: "bob", DependsOn: []string{"t1"}},
			}},
		},
	}
}

// importScenario stores scenarioSchema and returns the repos it was written to.
func importScenario(t *testing.T) Repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := NewSQLiteRepos(database)
	svc := NewImportService(repos, testutil.NewTestUoW(database))
	_, err := svc.ImportPlanFromSchema(context.Background(), scenarioSchema(), app.ImportOptions{})
	require.NoError(t, err)
	return repos
}

func requireCode(t *testing.T, err error, code app.ErrorCode) {
	t.Helper()
	var ucErr *app.UseCaseError
	require.True(t, errors.As(err, &ucErr), "expected a UseCaseError, got %v", err)
	require.Equal(t, code, ucErr.Code)
}
