package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/importer"
	"github.com/alexanderramin/relplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportPlan_PersistsEverything(t *testing.T) {
	database := testutil.NewTestDB(t)
	repos := NewSQLiteRepos(database)
	svc := NewImportService(repos, testutil.NewTestUoW(database))
	ctx := context.Background()

	result, err := svc.ImportPlanFromSchema(ctx, scenarioSchema(), app.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.FeatureCount)
	assert.Equal(t, 2, result.SprintCount)
	assert.Equal(t, 4, result.WorkItemCount)
	assert.Equal(t, 2, result.MemberCount)
	assert.Equal(t, 1, result.PTOCount)
	assert.Equal(t, 1, result.HolidayCount)
	assert.Empty(t, result.Warnings)

	rel, err := repos.Releases.GetByName(ctx, "June Release")
	require.NoError(t, err)
	assert.Equal(t, "rel-june", rel.ID)

	items, err := repos.WorkItems.ListByRelease(ctx, rel.ID)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "alice", items[1].AssignedTo, "name reference stored as member id")
	assert.Equal(t, []string{"t1"}, items[3].DependsOn)

	team, err := repos.Team.List(ctx)
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.Len(t, team[0].PTO, 1)
}

func TestImportPlan_FromFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(NewSQLiteRepos(database), testutil.NewTestUoW(database))

	path := filepath.Join(t.TempDir(), "plan.json")
	data := `{
		"release": {"name": "File Release"},
		"sprints": [{"name": "S1", "start_date": "2026-06-01", "end_date": "2026-06-12"}],
		"features": [{"name": "Core", "tickets": [
			{"title": "One", "start_date": "2026-06-01", "end_date": "2026-06-02", "assigned_to": "Ghost"}
		]}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	result, err := svc.ImportPlan(context.Background(), path, app.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.WorkItemCount)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Ghost")
}

func TestImportPlan_MissingFile(t *testing.T) {
	svc := NewImportService(newTestRepos(t), nil)
	_, err := svc.ImportPlan(context.Background(), filepath.Join(t.TempDir(), "nope.json"), app.ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading plan file")
}

func TestImportPlan_ValidationErrorsAreReportedTogether(t *testing.T) {
	database := testutil.NewTestDB(t)
	repos := NewSQLiteRepos(database)
	svc := NewImportService(repos, testutil.NewTestUoW(database))

	schema := scenarioSchema()
	schema.Release.Name = ""
	schema.Features[0].Tickets[0].EndDate = "2026-05-01"

	_, err := svc.ImportPlanFromSchema(context.Background(), schema, app.ImportOptions{})
	requireCode(t, err, app.ErrInvalidInput)
	assert.Contains(t, err.Error(), "2 errors")

	releases, err := repos.Releases.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, releases)
}

func TestImportPlan_DuplicateNameNeedsReplace(t *testing.T) {
	database := testutil.NewTestDB(t)
	repos := NewSQLiteRepos(database)
	svc := NewImportService(repos, testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := svc.ImportPlanFromSchema(ctx, scenarioSchema(), app.ImportOptions{})
	require.NoError(t, err)

	_, err = svc.ImportPlanFromSchema(ctx, scenarioSchema(), app.ImportOptions{})
	requireCode(t, err, app.ErrReleaseExists)

	schema := scenarioSchema()
	schema.Features = schema.Features[:1]
	result, err := svc.ImportPlanFromSchema(ctx, schema, app.ImportOptions{Replace: true})
	require.NoError(t, err)
	assert.Equal(t, 3, result.WorkItemCount)

	items, err := repos.WorkItems.ListByRelease(ctx, "rel-june")
	require.NoError(t, err)
	assert.Len(t, items, 3, "replaced release keeps only the new tickets")
}

func TestImportPlan_ResolvesAssigneesAgainstStoredTeam(t *testing.T) {
	database := testutil.NewTestDB(t)
	repos := NewSQLiteRepos(database)
	svc := NewImportService(repos, testutil.NewTestUoW(database))
	ctx := context.Background()

	carol := testutil.NewTestMember("Carol")
	require.NoError(t, repos.Team.Upsert(ctx, carol))

	schema := &importer.PlanSchema{
		Release: importer.ReleaseImport{Name: "Later"},
		Features: []importer.FeatureImport{{Name: "F", Tickets: []importer.TicketImport{
			{ID: "x1", Title: "Thing", StartDate: "2026-07-01", EndDate: "2026-07-02", AssignedTo: "carol"},
		}}},
	}
	result, err := svc.ImportPlanFromSchema(ctx, schema, app.ImportOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	item, err := repos.WorkItems.GetByID(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, carol.ID, item.AssignedTo)
}

func rollbackSchema() *importer.PlanSchema {
	return &importer.PlanSchema{
		Release: importer.ReleaseImport{Name: "Rollback Release"},
		Sprints: []importer.SprintImport{{Name: "S1", StartDate: "2026-06-01", EndDate: "2026-06-12"}},
		Team: []importer.MemberImport{
			{ID: "m1", Name: "Member One", Experience: "mid"},
			{ID: "m2", Name: "Member Two", Experience: "mid"},
		},
		Features: []importer.FeatureImport{{Name: "F", Tickets: []importer.TicketImport{
			{Title: "Task 1", StartDate: "2026-06-01", EndDate: "2026-06-02", AssignedTo: "m1"},
			{Title: "Task 2", StartDate: "2026-06-03", EndDate: "2026-06-04", AssignedTo: "m2"},
		}}},
	}
}

func TestImportPlan_RollbackOnWorkItemCreateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repos := NewSQLiteRepos(database)
	ctx := context.Background()

	// Exec calls: #1 member one, #2 member two, #3 release, #4 sprint,
	// #5 feature, #6 task 1, #7 task 2.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 7,
		Err:    fmt.Errorf("injected work item create failure"),
	}
	svc := NewImportService(repos, failUoW)

	_, err := svc.ImportPlanFromSchema(ctx, rollbackSchema(), app.ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected work item create failure")

	releases, err := repos.Releases.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, releases, "no release should exist after rollback")

	team, err := repos.Team.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, team, "team upserts roll back with the release")
}

func TestImportPlan_RollbackOnMemberFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repos := NewSQLiteRepos(database)
	ctx := context.Background()

	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected member failure"),
	}
	_, err := NewImportService(repos, failUoW).ImportPlanFromSchema(ctx, rollbackSchema(), app.ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Member Two")

	team, err := repos.Team.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, team)
}
