package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/alexanderramin/relplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planFixture struct {
	release  *domain.Release
	features []*domain.Feature
	items    *SQLiteWorkItemRepo
}

// seedPlan creates a release with two features, inserted out of order to
// prove ordering comes from order_index.
func seedPlan(t *testing.T) planFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	rel := testutil.NewTestRelease("Q3")
	require.NoError(t, NewSQLiteReleaseRepo(db).Create(ctx, rel))

	second := testutil.NewTestFeature(rel.ID, "Billing", 1)
	first := testutil.NewTestFeature(rel.ID, "Auth", 0)
	features := NewSQLiteFeatureRepo(db)
	require.NoError(t, features.Create(ctx, second))
	require.NoError(t, features.Create(ctx, first))

	return planFixture{release: rel, features: []*domain.Feature{first, second}, items: NewSQLiteWorkItemRepo(db)}
}

func TestWorkItemRepo_CreateAndGetByID(t *testing.T) {
	p := seedPlan(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem(p.features[0].ID, "Login",
		testutil.WithDates(testutil.Jun(2), testutil.Jun(4)),
		testutil.WithAssignee("m-1"),
		testutil.WithEffortDays(2.5),
		testutil.WithRequiredRole("backend"),
		testutil.WithDependsOn("x-2", "x-1"),
		testutil.WithWorkItemStatus(domain.WorkItemInProgress),
	)
	require.NoError(t, p.items.Create(ctx, w, 0))

	fetched, err := p.items.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Login", fetched.Title)
	assert.Equal(t, domain.WorkItemInProgress, fetched.Status)
	assert.Equal(t, testutil.Jun(2), fetched.StartDate)
	assert.Equal(t, testutil.Jun(4), fetched.EndDate)
	require.NotNil(t, fetched.EffortDays)
	assert.Equal(t, 2.5, *fetched.EffortDays)
	assert.Nil(t, fetched.StoryPoints)
	assert.Equal(t, "m-1", fetched.AssignedTo)
	assert.Equal(t, "backend", fetched.RequiredRole)
	assert.Equal(t, []string{"x-2", "x-1"}, fetched.DependsOn, "dependency order is preserved")
}

func TestWorkItemRepo_GetByID_NotFound(t *testing.T) {
	p := seedPlan(t)
	_, err := p.items.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkItemRepo_ListByRelease_FeatureThenItemOrder(t *testing.T) {
	p := seedPlan(t)
	ctx := context.Background()

	b1 := testutil.NewTestWorkItem(p.features[1].ID, "B1")
	a2 := testutil.NewTestWorkItem(p.features[0].ID, "A2", testutil.WithDependsOn("a1"))
	a1 := testutil.NewTestWorkItem(p.features[0].ID, "A1")
	require.NoError(t, p.items.Create(ctx, b1, 0))
	require.NoError(t, p.items.Create(ctx, a2, 1))
	require.NoError(t, p.items.Create(ctx, a1, 0))

	items, err := p.items.ListByRelease(ctx, p.release.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "A1", items[0].Title)
	assert.Equal(t, "A2", items[1].Title)
	assert.Equal(t, "B1", items[2].Title)
	assert.Equal(t, []string{"a1"}, items[1].DependsOn)
	assert.Empty(t, items[0].DependsOn)
}

func TestWorkItemRepo_UpdateReplacesDependencies(t *testing.T) {
	p := seedPlan(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem(p.features[0].ID, "Login", testutil.WithDependsOn("old"))
	require.NoError(t, p.items.Create(ctx, w, 0))

	w.Reschedule(testutil.Jun(8), testutil.Jun(10), w.UpdatedAt)
	w.DependsOn = []string{"new"}
	w.StoryPoints = nil
	require.NoError(t, p.items.Update(ctx, w))

	fetched, err := p.items.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Jun(8), fetched.StartDate)
	assert.Equal(t, testutil.Jun(10), fetched.EndDate)
	assert.Equal(t, []string{"new"}, fetched.DependsOn)
}

func TestWorkItemRepo_UpdateMissing(t *testing.T) {
	p := seedPlan(t)
	w := testutil.NewTestWorkItem(p.features[0].ID, "Ghost")
	assert.ErrorIs(t, p.items.Update(context.Background(), w), ErrNotFound)
}

func TestWorkItemRepo_Delete(t *testing.T) {
	p := seedPlan(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem(p.features[0].ID, "Login", testutil.WithDependsOn("x"))
	require.NoError(t, p.items.Create(ctx, w, 0))
	require.NoError(t, p.items.Delete(ctx, w.ID))

	_, err := p.items.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeatureRepo_GetByIDAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	rel := testutil.NewTestRelease("Q3")
	require.NoError(t, NewSQLiteReleaseRepo(db).Create(ctx, rel))
	repo := NewSQLiteFeatureRepo(db)
	f := testutil.NewTestFeature(rel.ID, "Auth", 0)
	require.NoError(t, repo.Create(ctx, f))

	fetched, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, rel.ID, fetched.ReleaseID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repo.ListByRelease(ctx, rel.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Auth", list[0].Name)
}
