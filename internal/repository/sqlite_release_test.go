package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/relplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReleaseRepo(db)
	ctx := context.Background()

	rel := testutil.NewTestRelease("Q3")
	require.NoError(t, repo.Create(ctx, rel))

	fetched, err := repo.GetByID(ctx, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3", fetched.Name)
	assert.Equal(t, testutil.Jun(1), fetched.StartDate)
	assert.Equal(t, testutil.Jun(30), fetched.EndDate)
	assert.True(t, rel.CreatedAt.Equal(fetched.CreatedAt))
}

func TestReleaseRepo_NoWindowRoundTripsAsZero(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReleaseRepo(db)
	ctx := context.Background()

	rel := testutil.NewTestRelease("Open", testutil.WithoutWindow())
	require.NoError(t, repo.Create(ctx, rel))

	fetched, err := repo.GetByID(ctx, rel.ID)
	require.NoError(t, err)
	assert.True(t, fetched.StartDate.IsZero())
	assert.False(t, fetched.HasWindow())
}

func TestReleaseRepo_GetByName_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReleaseRepo(db)
	ctx := context.Background()

	rel := testutil.NewTestRelease("Winter Launch")
	require.NoError(t, repo.Create(ctx, rel))

	fetched, err := repo.GetByName(ctx, "winter launch")
	require.NoError(t, err)
	assert.Equal(t, rel.ID, fetched.ID)
}

func TestReleaseRepo_DuplicateNameRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReleaseRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestRelease("Q3")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestRelease("Q3")))
}

func TestReleaseRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReleaseRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReleaseRepo_FindByIDPrefix(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReleaseRepo(db)
	ctx := context.Background()

	rel := testutil.NewTestRelease("Q3")
	require.NoError(t, repo.Create(ctx, rel))
	require.NoError(t, repo.Create(ctx, testutil.NewTestRelease("Q4")))

	found, err := repo.FindByIDPrefix(ctx, rel.ID[:8])
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, rel.ID, found[0].ID)

	found, err = repo.FindByIDPrefix(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, found, "wildcards are not treated as a prefix")
}

func TestReleaseRepo_ListAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReleaseRepo(db)
	ctx := context.Background()

	later := testutil.NewTestRelease("Later", testutil.WithWindow(testutil.Jun(15), testutil.Jun(30)))
	early := testutil.NewTestRelease("Early")
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, early))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Early", list[0].Name)

	require.NoError(t, repo.Delete(ctx, early.ID))
	assert.ErrorIs(t, repo.Delete(ctx, early.ID), ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReleaseRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReleaseRepo(db)
	ctx := context.Background()

	rel := testutil.NewTestRelease("Q3")
	require.NoError(t, repo.Create(ctx, rel))

	rel.Name = "Q3 final"
	rel.EndDate = testutil.Jun(26)
	require.NoError(t, repo.Update(ctx, rel))

	fetched, err := repo.GetByID(ctx, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 final", fetched.Name)
	assert.Equal(t, testutil.Jun(26), fetched.EndDate)
}
