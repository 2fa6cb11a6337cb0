package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileTestDB creates a file-backed database. Unlike :memory:, a file-backed
// DB shares state across every pooled connection, which WAL readers need.
func newFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "relplan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite verifies report reads keep working
// while tickets are being written.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newFileTestDB(t)
	ctx := context.Background()

	rel := testutil.NewTestRelease("Q3")
	require.NoError(t, NewSQLiteReleaseRepo(database).Create(ctx, rel))
	f := testutil.NewTestFeature(rel.ID, "Core", 0)
	require.NoError(t, NewSQLiteFeatureRepo(database).Create(ctx, f))
	items := NewSQLiteWorkItemRepo(database)

	var wg sync.WaitGroup
	writeErrs := make(chan error, 20)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			w := testutil.NewTestWorkItem(f.ID, fmt.Sprintf("Item-%d", i))
			if err := items.Create(ctx, w, i); err != nil {
				writeErrs <- err
			}
		}
	}()

	readErrs := make(chan error, 50)
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := items.ListByRelease(ctx, rel.ID); err != nil {
					readErrs <- err
				}
			}
		}()
	}

	wg.Wait()
	close(writeErrs)
	close(readErrs)
	for err := range writeErrs {
		assert.NoError(t, err)
	}
	for err := range readErrs {
		assert.NoError(t, err)
	}

	all, err := items.ListByRelease(ctx, rel.ID)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
