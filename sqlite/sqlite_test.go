package sqlite_test

import (
	"testing"

	"github.com/filmdex/filmdex/sqlite"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory database with the schema applied,
// closed automatically when the test finishes.
func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestDB_OpenClose(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())
}

func TestDB_OpenFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/filmdex.db"
	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())

	// Reopening an existing database must not fail on schema creation.
	db = sqlite.NewDB(path)
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())
}
