package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecrew/propshelf/internal/db"
)

// openTestDB opens a migrated throwaway database for one test.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on"
	d, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	require.NoError(t, db.Migrate(d))
	return d
}
