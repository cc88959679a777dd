package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JRDK92/Clockbuster/internal/models"
)

// newStorePath returns a store path inside a fresh temp dir; the file does not exist yet
func newStorePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// seed inserts sessions verbatim, ids assigned by the store
func seed(t *testing.T, path string, sessions ...models.Session) {
	t.Helper()
	for _, s := range sessions {
		_, err := Insert(path, s)
		require.NoError(t, err)
	}
}

func session(activity, start, end string, minutes float64) models.Session {
	return models.Session{ActivityName: activity, StartTime: start, EndTime: end, DurationMinutes: minutes}
}

// exec runs raw SQL against path
func exec(t *testing.T, path, sql string) {
	t.Helper()
	err := withStore(path, func(conn *gorm.DB) error {
		return conn.Exec(sql).Error
	})
	require.NoError(t, err)
}

// foreignStore creates a valid SQLite file without the sessions table
func foreignStore(t *testing.T, name string) string {
	t.Helper()
	path := newStorePath(t, name)
	exec(t, path, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")
	return path
}

func TestEnsureSchemaCreatesFileAndTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "clockbuster.db")

	repair, err := RepairSchema(path)
	require.NoError(t, err)
	assert.Equal(t, RepairCreatedFile, repair)
	assert.FileExists(t, path)

	ok, err := HasSchema(path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	path := newStorePath(t, "clockbuster.db")
	seed(t, path, session("WRITING", "2024-01-01 09:00:00", "2024-01-01 10:30:00", 90))

	for i := 0; i < 3; i++ {
		repair, err := RepairSchema(path)
		require.NoError(t, err)
		assert.Equal(t, RepairNone, repair)
	}

	sessions, err := ListSessions(path, Ascending)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestRepairSchemaRecreatesDroppedTable(t *testing.T) {
	path := newStorePath(t, "clockbuster.db")
	require.NoError(t, EnsureSchema(path))
	exec(t, path, "DROP TABLE sessions")

	repair, err := RepairSchema(path)
	require.NoError(t, err)
	assert.Equal(t, RepairCreatedTable, repair)

	sessions, err := ListSessions(path, Ascending)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRepairSchemaKeepsForeignTables(t *testing.T) {
	path := foreignStore(t, "other.db")

	repair, err := RepairSchema(path)
	require.NoError(t, err)
	assert.Equal(t, RepairCreatedTable, repair)

	var count int64
	err = withStore(path, func(conn *gorm.DB) error {
		return conn.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'notes'").Scan(&count).Error
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestHasSchema(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := newStorePath(t, "missing.db")
		_, err := HasSchema(path)
		assert.ErrorIs(t, err, ErrStoreNotFound)
		assert.NoFileExists(t, path)
	})

	t.Run("foreign database", func(t *testing.T) {
		ok, err := HasSchema(foreignStore(t, "other.db"))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStoreSurvivesDeletedFile(t *testing.T) {
	path := newStorePath(t, "clockbuster.db")
	seed(t, path, session("WRITING", "2024-01-01 09:00:00", "2024-01-01 10:30:00", 90))

	require.NoError(t, os.Remove(path))

	saved, err := Insert(path, session("READING", "2024-01-02 09:00:00", "2024-01-02 09:30:00", 30))
	require.NoError(t, err)
	assert.EqualValues(t, 1, saved.ID)

	sessions, err := ListSessions(path, Ascending)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "READING", sessions[0].ActivityName)
}

func TestRepairString(t *testing.T) {
	assert.Equal(t, "none", RepairNone.String())
	assert.Contains(t, RepairCreatedFile.String(), "file")
	assert.Contains(t, RepairCreatedTable.String(), "table")
}
