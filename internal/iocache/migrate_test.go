package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestMigrateHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	assert.True(t, tableExists(t, dbPath, assessmentRunsTable))
	assert.False(t, tableExists(t, dbPath, questionScoresTable))

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	assert.True(t, tableExists(t, dbPath, questionScoresTable))

	// Already at the latest version.
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, LatestHistoryVersion))

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, assessmentRunsTable))
}

func TestMigrateHistoryUnsupported(t *testing.T) {
	assert.Error(t, MigrateHistory(schema.NoneBackend, "", -1))
	assert.Error(t, MigrateHistory("redis", "", -1))
}

func TestNewHistoryStoreMigratesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	assert.True(t, tableExists(t, dbPath, questionScoresTable))
}
