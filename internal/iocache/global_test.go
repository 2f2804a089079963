package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test
	Manager = &StoreManagerImpl{}
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite for both", func(t *testing.T) {
		resetGlobals(t)
		dir := t.TempDir()
		projectPath := filepath.Join(dir, "projects.db")
		historyPath := filepath.Join(dir, "history.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, projectPath, schema.SQLiteBackend, historyPath))
		assert.NotNil(t, Manager.GetProjectStore())
		assert.NotNil(t, Manager.GetHistoryStore())
		CloseStores()

		_, err := os.Stat(projectPath)
		assert.NoError(t, err, "project database file should be created")
		_, err = os.Stat(historyPath)
		assert.NoError(t, err, "history database file should be created")
	})

	t.Run("idempotent", func(t *testing.T) {
		resetGlobals(t)
		projectPath := filepath.Join(t.TempDir(), "projects.db")

		assert.NoError(t, InitStores(schema.SQLiteBackend, projectPath, schema.NoneBackend, ""))
		assert.NoError(t, InitStores(schema.SQLiteBackend, projectPath, schema.NoneBackend, ""))
		CloseStores()
		CloseStores()
	})

	t.Run("empty backends", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores("", "", "", ""))
		assert.Nil(t, Manager.GetProjectStore())
		assert.Nil(t, Manager.GetHistoryStore())
		CloseStores()
	})

	t.Run("bad history backend", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores(schema.NoneBackend, "", "redis", "")
		assert.ErrorContains(t, err, "failed to initialize history store")
		assert.Nil(t, Manager.GetProjectStore())
	})
}

func TestClearProjects(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "projects.db")
	store, err := NewProjectStore(projectTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearProjects(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ClearProjects(schema.SQLiteBackend, dbPath, ""), "missing file is fine")
	assert.Error(t, ClearProjects(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	assert.Error(t, ClearHistory("redis", "", ""))
}

func TestClearUsesConfiguredSQLitePath(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.db")
	customPath := filepath.Join(dir, "custom.db")
	for _, p := range []string{defaultPath, customPath} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	require.NoError(t, ClearProjects(schema.SQLiteBackend, defaultPath, customPath))
	_, err := os.Stat(customPath)
	assert.True(t, os.IsNotExist(err), "configured file should be removed")
	_, err = os.Stat(defaultPath)
	assert.NoError(t, err, "default file should be left alone")

	require.NoError(t, os.WriteFile(customPath, []byte("x"), 0o644))
	require.NoError(t, ClearHistory(schema.SQLiteBackend, defaultPath, customPath))
	_, err = os.Stat(customPath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ClearProjects(schema.SQLiteBackend, "", customPath), "connStr alone is enough")
}
