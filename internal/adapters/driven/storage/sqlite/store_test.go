package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, DBFileName)
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var tableExists int
	err = store.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='extractions'",
	).Scan(&tableExists)
	require.NoError(t, err)
	assert.Equal(t, 1, tableExists)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}
