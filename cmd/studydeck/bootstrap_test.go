package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/studydeck/internal/adapters/driving/cli"
)

func unwritableDir(t *testing.T) string {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	return filepath.Join(blocker, "studydeck")
}

func TestOpenConfigStore(t *testing.T) {
	t.Run("writable directory uses the toml file", func(t *testing.T) {
		store, err := openConfigStore(t.TempDir())

		require.NoError(t, err)
		assert.IsType(t, &file.ConfigStore{}, store)
	})

	t.Run("unwritable directory falls back to memory", func(t *testing.T) {
		dir := unwritableDir(t)

		store, err := openConfigStore(dir)

		require.NoError(t, err)
		assert.IsType(t, &memory.ConfigStore{}, store)
		assert.Equal(t, file.ConfigPath(dir), store.Path())
		assert.ErrorIs(t, store.Set("llm.provider", "gemini"), memory.ErrNotPersisted)
		assert.Equal(t, "gemini", store.GetString("llm.provider"))
	})

	t.Run("unparseable file is still an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(file.ConfigPath(dir), []byte("[llm\nprovider ="), 0600))

		_, err := openConfigStore(dir)

		assert.Error(t, err)
	})
}

func TestBootstrap_SettingsWithoutWritableConfigDir(t *testing.T) {
	services, err := bootstrap(context.Background(), cli.Options{ConfigDir: unwritableDir(t)})
	require.NoError(t, err)
	defer services.Close()

	settings, err := services.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, services.Settings.GetDefaults().LLM.Provider, settings.LLM.Provider)

	err = services.Settings.Set("llm.provider", "openai")
	assert.ErrorIs(t, err, memory.ErrNotPersisted)
}
