package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

func TestNeedsLLM(t *testing.T) {
	assert.True(t, needsLLM(summaryCmd))
	assert.True(t, needsLLM(deckCmd))
	assert.True(t, needsLLM(mcpServeCmd))
	assert.False(t, needsLLM(versionCmd))
	assert.False(t, needsLLM(settingsShowCmd))

	parent := &cobra.Command{Use: "parent", Annotations: llmAnnotation()}
	child := &cobra.Command{Use: "child"}
	parent.AddCommand(child)
	assert.True(t, needsLLM(child))
}

func TestSetup_PassesOptions(t *testing.T) {
	var got Options
	SetBootstrap(func(_ context.Context, opts Options) (*Services, error) {
		got = opts
		return testServices(), nil
	})
	t.Cleanup(func() {
		SetBootstrap(nil)
		SetServices(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		configDir = ""
	})

	dir := t.TempDir()
	rootCmd.SetArgs([]string{"--config-dir", dir, "summary", writeInput(t, "notes.txt", "text")})
	rootCmd.SetOut(&nopWriter{})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, dir, got.ConfigDir)
	assert.True(t, got.NeedsLLM)
}

func TestSetup_MissingCredentialIsFatal(t *testing.T) {
	SetBootstrap(func(_ context.Context, opts Options) (*Services, error) {
		if opts.NeedsLLM {
			return nil, domain.ErrMissingCredential
		}
		return testServices(), nil
	})
	t.Cleanup(func() {
		SetBootstrap(nil)
		SetServices(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
	})

	rootCmd.SetArgs([]string{"summary", "whatever.txt"})
	rootCmd.SetErr(&nopWriter{})
	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestTeardown_ClosesServices(t *testing.T) {
	closed := false
	services := testServices()
	services.Close = func() { closed = true }

	_, _, err := execute(t, services, "version")

	require.NoError(t, err)
	assert.True(t, closed)
}

func TestSetServices_Nil(t *testing.T) {
	SetServices(testServices())
	SetServices(nil)

	assert.Nil(t, studyService)
	assert.Nil(t, settingsService)
}

func TestRequireService(t *testing.T) {
	assert.EqualError(t, requireService(nil, "study"), "study service not configured")
	assert.NoError(t, requireService(&mockStudy{}, "study"))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
