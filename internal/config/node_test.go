package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`# Top comment
startup:
  # Fallback
  splash_timeout: "3s" # Inline comment
  devtools: false
`), 0600))

	require.NoError(t, Set(path, "startup.splash_timeout", "5s"))
	require.NoError(t, Set(path, "startup.start_minimized", "true"))
	require.NoError(t, Set(path, "tray.tooltip", "Grüni"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# Top comment")
	assert.Contains(t, out, "# Fallback")
	assert.Contains(t, out, "# Inline comment")
	assert.Contains(t, out, `splash_timeout: "5s"`)

	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "5s", cfg.Startup.SplashTimeout.Duration().String())
	assert.True(t, cfg.Startup.StartMinimized)
	assert.Equal(t, "Grüni", cfg.Tray.Tooltip)
}

func TestSet_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	require.NoError(t, Set(path, "autostart.args", "[--minimized, --quiet]"))

	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"--minimized", "--quiet"}, cfg.Autostart.Args)
}

func TestSet_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.yaml")
	orig := []byte("deep_link:\n  scheme: gruenerator\n")
	require.NoError(t, os.WriteFile(path, orig, 0600))

	assert.Error(t, Set(path, "deep_link.scheme", "9bad"))
	assert.Error(t, Set(path, "deep_link.scheme.inner", "x"))
	assert.Error(t, Set(path, "startup..devtools", "true"))
	assert.Error(t, Set(filepath.Join(t.TempDir(), "missing.yaml"), "a", "b"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, orig, data, "rejected edits leave the file untouched")
}
