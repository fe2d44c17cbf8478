package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruenerator/shell/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Grünerator")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "shell.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = execute(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)

	out, err = execute(t, "--config", path, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.yaml")
	_, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)

	out, err := execute(t, "--config", path, "config", "set", "startup.start_minimized", "true")
	require.NoError(t, err)
	assert.Equal(t, "startup.start_minimized = true\n", out)

	cfg, err := config.LoadOrDefault(path)
	require.NoError(t, err)
	assert.True(t, cfg.Startup.StartMinimized)

	_, err = execute(t, "--config", path, "config", "set", "update.source", "ftp")
	assert.Error(t, err)
}

func TestValidateInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deep_link:\n  scheme: \"\"\n"), 0600))

	_, err := execute(t, "--config", path, "validate")
	assert.ErrorContains(t, err, "configuration invalid")
}

func TestActivateWithoutInstance(t *testing.T) {
	dir, err := os.MkdirTemp("", "gm")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "shell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  data_dir: "+dir+"\ninstance:\n  forward_timeout: 50ms\n"), 0600))

	_, err = execute(t, "--config", path, "open-url", "gruenerator://auth/callback")
	assert.ErrorContains(t, err, "no running instance")
}

func TestRootAcceptsURLs(t *testing.T) {
	cmd := newRootCmd()
	sub, _, err := cmd.Find([]string{"gruenerator://auth/callback?code=1"})
	require.NoError(t, err)
	assert.Equal(t, cmd, sub)
	assert.NoError(t, cmd.Args(cmd, []string{"gruenerator://auth/callback?code=1"}))
}

func TestDefaultConfigPath(t *testing.T) {
	assert.Equal(t, "shell.yaml", filepath.Base(defaultConfigPath()))
}

func TestExitNowReleasesThenExits(t *testing.T) {
	var calls []string
	quit := exitNow(
		func() { calls = append(calls, "release") },
		func(code int) { calls = append(calls, fmt.Sprintf("exit %d", code)) },
	)

	done := make(chan struct{})
	go func() {
		quit(0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("quit blocked")
	}
	assert.Equal(t, []string{"release", "exit 0"}, calls)
}
