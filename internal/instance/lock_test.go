package instance

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_Exclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := Acquire(dir, "de.gruenerator.app")
	require.NoError(t, err)
	defer first.Release()

	_, err = Acquire(dir, "de.gruenerator.app")
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	other, err := Acquire(dir, "de.gruenerator.other")
	require.NoError(t, err, "different ids do not conflict")
	require.NoError(t, other.Release())
}

func TestAcquire_ReleaseAllowsReacquire(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir, "app")
	require.NoError(t, err)
	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release(), "double release is fine")

	again, err := Acquire(dir, "app")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestAcquire_WritesPid(t *testing.T) {
	lock, err := Acquire(t.TempDir(), "app")
	require.NoError(t, err)
	defer lock.Release()

	data, err := os.ReadFile(lock.Path())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestAcquire_CreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/data"
	lock, err := Acquire(dir, "app")
	require.NoError(t, err)
	require.NoError(t, lock.Release())
}
