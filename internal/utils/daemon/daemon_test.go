package daemon

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIDFileLifecycle(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "run", "infradash.pid")

	running, _ := GetStatus(pidFile)
	assert.False(t, running)

	require.NoError(t, WritePIDFile(pidFile))
	running, pid := GetStatus(pidFile)
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)
	assert.True(t, IsRunning(pidFile))

	RemovePIDFile(pidFile)
	assert.NoFileExists(t, pidFile)
}

func TestStalePIDFileIsCleaned(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "infradash.pid")
	// PIDs are capped well below this on Linux
	require.NoError(t, os.WriteFile(pidFile, []byte(strconv.Itoa(1<<30)), 0644))

	running, _ := GetStatus(pidFile)
	assert.False(t, running)
	assert.NoFileExists(t, pidFile)
}

func TestStopWithoutPIDFile(t *testing.T) {
	_, err := StopProcess(filepath.Join(t.TempDir(), "missing.pid"))
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestInvalidPIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "infradash.pid")
	require.NoError(t, os.WriteFile(pidFile, []byte("not-a-pid"), 0644))

	_, err := StopProcess(pidFile)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotRunning)
}
