package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "SIRIA_TEST_EVENTBRITE=eb-token\nSIRIA_TEST_PRESET=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("SIRIA_TEST_PRESET", "from-env")
	t.Setenv("SIRIA_TEST_EVENTBRITE", "")
	require.NoError(t, os.Unsetenv("SIRIA_TEST_EVENTBRITE"))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), path))

	assert.Equal(t, "eb-token", os.Getenv("SIRIA_TEST_EVENTBRITE"))
	assert.Equal(t, "from-env", os.Getenv("SIRIA_TEST_PRESET"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	assert.NoError(t, LoadEnv())
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadEnv_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=1\n"), 0600))

	assert.Error(t, LoadEnv(path))
}
