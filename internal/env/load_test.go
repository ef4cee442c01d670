package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
	assert.NoError(t, Load(""))
}

func TestLoadSetsVariables(t *testing.T) {
	path := writeEnv(t, "# comment\nVIEWER_TEST_MODE=development\nVIEWER_TEST_QUOTED=\"hello world\"\n")
	t.Setenv("VIEWER_TEST_MODE", "")
	os.Unsetenv("VIEWER_TEST_MODE")
	t.Cleanup(func() { os.Unsetenv("VIEWER_TEST_QUOTED") })

	require.NoError(t, Load(path))
	assert.Equal(t, "development", os.Getenv("VIEWER_TEST_MODE"))
	assert.Equal(t, "hello world", os.Getenv("VIEWER_TEST_QUOTED"))
}

func TestLoadKeepsExisting(t *testing.T) {
	path := writeEnv(t, "VIEWER_TEST_KEEP=fromfile\n")
	t.Setenv("VIEWER_TEST_KEEP", "fromenv")

	require.NoError(t, Load(path))
	assert.Equal(t, "fromenv", os.Getenv("VIEWER_TEST_KEEP"))
}

func TestRead(t *testing.T) {
	path := writeEnv(t, "A=1\nB=two\n")
	vals, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two"}, vals)

	vals, err = Read(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, vals)
}
