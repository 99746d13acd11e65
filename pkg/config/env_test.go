package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")
	assert.Equal(t, "test_value", GetEnv("TEST_VAR", "default"))
	assert.Equal(t, "default", GetEnv("NONEXISTENT_VAR", "default"))
}

func TestFindEnvFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	envPath := filepath.Join(root, "bankcore.env")
	require.NoError(t, os.WriteFile(envPath, []byte("APP_ENV=test\n"), 0o600))
	t.Chdir(nested)

	found, err := findEnvFile("bankcore.env")
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(envPath)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)

	found, err = findEnvFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, envPath, found)

	_, err = findEnvFile("missing.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
