package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("CFG_STR", " value ")
	t.Setenv("CFG_BLANK", "  ")
	t.Setenv("CFG_INT", "42")
	t.Setenv("CFG_BAD_INT", "4x")
	t.Setenv("CFG_DUR", "1m30s")
	t.Setenv("CFG_SECS", "15")
	t.Setenv("CFG_BOOL", "true")
	t.Setenv("CFG_LIST", "VNM, FPT,,HPG ")

	assert.Equal(t, "value", GetString("CFG_STR", "def"))
	assert.Equal(t, "def", GetString("CFG_BLANK", "def"))
	assert.Equal(t, "def", GetString("CFG_MISSING", "def"))

	assert.Equal(t, 42, GetInt("CFG_INT", 1))
	assert.Equal(t, 1, GetInt("CFG_BAD_INT", 1))
	assert.Equal(t, 1, GetInt("CFG_MISSING", 1))

	assert.Equal(t, 90*time.Second, GetDuration("CFG_DUR", time.Second))
	assert.Equal(t, 15*time.Second, GetDuration("CFG_SECS", time.Second))
	assert.Equal(t, time.Second, GetDuration("CFG_STR", time.Second))

	assert.True(t, GetBool("CFG_BOOL", false))
	assert.True(t, GetBool("CFG_MISSING", true))
	assert.False(t, GetBool("CFG_STR", false))

	assert.Equal(t, []string{"VNM", "FPT", "HPG"}, GetList("CFG_LIST"))
	assert.Empty(t, GetList("CFG_MISSING"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFG_FROM_FILE=hello\nCFG_PRESET=file\n"), 0o600))

	t.Setenv("CFG_PRESET", "env")
	t.Setenv("CFG_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("CFG_FROM_FILE"))

	LoadDotEnv(path, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "hello", os.Getenv("CFG_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("CFG_PRESET"), "existing variables win")
}
