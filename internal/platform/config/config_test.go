package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readinglist/internal/platform/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, filepath.Join(dir, "readinglist.db"), cfg.DSN)
	assert.Equal(t, filepath.Join(dir, "readinglist.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 256, cfg.CacheSize)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	yml := "log_level: debug\ncache_size: 32\nlog_file: /tmp/from-file.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644))
	t.Setenv("READINGLIST_LOG_FILE", "/tmp/from-env.log")

	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 32, cfg.CacheSize)
	assert.Equal(t, "/tmp/from-env.log", cfg.LogFile)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("READINGLIST_DB_DRIVER", "oracle")
		_, err := config.Load(dir, "")
		require.Error(t, err)
	})
	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("READINGLIST_DB_DRIVER", "postgres")
		_, err := config.Load(dir, "")
		require.Error(t, err)
	})
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.Load(dir, filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
	})
	t.Run("empty data dir", func(t *testing.T) {
		_, err := config.Load("", "")
		require.Error(t, err)
	})
}
