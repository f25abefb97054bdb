package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"readinglist/internal/platform/config"
	"readinglist/internal/platform/logging"
)

func TestNewWritesJSONWithRunID(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := logging.New(config.Config{LogLevel: "info", LogFile: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("goal created", zap.Int64("goal_id", 7))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "goal created", entry["msg"])
	require.EqualValues(t, 7, entry["goal_id"])
	require.NotEmpty(t, entry["run_id"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	_, err := logging.New(config.Config{LogLevel: "loud", LogFile: filepath.Join(t.TempDir(), "x.log")})
	require.Error(t, err)
}
