package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, flush, err := New(Config{Level: "debug", Format: "json", FilePath: path})
	require.NoError(t, err)

	log.Info("expense transitioned", "expense_id", "e-1", "to", "submitted")
	flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "expense transitioned")
	assert.Contains(t, string(data), `"expense_id":"e-1"`)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, flush, err := New(Config{Level: "chatty", Format: "console"})
	require.NoError(t, err)
	defer flush()

	assert.False(t, log.Enabled(t.Context(), slog.LevelDebug), "debug should be disabled at info level")
	assert.True(t, log.Enabled(t.Context(), slog.LevelInfo), "info should be enabled")
}
