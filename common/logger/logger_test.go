package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := newWithConsole(Config{Level: "warn"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.Int("triangle", 4))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, `"triangle": 4`)
}

func TestFileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.log")
	var console bytes.Buffer
	cfg := DefaultConfig()
	cfg.File = path
	log, err := newWithConsole(cfg, zapcore.AddSync(&console))
	require.NoError(t, err)

	log.Info("walked", zap.String("agent", "scout"))
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(raw))
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "walked", rec["msg"])
	assert.Equal(t, "scout", rec["agent"])
	assert.Equal(t, "info", rec["level"])
	assert.Contains(t, console.String(), "walked")
}
