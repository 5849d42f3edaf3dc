package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(Options{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("level rejected", zap.String("name", "lvl"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "level rejected", entry["msg"])
	assert.Equal(t, "lvl", entry["name"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNewDevelopment(t *testing.T) {
	log, err := New(Options{Development: true, Level: "debug", OutputPaths: []string{filepath.Join(t.TempDir(), "dev.log")}})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}
