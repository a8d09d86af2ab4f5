package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONLines(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "booklet.log")

	l, closer, err := New("info", file)
	require.NoError(t, err)
	l.Debug().Msg("hidden")
	l.Info().Str("path", "book.txt").Msg("opened")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "opened", entry["message"])
	assert.Equal(t, "book.txt", entry["path"])
	assert.Contains(t, entry, "time")
}

func TestNewAppends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "booklet.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := New("debug", file)
		require.NoError(t, err)
		l.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestNewInvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestNewWithoutFile(t *testing.T) {
	l, closer, err := New("debug", "")
	require.NoError(t, err)
	defer closer()
	l.Info().Msg("discarded")
}
