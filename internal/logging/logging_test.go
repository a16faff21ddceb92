package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "multicaret.log")
	l, closeFn, err := New("info", path)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("started", zap.String("file", "a.txt"))
	require.NoError(t, l.Sync())
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "started", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "a.txt", entry["file"])
	assert.Contains(t, entry, "ts")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestNewStderr(t *testing.T) {
	l, closeFn, err := New("warn", "")
	require.NoError(t, err)
	assert.NotNil(t, l)
	assert.NoError(t, closeFn())
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}

func TestContext(t *testing.T) {
	assert.NotNil(t, L(context.Background()))

	l := zap.NewExample()
	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, L(ctx))
	assert.NotNil(t, Nop())
}
