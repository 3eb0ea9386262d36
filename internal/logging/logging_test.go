package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json handler filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("warn", "json", &buf)
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", "trainee_id", "t-1")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "t-1", entry["trainee_id"])
	})

	t.Run("text handler", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("DEBUG", "text", &buf)
		require.NoError(t, err)

		logger.Debug("loaded", "sessions", 3)
		assert.Contains(t, buf.String(), "msg=loaded sessions=3")
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := New("verbose", "json", &bytes.Buffer{})
		assert.Error(t, err)

		_, err = New("info", "xml", &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestContextLogger(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := ContextWithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	assert.Equal(t, ctx, ContextWithLogger(ctx, nil))
}
