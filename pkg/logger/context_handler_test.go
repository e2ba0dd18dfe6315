package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TocConsulting/cryptex/pkg/logger"
)

type commandKey struct{}

func TestContextHandler(t *testing.T) {
	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if v := ctx.Value(commandKey{}); v != nil {
			return slog.String("command", v.(string)), true
		}
		return slog.Attr{}, false
	}

	t.Run("injects context attributes per record", func(t *testing.T) {
		buf := &bytes.Buffer{}
		h := logger.NewContextHandler(slog.NewJSONHandler(buf, nil), extractor)
		log := slog.New(h)

		ctx := context.WithValue(context.Background(), commandKey{}, "totp")
		log.InfoContext(ctx, "stored secret")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "totp", entry["command"])
	})

	t.Run("missing context value adds nothing", func(t *testing.T) {
		buf := &bytes.Buffer{}
		h := logger.NewContextHandler(slog.NewJSONHandler(buf, nil), extractor)
		slog.New(h).Info("plain")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.NotContains(t, entry, "command")
	})

	t.Run("WithAttrs keeps the extractors", func(t *testing.T) {
		buf := &bytes.Buffer{}
		h := logger.NewContextHandler(slog.NewJSONHandler(buf, nil), extractor)
		log := slog.New(h).With(logger.Component("cli"))

		ctx := context.WithValue(context.Background(), commandKey{}, "generate")
		log.InfoContext(ctx, "stored secret")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "cli", entry["component"])
		assert.Equal(t, "generate", entry["command"])
	})

	t.Run("nil extractors are dropped", func(t *testing.T) {
		buf := &bytes.Buffer{}
		h := logger.NewContextHandler(slog.NewJSONHandler(buf, nil), nil, extractor, nil)
		ctx := context.WithValue(context.Background(), commandKey{}, "analyze")
		slog.New(h).InfoContext(ctx, "ok")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "analyze", entry["command"])
	})
}

func TestWithContextValue(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithJSONFormatter(),
		logger.WithContextValue("command", commandKey{}),
	)

	ctx := context.WithValue(context.Background(), commandKey{}, "templates")
	log.InfoContext(ctx, "listing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "templates", entry["command"])
}
