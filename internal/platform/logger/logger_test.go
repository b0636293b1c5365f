package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/aigovern/admin-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	testCases := []struct {
		name     string
		level    string
		minLevel slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"info level", "info", slog.LevelInfo},
		{"warn level", "warn", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
		{"invalid level falls back to info", "verbose", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.level})

			require.NoError(t, err)
			require.NotNil(t, log)
			assert.True(t, log.Enabled(context.Background(), tc.minLevel),
				"logger should be enabled at its configured level")
			if tc.minLevel > slog.LevelDebug {
				assert.False(t, log.Enabled(context.Background(), tc.minLevel-4),
					"logger should not be enabled below its configured level")
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		_, log, cleanup := SetupTestLogger(t, nil)
		defer cleanup()

		ctx := WithLogger(context.Background(), log.With("component", "test"))
		got := FromContext(ctx)

		require.NotNil(t, got)
		assert.NotEqual(t, slog.Default(), got)
	})

	t.Run("falls back to default logger", func(t *testing.T) {
		got := FromContext(context.Background())
		assert.Equal(t, slog.Default(), got)
	})
}

func TestTestLogBuffer_GetLogEntries(t *testing.T) {
	buf, log, cleanup := SetupTestLogger(t, nil)
	defer cleanup()

	log.Info("first entry", "key", "value")
	log.Error("second entry", "error", "boom")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first entry", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, "ERROR", entries[1]["level"])
}
