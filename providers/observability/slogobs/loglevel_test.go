package slogobs

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"debug", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"  DEBUG  ", slog.LevelDebug},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.input))
		})
	}
}

func TestLookupLogLevel(t *testing.T) {
	level, err := LookupLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = LookupLogLevel("loud")
	assert.ErrorContains(t, err, `unknown log level "loud"`)
}

func TestGetLogLevelFromEnv(t *testing.T) {
	t.Setenv("SCHEMAFIX_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, slog.LevelInfo, GetLogLevelFromEnv())

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, slog.LevelError, GetLogLevelFromEnv())

	t.Setenv("SCHEMAFIX_LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, GetLogLevelFromEnv())
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", LogLevelString(LevelTrace))
	assert.Equal(t, "DEBUG", LogLevelString(slog.LevelDebug))
	assert.Equal(t, "INFO", LogLevelString(slog.LevelInfo))
	assert.Equal(t, "WARN", LogLevelString(slog.LevelWarn))
	assert.Equal(t, "ERROR", LogLevelString(slog.LevelError))
	assert.Equal(t, "ERROR", LogLevelString(slog.LevelError+4))
}
