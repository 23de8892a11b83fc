package embergo

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopLoggerDiscards(t *testing.T) {
	l := NoopLogger()
	require.NotNil(t, l)
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestNewLoggerDefaultsToTextHandler(t *testing.T) {
	l := NewLogger(nil)
	require.NotNil(t, l)
	require.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	require.False(t, l.Enabled(context.Background(), slog.LevelDebug))
}
