package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"info":   zapcore.InfoLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"panic":  zapcore.PanicLevel,
		"fatal":  zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal ensures an empty context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithKV_ScopesFields checks that context-scoped loggers carry their fields.
func TestWithKV_ScopesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "alarms")
	ctx = WithKV(ctx, "processor", "realtime")

	WarnKV(ctx, "Unexpected alarm event", "type", "BOGUS")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "alarms", entries[0].LoggerName)
	require.Equal(t, "realtime", entries[0].ContextMap()["processor"])
	require.Equal(t, "BOGUS", entries[0].ContextMap()["type"])
}

// TestWithLevel_RaisesThreshold checks that the option drops entries below its level.
func TestWithLevel_RaisesThreshold(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core, WithLevel(zapcore.ErrorLevel)).Sugar())

	InfoKV(ctx, "Watching alarms")
	WarnKV(ctx, "Load failed, retrying")
	ErrorKV(ctx, "Subscription rejected", "topic", "alarms")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "Subscription rejected", entries[0].Message)

	withField := ToContext(context.Background(), FromContext(ctx).With("processor", "realtime"))
	WarnKV(withField, "Still filtered")
	require.Len(t, logs.All(), 1)
}
