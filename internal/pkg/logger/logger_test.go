package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestAdapterAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	SetHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	t.Cleanup(func() { InitSlog("INFO") })

	l := NewSlogAdapter("component", "scanner")
	l.Info("hello", "command", "gas")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "component=scanner")
	assert.Contains(t, out, "command=gas")
	assert.NotContains(t, out, "hidden")
}

func TestInitZap(t *testing.T) {
	t.Cleanup(func() { InitSlog("INFO") })

	zl, err := InitZap("warn")
	require.NoError(t, err)
	assert.True(t, zl.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, zl.Core().Enabled(zapcore.InfoLevel))
	assert.Equal(t, zapcore.DebugLevel, zapLevel(slog.LevelDebug))
	assert.Equal(t, zapcore.ErrorLevel, zapLevel(slog.LevelError))
}
