package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityQuiet, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestInitialize(t *testing.T) {
	defer func() { JSONOutput = false }()
	for _, jsonOutput := range []bool{true, false} {
		require.NoError(t, Initialize(jsonOutput, VerbosityInfo))
		assert.NotNil(t, Logger)
		assert.Equal(t, jsonOutput, JSONOutput)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true, zapcore.InfoLevel)
	l.Debugw("hidden")
	l.Infow("generated", "language", "cpp", "type", "Point")
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generated", entry["msg"])
	assert.Equal(t, "cpp", entry["language"])
	assert.Equal(t, "Point", entry["type"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, zapcore.WarnLevel)
	l.Infow("hidden")
	l.Warnw("template excluded", "template", "Broken")
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "template excluded")
	assert.Contains(t, out, `{"template": "Broken"}`)
}

func TestGlobalHelpers(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	defer func() { Logger = prev }()
	Logger = New(&buf, true, zapcore.DebugLevel)

	Debugw("d")
	Infow("i")
	Warnw("w")
	Errorw("e")
	Cleanup()
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("\n")))
}
