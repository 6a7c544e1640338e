package rknllog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/blclang/rknl/internal/rknllog"
)

func TestSinkForwardsDiagnosticsAsWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	sink := rknllog.NewSink(logger)
	sink.Diagnosef("unbound index %d at depth %d", 3, 1)

	entries := logs.TakeAll()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Contains(t, entries[0].Message, "unbound index 3 at depth 1")
	}
}

func TestNewRespectsVerboseFlag(t *testing.T) {
	quiet, err := rknllog.New(false)
	assert.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.DebugLevel))

	verbose, err := rknllog.New(true)
	assert.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}
