// Package rknllog wires the diagnostic sink and the CLI's human-facing
// logging through a single zap logger, replacing the teacher's
// build-tag-gated `log.Printf` debug switch with structured, leveled
// logging - the driver needs fields (step count, elapsed time, term size),
// not just a verbosity toggle.
package rknllog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blclang/rknl/internal/diag"
)

// New builds a zap logger writing to stderr. verbose raises the level from
// Info to Debug, standing in for the teacher's `_DEBUG`/`_LOGLEVEL` pair.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// Sink adapts a *zap.SugaredLogger to diag.Sink, so the machine's
// diagnostic channel and the driver's own logging share one sink.
type Sink struct {
	Logger *zap.SugaredLogger
}

// NewSink wraps logger as a diag.Sink.
func NewSink(logger *zap.Logger) diag.Sink {
	return Sink{Logger: logger.Sugar()}
}

// Diagnosef implements diag.Sink.
func (s Sink) Diagnosef(format string, args ...any) {
	s.Logger.Warnf(format, args...)
}
