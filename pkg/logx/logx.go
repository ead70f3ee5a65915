// Package logx wraps go.uber.org/zap behind the renderer's core.Logger
// interface, so every package that already depends on core.Logger
// (scene preprocessing, the worker pool, the render driver) gets
// structured logging without changing that interface.
package logx

import (
	"go.uber.org/zap"
)

// Logger implements core.Logger over a *zap.SugaredLogger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a production zap logger (JSON encoding, info level) and
// wraps it. Callers should defer Sync() before the process exits.
func New() (*Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: z.Sugar()}, nil
}

// NewDevelopment builds a human-readable console logger, used by
// cmd/sort outside of production/batch runs.
func NewDevelopment() (*Logger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: z.Sugar()}, nil
}

// Printf satisfies core.Logger, routing through zap at info level.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
