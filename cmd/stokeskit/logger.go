package main

import (
	"io"
	"log/slog"
)

// Logger wraps slog.Logger with the field names the commands share.
type Logger struct {
	*slog.Logger
}

// NewLogger writes human-readable text logs to w, at debug level when
// verbose is set.
func NewLogger(w io.Writer, verbose bool) *Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (l *Logger) WithFlow(flow string) *Logger {
	return &Logger{Logger: l.Logger.With("flow", flow)}
}

func (l *Logger) WithRun(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run", id)}
}
