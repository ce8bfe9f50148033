package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Writer is an io.Writer implementation that forwards host command echo to slog.
// Every non-empty line becomes one record.
type Writer struct {
	logger *slog.Logger
	level  slog.Level
	msg    string
}

// NewWriter constructs a Writer bound to the provided logger at debug level.
func NewWriter(logger *slog.Logger) *Writer {
	return NewLevelWriter(logger, LevelDebug, "host echo")
}

// NewLevelWriter constructs a Writer that logs each line with msg at the given level.
func NewLevelWriter(logger *slog.Logger, level Level, msg string) *Writer {
	return &Writer{logger: logger, level: slog.Level(level), msg: msg}
}

// Write logs the given bytes line by line.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger == nil {
		return len(p), nil
	}
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		w.logger.Log(context.Background(), w.level, w.msg, "line", line)
	}
	return len(p), nil
}
