package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/abrsjh/harvest"
)

// Ensure LoggingWriter implements harvest.RecordWriter.
var _ harvest.RecordWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a RecordWriter with per-batch logging.
type LoggingWriter struct {
	next   harvest.RecordWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next harvest.RecordWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// Write delegates to the wrapped writer and logs the operation.
func (w *LoggingWriter) Write(ctx context.Context, records []harvest.Record) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Write(ctx, records)
}

// Close delegates to the wrapped writer.
func (w *LoggingWriter) Close() error {
	return w.next.Close()
}
