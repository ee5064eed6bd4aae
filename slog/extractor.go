package slog

import (
	"log/slog"
	"time"

	"github.com/abrsjh/harvest"
)

// Ensure LoggingExtractor implements harvest.RecordExtractor.
var _ harvest.RecordExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecordExtractor with per-page logging.
type LoggingExtractor struct {
	next   harvest.RecordExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next harvest.RecordExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html, baseURL string) (records []harvest.Record, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", baseURL,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, baseURL)
}

// ExtractDetail delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractDetail(html, url string) (record harvest.Record, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract detail",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractDetail(html, url)
}
