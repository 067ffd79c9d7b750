// Package slog provides log/slog decorators for locgen services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locgen"
)

// Ensure LoggingExtractor implements locgen.Extractor.
var _ locgen.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging of every extraction.
type LoggingExtractor struct {
	next   locgen.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next locgen.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs input size, element
// count and duration. Parse failures are logged at error level.
func (e *LoggingExtractor) Extract(html string) (elems []*locgen.ElementInfo, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		e.logger.Log(context.Background(), level, "extract",
			"bytes", len(html),
			"elements", len(elems),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// StrategyErrorLogger returns a function suitable for
// goquery.WithErrorHandler that logs skipped strategies as warnings.
func StrategyErrorLogger(logger *slog.Logger) func(error) {
	return func(err error) {
		logger.Warn("locator strategy skipped", "err", err)
	}
}
