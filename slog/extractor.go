package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tagscan"
)

// Ensure LoggingExtractor implements tagscan.TagExtractor.
var _ tagscan.TagExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a TagExtractor with logging.
type LoggingExtractor struct {
	next   tagscan.TagExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next tagscan.TagExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Name delegates to the wrapped extractor.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}

// ExtractTags delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractTags(input string, tags []string) (ext *tagscan.Extraction, err error) {
	defer func(begin time.Time) {
		var records, errs int
		if ext != nil {
			records = len(ext.Records)
			errs = len(ext.Errors)
		}
		e.logger.Info("extract",
			"approach", e.next.Name(),
			"tags", tags,
			"bytes", len(input),
			"records", records,
			"errors", errs,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractTags(input, tags)
}
