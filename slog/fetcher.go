// Package slog provides logging decorators for tagscan services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tagscan"
)

// Ensure LoggingFetcher implements tagscan.Fetcher.
var _ tagscan.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   tagscan.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next tagscan.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, source string) (markup string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", source,
			"bytes", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, source)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
