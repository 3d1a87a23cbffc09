// Package slog provides logging decorators for distill services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/distill"
)

// Ensure LoggingFetcher implements distill.Fetcher.
var _ distill.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   distill.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next distill.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingBrowserFetcher implements distill.BrowserFetcher.
var _ distill.BrowserFetcher = (*LoggingBrowserFetcher)(nil)

// LoggingBrowserFetcher wraps a BrowserFetcher with logging.
type LoggingBrowserFetcher struct {
	LoggingFetcher
	next distill.BrowserFetcher
}

// NewLoggingBrowserFetcher creates a new LoggingBrowserFetcher.
func NewLoggingBrowserFetcher(next distill.BrowserFetcher, logger *slog.Logger) *LoggingBrowserFetcher {
	return &LoggingBrowserFetcher{
		LoggingFetcher: LoggingFetcher{next: next, logger: logger},
		next:           next,
	}
}

// FetchRendered logs the rendered fetch and delegates to the wrapped fetcher.
func (f *LoggingBrowserFetcher) FetchRendered(ctx context.Context, url string, mode distill.Dynamic) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"method", mode.Method(),
			"headless", mode.Headless,
			"settle", mode.SettleDelay,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchRendered(ctx, url, mode)
}
