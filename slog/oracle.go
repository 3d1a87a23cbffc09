package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/distill"
)

// Ensure LoggingOracle implements distill.Oracle.
var _ distill.Oracle = (*LoggingOracle)(nil)

// LoggingOracle wraps an Oracle with debug logging. Content and output are
// logged by size only.
type LoggingOracle struct {
	next   distill.Oracle
	logger *slog.Logger
}

// NewLoggingOracle creates a new LoggingOracle.
func NewLoggingOracle(next distill.Oracle, logger *slog.Logger) *LoggingOracle {
	return &LoggingOracle{next: next, logger: logger}
}

// Invoke delegates to the wrapped oracle and logs the call.
func (o *LoggingOracle) Invoke(ctx context.Context, content, instructions string) (output string, err error) {
	defer func(begin time.Time) {
		o.logger.Debug("oracle invoke",
			"content_bytes", len(content),
			"output_bytes", len(output),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.Invoke(ctx, content, instructions)
}
