// Package slog decorates marketscan services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/marketscan"
)

// Ensure LoggingCapturer implements marketscan.Capturer.
var _ marketscan.Capturer = (*LoggingCapturer)(nil)

// LoggingCapturer wraps a Capturer with debug logging.
type LoggingCapturer struct {
	next   marketscan.Capturer
	logger *slog.Logger
}

// NewLoggingCapturer creates a new LoggingCapturer.
func NewLoggingCapturer(next marketscan.Capturer, logger *slog.Logger) *LoggingCapturer {
	return &LoggingCapturer{next: next, logger: logger}
}

// Capture logs the page being captured and delegates to the wrapped
// capturer. Credentials are never logged.
func (c *LoggingCapturer) Capture(ctx context.Context, req marketscan.CaptureRequest) (html string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("capture",
			"url", req.GroupURL,
			"pages", req.Pages,
			"login", req.Username != "",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Capture(ctx, req)
}

// Close delegates to the wrapped capturer.
func (c *LoggingCapturer) Close() error {
	return c.next.Close()
}
