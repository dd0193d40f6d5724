package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/marketscan"
)

// Ensure LoggingBlockSource implements marketscan.BlockSource.
var _ marketscan.BlockSource = (*LoggingBlockSource)(nil)

// LoggingBlockSource wraps a BlockSource with debug logging.
type LoggingBlockSource struct {
	next   marketscan.BlockSource
	logger *slog.Logger
}

// NewLoggingBlockSource creates a new LoggingBlockSource.
func NewLoggingBlockSource(next marketscan.BlockSource, logger *slog.Logger) *LoggingBlockSource {
	return &LoggingBlockSource{next: next, logger: logger}
}

// Blocks delegates to the wrapped source and logs how many blocks it found.
func (s *LoggingBlockSource) Blocks(html string) (blocks []marketscan.Block, err error) {
	defer func(begin time.Time) {
		s.logger.Info("isolate blocks",
			"bytes", len(html),
			"count", len(blocks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Blocks(html)
}
