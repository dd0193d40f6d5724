package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/marketscan"
)

// Ensure LoggingSnapshotStore implements marketscan.SnapshotStore.
var _ marketscan.SnapshotStore = (*LoggingSnapshotStore)(nil)

// LoggingSnapshotStore wraps a SnapshotStore with debug logging.
type LoggingSnapshotStore struct {
	next   marketscan.SnapshotStore
	logger *slog.Logger
}

// NewLoggingSnapshotStore creates a new LoggingSnapshotStore.
func NewLoggingSnapshotStore(next marketscan.SnapshotStore, logger *slog.Logger) *LoggingSnapshotStore {
	return &LoggingSnapshotStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs where the snapshot went.
func (s *LoggingSnapshotStore) Save(ctx context.Context, name, html string) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("save snapshot",
			"name", name,
			"path", path,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, name, html)
}

// Load delegates to the wrapped store and logs the snapshot size.
func (s *LoggingSnapshotStore) Load(ctx context.Context, name string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load snapshot",
			"name", name,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, name)
}

// List delegates to the wrapped store.
func (s *LoggingSnapshotStore) List(ctx context.Context) (snapshots []marketscan.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list snapshots",
			"count", len(snapshots),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.List(ctx)
}
