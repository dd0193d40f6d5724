package mock

import (
	"context"

	"github.com/fwojciec/marketscan"
)

var (
	_ marketscan.Capturer      = (*Capturer)(nil)
	_ marketscan.SnapshotStore = (*SnapshotStore)(nil)
)

// Capturer is a mock implementation of marketscan.Capturer.
type Capturer struct {
	CaptureFn func(ctx context.Context, req marketscan.CaptureRequest) (string, error)
	CloseFn   func() error
}

func (c *Capturer) Capture(ctx context.Context, req marketscan.CaptureRequest) (string, error) {
	return c.CaptureFn(ctx, req)
}

func (c *Capturer) Close() error {
	if c.CloseFn == nil {
		return nil
	}
	return c.CloseFn()
}

// SnapshotStore is a mock implementation of marketscan.SnapshotStore.
type SnapshotStore struct {
	SaveFn func(ctx context.Context, name, html string) (string, error)
	LoadFn func(ctx context.Context, name string) (string, error)
	ListFn func(ctx context.Context) ([]marketscan.Snapshot, error)
}

func (s *SnapshotStore) Save(ctx context.Context, name, html string) (string, error) {
	return s.SaveFn(ctx, name, html)
}

func (s *SnapshotStore) Load(ctx context.Context, name string) (string, error) {
	return s.LoadFn(ctx, name)
}

func (s *SnapshotStore) List(ctx context.Context) ([]marketscan.Snapshot, error) {
	return s.ListFn(ctx)
}
