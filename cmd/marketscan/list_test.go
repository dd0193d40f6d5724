package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/marketscan"
	main "github.com/fwojciec/marketscan/cmd/marketscan"
	"github.com/fwojciec/marketscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists snapshots with name, time and size", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, &mock.SnapshotStore{
			ListFn: func(ctx context.Context) ([]marketscan.Snapshot, error) {
				return []marketscan.Snapshot{
					{Name: "june", Size: 2048, ModTime: time.Date(2026, 6, 3, 16, 15, 0, 0, time.UTC)},
					{Name: "may", Size: 1024, ModTime: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)},
				}, nil
			},
		})

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"june  2026-06-03 16:15:00  2048 bytes\nmay  2026-05-01 09:00:00  1024 bytes\n",
			stdout.String())
	})

	t.Run("shows helpful message when no snapshots exist", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, &mock.SnapshotStore{
			ListFn: func(ctx context.Context) ([]marketscan.Snapshot, error) {
				return nil, nil
			},
		})

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "marketscan capture")
	})

	t.Run("reports store errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(t, &mock.SnapshotStore{
			ListFn: func(ctx context.Context) ([]marketscan.Snapshot, error) {
				return nil, errors.New("permission denied")
			},
		})

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestMain_Run_List(t *testing.T) {
	t.Parallel()

	t.Run("reads snapshots from dir flag", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(nil, nil).Run(context.Background(),
			[]string{"--verbose", "--dir", dir, "list"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No snapshots found")
		assert.Contains(t, stderr.String(), "snapshot store")
		assert.Contains(t, stderr.String(), dir)
	})
}
