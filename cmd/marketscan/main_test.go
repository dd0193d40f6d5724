package main_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/fwojciec/marketscan"
	main "github.com/fwojciec/marketscan/cmd/marketscan"
	"github.com/fwojciec/marketscan/goquery"
	"github.com/fwojciec/marketscan/mock"
	"github.com/stretchr/testify/require"
)

const groupURL = "https://www.facebook.com/groups/370115193161790/"

func loadPage(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile("testdata/group_page.html")
	require.NoError(t, err)
	return string(data)
}

// newMain returns a Main that reads no config files and keeps snapshots in
// memory.
func newMain(store marketscan.SnapshotStore, capturer marketscan.Capturer) *main.Main {
	m := main.NewMain()
	m.ConfigPaths = nil
	m.Snapshots = store
	m.Capturer = capturer
	return m
}

// memoryStore returns a SnapshotStore holding snapshots in a map.
func memoryStore(snapshots map[string]string) *mock.SnapshotStore {
	return &mock.SnapshotStore{
		SaveFn: func(ctx context.Context, name, html string) (string, error) {
			if name == "" {
				name = "generated"
			}
			snapshots[name] = html
			return "/snapshots/" + name + ".html", nil
		},
		LoadFn: func(ctx context.Context, name string) (string, error) {
			html, ok := snapshots[name]
			if !ok {
				return "", marketscan.Errorf(marketscan.ENOTFOUND, "snapshot %q not found", name)
			}
			return html, nil
		},
		ListFn: func(ctx context.Context) ([]marketscan.Snapshot, error) {
			var out []marketscan.Snapshot
			for name, html := range snapshots {
				out = append(out, marketscan.Snapshot{Name: name, Size: int64(len(html))})
			}
			return out, nil
		},
	}
}

// newDeps returns Dependencies wired with the default selectors and a
// discarding logger.
func newDeps(t *testing.T, store marketscan.SnapshotStore) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	doc, err := goquery.NewDocument(goquery.DefaultSelectors())
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    discardLogger(),
		Config:    marketscan.DefaultConfig(),
		Blocks:    doc,
		Snapshots: store,
	}, stdout, stderr
}
