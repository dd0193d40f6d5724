// Package fs stores captured feed pages as HTML files on disk.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/marketscan"
	"github.com/google/uuid"
)

// Ext is the file extension of stored snapshots.
const Ext = ".html"

// Ensure SnapshotStore implements marketscan.SnapshotStore at compile time.
var _ marketscan.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps one <name>.html file per snapshot in a directory.
// Writes go to a temporary file that is renamed into place, so readers never
// see a partial snapshot.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore returns a store rooted at dir. The directory is created
// on first save.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Dir returns the directory snapshots are stored in.
func (s *SnapshotStore) Dir() string {
	return s.dir
}

// Save writes html under name and returns the file path. An empty name is
// replaced with a random UUID. Saving over an existing name replaces it.
func (s *SnapshotStore) Save(ctx context.Context, name, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" {
		name = uuid.NewString()
	}
	name = strings.TrimSuffix(name, Ext)
	if err := validateName(name); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	path := s.path(name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Load returns the snapshot stored under name. A name containing a path
// separator is read as a file path instead, so pages saved elsewhere can be
// scanned too.
func (s *SnapshotStore) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := name
	if !strings.ContainsAny(name, `/\`) {
		name = strings.TrimSuffix(name, Ext)
		if err := validateName(name); err != nil {
			return "", err
		}
		path = s.path(name)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", marketscan.Errorf(marketscan.ENOTFOUND, "snapshot %q not found", name)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the stored snapshots, most recently modified first.
// A missing directory holds no snapshots.
func (s *SnapshotStore) List(ctx context.Context) ([]marketscan.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var snapshots []marketscan.Snapshot
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != Ext {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, marketscan.Snapshot{
			Name:    strings.TrimSuffix(e.Name(), Ext),
			Path:    filepath.Join(s.dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		if !snapshots[i].ModTime.Equal(snapshots[j].ModTime) {
			return snapshots[i].ModTime.After(snapshots[j].ModTime)
		}
		return snapshots[i].Name < snapshots[j].Name
	})
	return snapshots, nil
}

func (s *SnapshotStore) path(name string) string {
	return filepath.Join(s.dir, name+Ext)
}

func validateName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") {
		return marketscan.Errorf(marketscan.EINVALID, "invalid snapshot name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return marketscan.Errorf(marketscan.EINVALID, "snapshot name %q must not contain path separators", name)
	}
	return nil
}
