package marketscan

import (
	"context"
	"net/url"
	"time"
)

// CaptureRequest describes which feed page to capture and how far to
// scroll through it.
type CaptureRequest struct {
	GroupURL string
	Username string
	Password string

	// Pages is the number of times to scroll to the bottom of the feed.
	Pages int

	// Delay is how long to wait for more posts to load after each scroll.
	Delay time.Duration
}

// Validate returns an error if the request contains invalid fields.
func (r *CaptureRequest) Validate() error {
	if r.GroupURL == "" {
		return Errorf(EINVALID, "group URL required")
	}
	u, err := url.Parse(r.GroupURL)
	if err != nil || !u.IsAbs() {
		return Errorf(EINVALID, "group URL %q must be absolute", r.GroupURL)
	}
	if r.Pages < 0 {
		return Errorf(EINVALID, "pages must not be negative")
	}
	if r.Delay < 0 {
		return Errorf(EINVALID, "delay must not be negative")
	}
	return nil
}

// Capturer produces the raw markup of a feed page, with as many posts and
// comments revealed as the request asks for.
type Capturer interface {
	// Capture loads the page and returns its rendered HTML.
	// The context controls timeout and cancellation.
	Capture(ctx context.Context, req CaptureRequest) (html string, err error)

	// Close releases resources held by the capturer.
	Close() error
}

// Snapshot describes a stored capture.
type Snapshot struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// SnapshotStore persists captured pages so they can be scanned later.
type SnapshotStore interface {
	// Save stores html under name and returns where it was written.
	// An empty name is replaced by a generated one.
	Save(ctx context.Context, name, html string) (path string, err error)

	// Load returns the html stored under name.
	// Returns ENOTFOUND if no such snapshot exists.
	Load(ctx context.Context, name string) (string, error)

	// List returns stored snapshots, most recent first.
	List(ctx context.Context) ([]Snapshot, error)
}
