// Package http provides a static marketscan.Capturer that downloads a group
// page with a plain GET. It runs no JavaScript, so it only sees what the
// server renders up front; it suits saved or mirrored pages and public
// groups.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/marketscan"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for a single request.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "marketscan/1.0"

// Ensure Capturer implements marketscan.Capturer at compile time.
var _ marketscan.Capturer = (*Capturer)(nil)

// Capturer fetches group pages over HTTP, retrying transient failures.
type Capturer struct {
	client      *http.Client
	timeout     time.Duration
	retryDelays []time.Duration
	userAgent   string
	logger      *slog.Logger
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithTimeout sets the timeout for each request.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Capturer) {
		c.timeout = d
	}
}

// WithRetryDelays sets the backoff between attempts. An empty slice
// disables retries. Defaults to DefaultRetryDelays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Capturer) {
		c.retryDelays = delays
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Capturer) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger retries are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capturer) {
		c.logger = logger
	}
}

// NewCapturer creates a new HTTP-based Capturer.
func NewCapturer(opts ...Option) *Capturer {
	c := &Capturer{
		timeout:     DefaultFetchTimeout,
		retryDelays: DefaultRetryDelays(),
		userAgent:   DefaultUserAgent,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// Capture downloads req.GroupURL. Scrolling does not apply to a static
// download, so Pages and Delay are ignored; credentials are rejected since
// there is no login form to submit them to.
func (c *Capturer) Capture(ctx context.Context, req marketscan.CaptureRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if req.Username != "" || req.Password != "" {
		return "", marketscan.Errorf(marketscan.ENOTIMPLEMENTED, "static capture cannot log in")
	}

	return FetchWithRetryDelays(ctx, req.GroupURL, c.Fetch, c.logger, c.retryDelays)
}

// Fetch retrieves url once and returns its body decoded to UTF-8.
func (c *Capturer) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", marketscan.Errorf(marketscan.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", marketscan.Errorf(marketscan.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP capturer this is a no-op since
// http.Client doesn't require explicit cleanup.
func (c *Capturer) Close() error {
	return nil
}
