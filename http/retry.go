package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/marketscan"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds, waiting delays[i]
// before retry i+1. Errors that a retry cannot fix (invalid input, missing
// page) are returned immediately. The logger, if not nil, records each retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if logger != nil {
			logger.Warn("retry", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch marketscan.ErrorCode(err) {
	case marketscan.EINVALID, marketscan.ENOTFOUND, marketscan.ENOTIMPLEMENTED:
		return false
	}
	return true
}
