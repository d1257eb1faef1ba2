package bench

import (
	"context"
	"time"

	"github.com/fwojciec/tagscan"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, source string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches source, retrying transient failures once per entry
// in delays and sleeping that long before each retry. Errors coded
// ENOTFOUND or EINVALID are permanent and returned immediately.
// The logger, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, source string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		markup, err := fetch(ctx, source)
		if err == nil {
			return markup, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", source, attempt+2, err)
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
	switch tagscan.ErrorCode(err) {
	case tagscan.ENOTFOUND, tagscan.EINVALID:
		return false
	}
	return true
}
