package batch

import (
	"context"
	"time"

	"github.com/fwojciec/locgen"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry calls fetch once plus once per delay until it succeeds.
// Errors with code EINVALID or ENOTFOUND are not retried.
func fetchWithRetry(ctx context.Context, url string, fetch func(context.Context, string) (string, error), delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) || !retryable(err) {
			break
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
	switch locgen.ErrorCode(err) {
	case locgen.EINVALID, locgen.ENOTFOUND:
		return false
	}
	return true
}
