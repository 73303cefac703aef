package crawl

import (
	"context"
	"time"

	"github.com/filmdex/filmdex"
)

var _ filmdex.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher wraps a Fetcher with exponential backoff retry logic.
// Transient fetch failures are retried once per delay before the last
// error is returned; context cancellation cuts the attempts short.
type RetryFetcher struct {
	fetcher filmdex.Fetcher
	delays  []time.Duration
	onRetry func(url string, attempt int, err error)
}

// NewRetryFetcher creates a RetryFetcher with the default delays.
func NewRetryFetcher(fetcher filmdex.Fetcher) *RetryFetcher {
	return &RetryFetcher{fetcher: fetcher, delays: DefaultRetryDelays()}
}

// WithDelays overrides the backoff delays. Useful for tests that
// shouldn't wait for real backoff.
func (f *RetryFetcher) WithDelays(delays []time.Duration) *RetryFetcher {
	f.delays = delays
	return f
}

// WithOnRetry sets a callback invoked before each retry attempt.
func (f *RetryFetcher) WithOnRetry(fn func(url string, attempt int, err error)) *RetryFetcher {
	f.onRetry = fn
	return f
}

// Fetch attempts to fetch the URL, retrying with backoff on failure.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if f.onRetry != nil {
			f.onRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close closes the underlying fetcher.
func (f *RetryFetcher) Close() error {
	return f.fetcher.Close()
}
