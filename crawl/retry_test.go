package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/crawl"
	"github.com/filmdex/filmdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryFetcher(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := crawl.NewRetryFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls++
				return "<html></html>", nil
			},
		}).WithDelays(noDelays)

		html, err := f.Fetch(context.Background(), "https://x.example/")
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := crawl.NewRetryFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls++
				if calls < 3 {
					return "", filmdex.Errorf(filmdex.EUNAVAILABLE, "connection reset")
				}
				return "ok", nil
			},
		}).WithDelays(noDelays)

		var retried []int
		f.WithOnRetry(func(url string, attempt int, err error) {
			retried = append(retried, attempt)
		})

		html, err := f.Fetch(context.Background(), "https://x.example/")
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{2, 3}, retried)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := crawl.NewRetryFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls++
				return "", filmdex.Errorf(filmdex.EUNAVAILABLE, "down")
			},
		}).WithDelays(noDelays)

		_, err := f.Fetch(context.Background(), "https://x.example/")
		require.Error(t, err)
		assert.Equal(t, filmdex.EUNAVAILABLE, filmdex.ErrorCode(err))
		assert.Equal(t, 4, calls) // 1 initial + 3 retries
	})

	t.Run("context cancellation stops retrying", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		f := crawl.NewRetryFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls++
				cancel()
				return "", filmdex.Errorf(filmdex.EUNAVAILABLE, "down")
			},
		}).WithDelays([]time.Duration{time.Hour})

		_, err := f.Fetch(ctx, "https://x.example/")
		require.Error(t, err)
		assert.Equal(t, context.Canceled, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("close propagates to the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		f := crawl.NewRetryFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
			CloseFn: func() error {
				closed = true
				return nil
			},
		})

		require.NoError(t, f.Close())
		assert.True(t, closed)
	})
}
