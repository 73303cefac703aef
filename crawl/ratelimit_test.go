package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/filmdex/filmdex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request is immediate", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(1)
		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "x.example"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("second request to same domain waits", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(10) // 100ms between requests
		require.NoError(t, l.Wait(context.Background(), "x.example"))

		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "x.example"))
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("domains are limited independently", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(1)
		require.NoError(t, l.Wait(context.Background(), "a.example"))

		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "b.example"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(0.001)
		require.NoError(t, l.Wait(context.Background(), "x.example"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.Error(t, l.Wait(ctx, "x.example"))
	})

	t.Run("jitter adds bounded delay", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(1000).WithJitter(30 * time.Millisecond)
		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "x.example"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})
}
