package crawl_test

import (
	"testing"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier(t *testing.T) {
	t.Parallel()

	t.Run("pops by priority", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		f.Push(filmdex.DiscoveredLink{URL: "https://x.example/page/2/", Priority: filmdex.PriorityPagination})
		f.Push(filmdex.DiscoveredLink{URL: "https://x.example/movie/", Priority: filmdex.PriorityDetail})

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://x.example/movie/", link.URL)

		link, ok = f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://x.example/page/2/", link.URL)

		_, ok = f.Pop()
		assert.False(t, ok)
	})

	t.Run("equal priorities pop in insertion order", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		urls := []string{
			"https://x.example/a/",
			"https://x.example/b/",
			"https://x.example/c/",
		}
		for _, u := range urls {
			f.Push(filmdex.DiscoveredLink{URL: u, Priority: filmdex.PriorityDetail})
		}

		for _, want := range urls {
			link, ok := f.Pop()
			require.True(t, ok)
			assert.Equal(t, want, link.URL)
		}
	})

	t.Run("deduplicates seen urls", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		assert.True(t, f.Push(filmdex.DiscoveredLink{URL: "https://x.example/movie/"}))
		assert.False(t, f.Push(filmdex.DiscoveredLink{URL: "https://x.example/movie/"}))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("fragments are stripped before dedup", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		assert.True(t, f.Push(filmdex.DiscoveredLink{URL: "https://x.example/movie/#downloads"}))
		assert.False(t, f.Push(filmdex.DiscoveredLink{URL: "https://x.example/movie/"}))

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://x.example/movie/", link.URL)
		assert.True(t, f.Seen("https://x.example/movie/#other"))
	})
}
