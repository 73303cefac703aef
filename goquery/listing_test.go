package goquery_test

import (
	"testing"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractListingLinks(t *testing.T) {
	t.Parallel()

	t.Run("detail and pagination links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><h2><a href="/movie-one-720p/">Movie One</a></h2></article>
<article><h2><a href="https://catalog.example/movie-two-1080p/">Movie Two</a></h2></article>
<a class="next page-numbers" href="/page/2/">Next</a>
</body></html>`

		links, err := goquery.ExtractListingLinks(html, "https://catalog.example/")
		require.NoError(t, err)

		require.Len(t, links, 3)
		assert.Equal(t, "https://catalog.example/movie-one-720p/", links[0].URL)
		assert.Equal(t, filmdex.PriorityDetail, links[0].Priority)
		assert.Equal(t, "Movie One", links[0].Text)
		assert.Equal(t, "listing", links[0].Source)
		assert.Equal(t, filmdex.PriorityPagination, links[2].Priority)
		assert.Equal(t, "https://catalog.example/page/2/", links[2].URL)
	})

	t.Run("dedup keeps highest priority", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><h2><a href="/movie/">Movie</a></h2></article>
<div class="pagination"><a href="/movie/">1</a></div>
</body></html>`

		links, err := goquery.ExtractListingLinks(html, "https://catalog.example/")
		require.NoError(t, err)

		require.Len(t, links, 1)
		assert.Equal(t, filmdex.PriorityDetail, links[0].Priority)
	})

	t.Run("external hosts are filtered out", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><h2><a href="https://other.example/movie/">Elsewhere</a></h2></article>
<article><h2><a href="/local-movie/">Local</a></h2></article>
</body></html>`

		links, err := goquery.ExtractListingLinks(html, "https://catalog.example/")
		require.NoError(t, err)

		require.Len(t, links, 1)
		assert.Equal(t, "https://catalog.example/local-movie/", links[0].URL)
	})

	t.Run("non-http links are skipped", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><h2><a href="javascript:void(0)">JS</a></h2></article>
<article><h2><a href="#top">Anchor</a></h2></article>
</body></html>`

		links, err := goquery.ExtractListingLinks(html, "https://catalog.example/")
		require.NoError(t, err)

		assert.Empty(t, links)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractListingLinks("<html></html>", "://bad")
		require.Error(t, err)
		assert.Equal(t, filmdex.EINVALID, filmdex.ErrorCode(err))
	})
}
