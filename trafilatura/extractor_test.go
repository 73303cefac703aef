package trafilatura_test

import (
	"testing"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements filmdex.MetadataExtractor at compile time.
var _ filmdex.MetadataExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Some Movie (2023) - Catalog</title>
<meta property="og:title" content="Some Movie (2023) Hindi Dubbed">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Some Movie (2023)</h1>
<p>Two strangers meet on a train and their lives change forever.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		meta, err := ext.ExtractMetadata(html)

		require.NoError(t, err)
		assert.NotEmpty(t, meta.Title)
	})

	t.Run("extracts synopsis content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Some Movie (2023)</title></head>
<body>
<nav><a href="/">Home</a><a href="/movies">Movies</a></nav>
<article>
<h1>Some Movie (2023)</h1>
<p>Two strangers meet on a train and their lives change forever when a storm strands them in a small town.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		meta, err := ext.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Contains(t, meta.SynopsisHTML, "strangers meet on a train")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Some Movie (2023)</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/category/action/">Action</a></li>
<li><a href="/category/drama/">Drama</a></li>
</ul>
</nav>
<main>
<h1>Some Movie (2023)</h1>
<p>The plot summary we actually want to keep.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		meta, err := ext.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Contains(t, meta.SynopsisHTML, "plot summary we actually want")
		assert.NotContains(t, meta.SynopsisHTML, "main-nav")
	})

	t.Run("leaves structured fields empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><h1>Some Movie</h1><p>A long enough synopsis paragraph for extraction to pick up.</p></article></body></html>`

		ext := trafilatura.NewExtractor()
		meta, err := ext.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Empty(t, meta.Year)
		assert.Empty(t, meta.Language)
		assert.Empty(t, meta.Quality)
		assert.Empty(t, meta.Screenshots)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.ExtractMetadata("")

		require.Error(t, err)
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		meta, err := ext.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Contains(t, meta.SynopsisHTML, "Simple content")
	})
}
