package goquery_test

import (
	"testing"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/goquery"
	"github.com/stretchr/testify/assert"
)

// Ensure LayoutDetector implements filmdex.LayoutDetector at compile time.
var _ filmdex.LayoutDetector = (*goquery.LayoutDetector)(nil)

func TestLayoutDetector_Detect(t *testing.T) {
	t.Parallel()

	d := goquery.NewLayoutDetector()

	t.Run("two season headings detect episode layout", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h3>Season 1 [480p]</h3>
<p><a href="https://vcloud.example/s1">V-Cloud</a></p>
<h3>Season 2 [720p]</h3>
<p><a href="https://vcloud.example/s2">V-Cloud</a></p>
</body></html>`

		assert.Equal(t, filmdex.LayoutEpisode, d.Detect(html))
	})

	t.Run("two episode headings detect episode layout", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h4>Episodes: 1</h4>
<h4>Episodes: 2</h4>
</body></html>`

		assert.Equal(t, filmdex.LayoutEpisode, d.Detect(html))
	})

	t.Run("mixed sxxeyy markers detect episode layout", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h5>Show S01E01 WEB-DL</h5>
<h5>Show S01E02 WEB-DL</h5>
</body></html>`

		assert.Equal(t, filmdex.LayoutEpisode, d.Detect(html))
	})

	t.Run("single episode heading is not enough evidence", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2>Movie Title (2023)</h2>
<h4>Episodes: 8</h4>
<h5>720p [1.2GB]</h5>
</body></html>`

		assert.Equal(t, filmdex.LayoutQuality, d.Detect(html))
	})

	t.Run("quality headings detect quality layout", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h5>480p [400MB]</h5>
<h5>720p [900MB]</h5>
<h5>1080p [2.1GB]</h5>
</body></html>`

		assert.Equal(t, filmdex.LayoutQuality, d.Detect(html))
	})

	t.Run("season heading without annotation does not count", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2>Season 1 Review</h2>
<h2>Season 2 Review</h2>
</body></html>`

		assert.Equal(t, filmdex.LayoutQuality, d.Detect(html))
	})

	t.Run("empty page detects quality layout", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, filmdex.LayoutQuality, d.Detect(""))
	})
}
