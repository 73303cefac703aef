package goquery_test

import (
	"testing"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEpisodeSections(t *testing.T) {
	t.Parallel()

	t.Run("episode headings accumulate into one group per type", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h4>Episodes: 1</h4>
<p><a href="https://vcloud.example/e1">V-Cloud [Resumable]</a></p>
<h4>Episodes: 2</h4>
<p><a href="https://vcloud.example/e2">V-Cloud [Resumable]</a></p>
</body></html>`

		sections := goquery.ExtractEpisodeSections(html)

		require.Len(t, sections, 1)
		assert.Equal(t, "Episodes", sections[0].Heading)
		require.Len(t, sections[0].EpisodeGroups, 1)

		g := sections[0].EpisodeGroups[0]
		assert.Equal(t, filmdex.LinkCloud, g.Type)
		assert.Equal(t, "V-Cloud [Resumable]", g.Label)
		assert.Equal(t, []string{"1", "2"}, g.Episodes.Keys())

		url1, _ := g.Episodes.Get("1")
		url2, _ := g.Episodes.Get("2")
		assert.Equal(t, "https://vcloud.example/e1", url1)
		assert.Equal(t, "https://vcloud.example/e2", url2)
	})

	t.Run("season headings open one section each", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h3>Season 1 [720p]</h3>
<p>Episode 1 <a href="https://vcloud.example/s1e1">V-Cloud</a></p>
<p>Episode 2 <a href="https://vcloud.example/s1e2">V-Cloud</a></p>
<h3>Season 2 [720p]</h3>
<p>Episode 1 <a href="https://vcloud.example/s2e1">V-Cloud</a></p>
</body></html>`

		sections := goquery.ExtractEpisodeSections(html)

		require.Len(t, sections, 2)
		assert.Equal(t, "Season 1 [720p]", sections[0].Heading)
		assert.Equal(t, "Season 2 [720p]", sections[1].Heading)

		require.Len(t, sections[0].EpisodeGroups, 1)
		assert.Equal(t, []string{"1", "2"}, sections[0].EpisodeGroups[0].Episodes.Keys())
		require.Len(t, sections[1].EpisodeGroups, 1)
		assert.Equal(t, []string{"1"}, sections[1].EpisodeGroups[0].Episodes.Keys())
	})

	t.Run("explicit marker wins over positional inference", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h3>Season 1 [480p]</h3>
<p>- Episode 5 -</p>
<p><a href="https://vcloud.example/e5">V-Cloud</a></p>
</body></html>`

		sections := goquery.ExtractEpisodeSections(html)

		require.Len(t, sections, 1)
		require.Len(t, sections[0].EpisodeGroups, 1)
		assert.Equal(t, []string{"5"}, sections[0].EpisodeGroups[0].Episodes.Keys())
	})

	t.Run("duplicate episode keys overwrite with last write", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h4>Episodes: 1</h4>
<p><a href="https://vcloud.example/old">V-Cloud</a></p>
<h4>Episodes: 1</h4>
<p><a href="https://vcloud.example/new">V-Cloud</a></p>
</body></html>`

		sections := goquery.ExtractEpisodeSections(html)

		require.Len(t, sections, 1)
		g := sections[0].EpisodeGroups[0]
		assert.Equal(t, []string{"1"}, g.Episodes.Keys())
		url, _ := g.Episodes.Get("1")
		assert.Equal(t, "https://vcloud.example/new", url)
	})

	t.Run("different types split into separate groups", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h4>Episodes: 1</h4>
<p><a href="https://vcloud.example/e1">V-Cloud</a> <a href="https://gdflix.example/e1">GDFlix</a></p>
<h4>Episodes: 2</h4>
<p><a href="https://vcloud.example/e2">V-Cloud</a> <a href="https://gdflix.example/e2">GDFlix</a></p>
</body></html>`

		sections := goquery.ExtractEpisodeSections(html)

		require.Len(t, sections, 1)
		require.Len(t, sections[0].EpisodeGroups, 2)
		assert.Equal(t, filmdex.LinkCloud, sections[0].EpisodeGroups[0].Type)
		assert.Equal(t, filmdex.LinkGDFlix, sections[0].EpisodeGroups[1].Type)
		assert.Equal(t, []string{"1", "2"}, sections[0].EpisodeGroups[1].Episodes.Keys())
	})

	t.Run("capture stops at horizontal rule", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h4>Episodes: 1</h4>
<hr>
<p><a href="https://vcloud.example/unrelated">V-Cloud</a></p>
<h4>Episodes: 2</h4>
<p><a href="https://vcloud.example/e2">V-Cloud</a></p>
</body></html>`

		sections := goquery.ExtractEpisodeSections(html)

		require.Len(t, sections, 1)
		g := sections[0].EpisodeGroups[0]
		assert.Equal(t, []string{"2"}, g.Episodes.Keys())
	})

	t.Run("detached buttons assigned by equal cardinality", func(t *testing.T) {
		t.Parallel()

		// Buttons live in a container that is not a sibling of the
		// headings, so the heading walk finds nothing.
		html := `<html><body>
<div><h4>Episodes: 1</h4></div>
<div><h4>Episodes: 2</h4></div>
<div class="buttons">
<a href="https://vcloud.example/e1">V-Cloud</a>
<a href="https://vcloud.example/e2">V-Cloud</a>
<a href="https://gdflix.example/only">GDFlix</a>
</div>
</body></html>`

		sections := goquery.ExtractEpisodeSections(html)

		require.Len(t, sections, 1)
		require.Len(t, sections[0].EpisodeGroups, 1, "mismatched GDFlix count is dropped, not guessed")

		g := sections[0].EpisodeGroups[0]
		assert.Equal(t, filmdex.LinkCloud, g.Type)
		assert.Equal(t, []string{"1", "2"}, g.Episodes.Keys())
		url1, _ := g.Episodes.Get("1")
		assert.Equal(t, "https://vcloud.example/e1", url1)
	})

	t.Run("quality heading without any marker yields nothing", func(t *testing.T) {
		t.Parallel()

		// Season headings with no links, quality row with links: the
		// quality row's buttons must not be repackaged as episodes.
		html := `<html><body>
<h3>Season 1 [Hindi]</h3>
<h3>Season 2 [Hindi]</h3>
<h5>720p [900MB]</h5>
<p><a href="https://vcloud.example/x">V-Cloud</a></p>
</body></html>`

		assert.Nil(t, goquery.ExtractEpisodeSections(html))
	})

	t.Run("quality heading inside a marked season is kept", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h3>Season 1 [720p]</h3>
<p>Episode 1 <a href="https://vcloud.example/e1">V-Cloud</a></p>
<h5>480p [300MB]</h5>
<p><a href="https://vcloud.example/q">V-Cloud</a></p>
</body></html>`

		sections := goquery.ExtractEpisodeSections(html)

		// Only the marker-scoped season section survives.
		require.Len(t, sections, 1)
		assert.Equal(t, "Season 1 [720p]", sections[0].Heading)
		require.Len(t, sections[0].EpisodeGroups, 1)
		assert.Equal(t, []string{"1"}, sections[0].EpisodeGroups[0].Episodes.Keys())
	})

	t.Run("page without episode links returns nil", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h2>Movie (2023)</h2><p>Synopsis text.</p></body></html>`

		assert.Nil(t, goquery.ExtractEpisodeSections(html))
	})
}
