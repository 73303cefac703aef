package filmdex_test

import (
	"encoding/json"
	"testing"

	"github.com/filmdex/filmdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisodeMap_InsertionOrder(t *testing.T) {
	t.Parallel()

	var m filmdex.EpisodeMap
	m.Set("2", "https://example.com/e2")
	m.Set("1", "https://example.com/e1")
	m.Set("10", "https://example.com/e10")

	assert.Equal(t, []string{"2", "1", "10"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	url, ok := m.Get("1")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/e1", url)
}

func TestEpisodeMap_OverwriteKeepsPosition(t *testing.T) {
	t.Parallel()

	var m filmdex.EpisodeMap
	m.Set("1", "https://example.com/first")
	m.Set("2", "https://example.com/e2")
	m.Set("1", "https://example.com/last")

	assert.Equal(t, []string{"1", "2"}, m.Keys())

	url, ok := m.Get("1")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/last", url, "last write wins")
}

func TestEpisodeMap_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	var m filmdex.EpisodeMap
	m.Set("3", "https://example.com/e3")
	m.Set("1", "https://example.com/e1")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"3":"https://example.com/e3","1":"https://example.com/e1"}`, string(data))

	var decoded filmdex.EpisodeMap
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"3", "1"}, decoded.Keys(), "decoding preserves key order")

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again), "repeated marshaling is byte-identical")
}

func TestSection_Empty(t *testing.T) {
	t.Parallel()

	t.Run("no groups", func(t *testing.T) {
		t.Parallel()
		s := &filmdex.Section{Heading: "720p"}
		assert.True(t, s.Empty())
	})

	t.Run("group without links", func(t *testing.T) {
		t.Parallel()
		s := &filmdex.Section{Heading: "720p", Groups: []filmdex.LinkGroup{{Name: "x"}}}
		assert.True(t, s.Empty())
	})

	t.Run("group with links", func(t *testing.T) {
		t.Parallel()
		s := &filmdex.Section{
			Heading: "720p",
			Groups: []filmdex.LinkGroup{{
				Name:  "V-Cloud",
				Links: []filmdex.DownloadLink{{Label: "V-Cloud", URL: "https://x", Type: filmdex.LinkCloud}},
			}},
		}
		assert.False(t, s.Empty())
	})

	t.Run("episode group with entries", func(t *testing.T) {
		t.Parallel()
		var m filmdex.EpisodeMap
		m.Set("1", "https://x")
		s := &filmdex.Section{
			Heading:       "Season 1",
			EpisodeGroups: []filmdex.EpisodeLinkGroup{{Label: "V-Cloud", Type: filmdex.LinkCloud, Episodes: m}},
		}
		assert.False(t, s.Empty())
	})
}

func TestLinkStats_Add(t *testing.T) {
	t.Parallel()

	var stats filmdex.LinkStats
	stats.Add(filmdex.LinkCloud)
	stats.Add(filmdex.LinkGDFlix)
	stats.Add(filmdex.LinkCloud)

	require.Len(t, stats.Counts, 2)
	assert.Equal(t, filmdex.LinkCloud, stats.Counts[0].Type)
	assert.Equal(t, 2, stats.Counts[0].Count)
	assert.Equal(t, filmdex.LinkGDFlix, stats.Counts[1].Type)
	assert.Equal(t, 1, stats.Counts[1].Count)
	assert.Equal(t, 3, stats.Total())
}

func TestRelease_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		r := &filmdex.Release{SiteID: "s1", SourceURL: "https://example.com/movie"}
		assert.NoError(t, r.Validate())
	})

	t.Run("missing site ID", func(t *testing.T) {
		t.Parallel()
		r := &filmdex.Release{SourceURL: "https://example.com/movie"}
		assert.Equal(t, filmdex.EINVALID, filmdex.ErrorCode(r.Validate()))
	})

	t.Run("missing source URL", func(t *testing.T) {
		t.Parallel()
		r := &filmdex.Release{SiteID: "s1"}
		assert.Equal(t, filmdex.EINVALID, filmdex.ErrorCode(r.Validate()))
	})
}
