package gemini_test

import (
	"context"
	"testing"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagger_SuggestTags_ReturnsErrorWhenTitleEmpty(t *testing.T) {
	t.Parallel()

	tagger := gemini.NewTagger(nil)

	_, err := tagger.SuggestTags(context.Background(), "", "a synopsis")

	require.Error(t, err)
	assert.Equal(t, filmdex.EINVALID, filmdex.ErrorCode(err))
	assert.Contains(t, filmdex.ErrorMessage(err), "title required")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "comma-separated list")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
}

func TestBuildUserPrompt_ContainsReleaseDetails(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("Some Movie (2023)", "Two strangers meet on a train.")

	assert.Contains(t, prompt, "<title>Some Movie (2023)</title>")
	assert.Contains(t, prompt, "<synopsis>Two strangers meet on a train.</synopsis>")
}

func TestBuildUserPrompt_OmitsEmptySynopsis(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("Some Movie (2023)", "")

	assert.NotContains(t, prompt, "<synopsis>")
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	t.Run("splits comma-separated list", func(t *testing.T) {
		t.Parallel()

		tags := gemini.ParseTags("action, thriller, hindi")

		assert.Equal(t, []string{"action", "thriller", "hindi"}, tags)
	})

	t.Run("handles bulleted lines", func(t *testing.T) {
		t.Parallel()

		tags := gemini.ParseTags("- action\n- web series\n* dual audio")

		assert.Equal(t, []string{"action", "web series", "dual audio"}, tags)
	})

	t.Run("lowercases and deduplicates", func(t *testing.T) {
		t.Parallel()

		tags := gemini.ParseTags("Action, action, ACTION, drama")

		assert.Equal(t, []string{"action", "drama"}, tags)
	})

	t.Run("caps the number of tags", func(t *testing.T) {
		t.Parallel()

		tags := gemini.ParseTags("a, b, c, d, e, f, g, h, i, j")

		assert.Len(t, tags, 8)
	})

	t.Run("returns nil for empty response", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, gemini.ParseTags(""))
		assert.Nil(t, gemini.ParseTags("  \n "))
	})
}
