package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/filmdex/filmdex"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxTags caps the number of tags kept from a model response.
const maxTags = 8

// maxSynopsisTokens bounds the synopsis portion of the prompt.
const maxSynopsisTokens = 1024

// Ensure Tagger implements filmdex.Tagger at compile time.
var _ filmdex.Tagger = (*Tagger)(nil)

// Tagger implements filmdex.Tagger using Google Gemini.
type Tagger struct {
	client  *genai.Client
	counter *TokenCounter
}

// TaggerOption configures a Tagger.
type TaggerOption func(*Tagger)

// WithTokenCounter enables synopsis truncation against
// maxSynopsisTokens before prompting.
func WithTokenCounter(tc *TokenCounter) TaggerOption {
	return func(t *Tagger) {
		t.counter = tc
	}
}

// NewTagger creates a new Tagger.
func NewTagger(client *genai.Client, opts ...TaggerOption) *Tagger {
	t := &Tagger{client: client}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SuggestTags asks the model for category tags describing a release.
func (t *Tagger) SuggestTags(ctx context.Context, title, synopsis string) ([]string, error) {
	if title == "" {
		return nil, filmdex.Errorf(filmdex.EINVALID, "title required")
	}

	synopsis, err := t.truncateSynopsis(ctx, synopsis)
	if err != nil {
		return nil, err
	}

	prompt := BuildUserPrompt(title, synopsis)
	config := BuildConfig()

	result, err := t.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, filmdex.Errorf(filmdex.EINTERNAL, "gemini returned nil result")
	}

	return ParseTags(result.Text()), nil
}

// truncateSynopsis trims the synopsis to the prompt token budget when a
// token counter is configured.
func (t *Tagger) truncateSynopsis(ctx context.Context, synopsis string) (string, error) {
	if t.counter == nil || synopsis == "" {
		return synopsis, nil
	}

	count, err := t.counter.CountTokens(ctx, synopsis)
	if err != nil {
		return "", err
	}
	if count <= maxSynopsisTokens {
		return synopsis, nil
	}

	// Proportional cut by runes; exact token alignment is not needed
	// for a tagging prompt.
	runes := []rune(synopsis)
	keep := len(runes) * maxSynopsisTokens / count
	return string(runes[:keep]), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You label movie and TV releases with category tags. Respond with a comma-separated list of short lowercase tags (genre, language, format) and nothing else.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the release details.
func BuildUserPrompt(title, synopsis string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	if synopsis != "" {
		fmt.Fprintf(&sb, "<synopsis>%s</synopsis>\n", synopsis)
	}
	sb.WriteString("\nSuggest tags for this release.")
	return sb.String()
}

// ParseTags extracts tags from a model response. Tags are split on
// commas and newlines, lowercased, stripped of list markers, and
// deduplicated, keeping at most maxTags in response order.
func ParseTags(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	seen := make(map[string]bool)
	var tags []string
	for _, f := range fields {
		tag := strings.ToLower(strings.Trim(strings.TrimSpace(f), "-*• \"'"))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}
