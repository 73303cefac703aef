package filmdex

import "context"

// Tagger infers category tags for a release from its title and
// synopsis. Tagging is an optional enrichment: crawls proceed untagged
// when no Tagger is configured or the Tagger fails.
type Tagger interface {
	// SuggestTags returns category tags for a release.
	SuggestTags(ctx context.Context, title, synopsis string) ([]string, error)
}
