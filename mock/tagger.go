package mock

import (
	"context"

	"github.com/filmdex/filmdex"
)

var _ filmdex.Tagger = (*Tagger)(nil)

// Tagger is a mock implementation of filmdex.Tagger.
type Tagger struct {
	SuggestTagsFn func(ctx context.Context, title, synopsis string) ([]string, error)
}

func (t *Tagger) SuggestTags(ctx context.Context, title, synopsis string) ([]string, error) {
	return t.SuggestTagsFn(ctx, title, synopsis)
}
