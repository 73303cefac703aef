package mock

import (
	"context"

	"github.com/filmdex/filmdex"
)

var _ filmdex.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of filmdex.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, link filmdex.DownloadLink, rc filmdex.ResolveContext) filmdex.Resolution
}

func (r *Resolver) Resolve(ctx context.Context, link filmdex.DownloadLink, rc filmdex.ResolveContext) filmdex.Resolution {
	return r.ResolveFn(ctx, link, rc)
}
