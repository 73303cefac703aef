package mock

import (
	"context"

	"github.com/filmdex/filmdex"
)

var _ filmdex.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of filmdex.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *filmdex.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *filmdex.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
