package crawl

import (
	"context"
	"net/url"
	"strings"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/goquery"
)

var _ filmdex.Resolver = (*Resolver)(nil)

// Resolver resolves indirect download links by fetching the intermediate
// resolver page once and parsing its buttons. It is total: every failure
// mode degrades to an unresolved Resolution carrying the original link,
// so one dead resolver host never loses a release's remaining links.
// Retry behavior belongs to the fetcher it is constructed with.
type Resolver struct {
	fetcher filmdex.Fetcher
	limiter filmdex.DomainLimiter
	hosts   filmdex.HostSet
}

// NewResolver creates a Resolver. The limiter may be nil, in which case
// resolver pages are fetched unthrottled.
func NewResolver(fetcher filmdex.Fetcher, limiter filmdex.DomainLimiter, hosts filmdex.HostSet) *Resolver {
	return &Resolver{fetcher: fetcher, limiter: limiter, hosts: hosts}
}

// Resolve fetches and parses the resolver page behind link. Links whose
// URL doesn't point at a known resolver host pass through unchanged.
func (r *Resolver) Resolve(ctx context.Context, link filmdex.DownloadLink, rc filmdex.ResolveContext) filmdex.Resolution {
	res := filmdex.Resolution{Source: link}

	if !r.hosts.MatchURL(link.URL) {
		res.Links = []filmdex.DownloadLink{link}
		return res
	}
	if link.Type == filmdex.LinkBatch {
		res.BatchName = link.Label
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, domainOf(link.URL)); err != nil {
			return unresolved(res)
		}
	}

	html, err := r.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return unresolved(res)
	}

	page := goquery.ParseResolverPage(html, rc.EpisodeCount)
	switch {
	case len(page.EpisodeGroups) > 0:
		res.EpisodeGroups = page.EpisodeGroups
		res.Positional = page.Positional
	case len(page.Links) > 0:
		res.Links = page.Links
	default:
		return unresolved(res)
	}
	return res
}

// unresolved degrades a resolution to the original link.
func unresolved(res filmdex.Resolution) filmdex.Resolution {
	res.Unresolved = true
	res.EpisodeGroups = nil
	res.Links = []filmdex.DownloadLink{res.Source}
	res.Positional = false
	return res
}

// domainOf extracts the host for rate limiting; an unparseable URL
// falls into a shared bucket.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return strings.ToLower(u.Host)
}
