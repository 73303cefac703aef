// Package crawl provides catalog crawling orchestration.
// It coordinates URL discovery, fetching, extraction, link resolution,
// and storage of release documents.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/goquery"
	"golang.org/x/sync/errgroup"
)

// Crawler orchestrates the crawling of catalog sites. Discovery prefers
// the site's sitemap and falls back to walking its listing pages.
// Documents are processed concurrently; each document's own pipeline
// runs sequentially.
type Crawler struct {
	Sitemaps    filmdex.SitemapService
	Fetcher     filmdex.Fetcher
	Pipeline    *Pipeline
	Releases    filmdex.ReleaseService
	Tagger      filmdex.Tagger
	RateLimiter filmdex.DomainLimiter
	Concurrency int
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved      int
	Skipped    int
	Failed     int
	Links      int
	Unresolved int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// CrawlSite crawls all detail pages for a site and saves them as
// releases. The progress callback, if provided, receives events as
// crawling proceeds.
func (c *Crawler) CrawlSite(ctx context.Context, site *filmdex.Site, progress ProgressFunc) (*Result, error) {
	urlFilter, err := parseFilter(site.Filter)
	if err != nil {
		return nil, err
	}

	urls, err := c.Sitemaps.DiscoverURLs(ctx, site.BaseURL, urlFilter)
	if err != nil || len(urls) == 0 {
		// Catalog sites often block or omit sitemaps; the listing walk
		// is the fallback discovery path.
		return c.listingCrawl(ctx, site, urlFilter, progress)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var completed atomic.Int64
	var result Result
	outcomeCh := make(chan pageOutcome, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, pageURL := range urls {
			pageURL := pageURL
			g.Go(func() error {
				release, err := c.processURL(gctx, site, pageURL)
				done := int(completed.Add(1))
				if err != nil {
					outcomeCh <- pageOutcome{failed: true}
					if progress != nil {
						progress(ProgressEvent{Type: ProgressFailed, Completed: done, Total: total, URL: pageURL, Error: err})
					}
					return nil
				}
				outcomeCh <- pageOutcome{release: release}
				if progress != nil {
					typ := ProgressCompleted
					if release == nil {
						typ = ProgressSkipped
					}
					progress(ProgressEvent{Type: typ, Completed: done, Total: total, URL: pageURL})
				}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	for outcome := range outcomeCh {
		if outcome.failed {
			result.Failed++
			continue
		}
		c.accumulate(ctx, &result, outcome.release)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return &result, nil
}

// pageOutcome carries one worker's result to the accumulator. A nil
// release without the failed flag means the page was skipped as
// unchanged.
type pageOutcome struct {
	release *filmdex.Release
	failed  bool
}

// processURL fetches and processes a single detail page. A nil release
// with a nil error means the stored copy is already current.
func (c *Crawler) processURL(ctx context.Context, site *filmdex.Site, pageURL string) (*filmdex.Release, error) {
	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, domainOf(pageURL)); err != nil {
			return nil, err
		}
	}

	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	release := c.Pipeline.Process(ctx, filmdex.DetailPage{URL: pageURL, HTML: html})
	release.SiteID = site.ID
	release.FetchedAt = time.Now().UTC()

	if c.unchanged(ctx, release) {
		return nil, nil
	}

	if c.Tagger != nil {
		if tags, err := c.Tagger.SuggestTags(ctx, release.Title, release.Synopsis); err == nil {
			release.Tags = tags
		}
	}

	return release, nil
}

// unchanged reports whether a stored release with the same source URL
// and content hash already exists.
func (c *Crawler) unchanged(ctx context.Context, release *filmdex.Release) bool {
	existing, err := c.Releases.FindReleases(ctx, filmdex.ReleaseFilter{SourceURL: &release.SourceURL, Limit: 1})
	if err != nil || len(existing) == 0 {
		return false
	}
	return existing[0].ContentHash == release.ContentHash
}

// accumulate saves one release and folds its stats into the result.
func (c *Crawler) accumulate(ctx context.Context, result *Result, release *filmdex.Release) {
	if release == nil {
		result.Skipped++
		return
	}
	if err := c.Releases.UpsertRelease(ctx, release); err != nil {
		result.Failed++
		return
	}
	result.Saved++
	result.Links += release.Stats.Total()
	result.Unresolved += release.Stats.Unresolved
}

// Frontier configuration for the listing walk.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxListingCrawlURLs limits the number of URLs processed to prevent runaway crawls.
	maxListingCrawlURLs = 1000
)

// listingCrawl walks the site's listing pages when sitemap discovery
// yields nothing, following pagination and processing every discovered
// detail page.
//
// URLs are processed sequentially to simplify rate limiting and
// frontier management; sitemap-based crawling is the throughput path.
func (c *Crawler) listingCrawl(ctx context.Context, site *filmdex.Site, urlFilter *filmdex.URLFilter, progress ProgressFunc) (*Result, error) {
	baseURL, err := url.Parse(site.BaseURL)
	if err != nil {
		return nil, filmdex.Errorf(filmdex.EINVALID, "invalid site base URL: %v", err)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(filmdex.DiscoveredLink{
		URL:      site.BaseURL,
		Priority: filmdex.PriorityPagination,
		Source:   "pagination",
	})

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	var result Result
	processed := 0

	for {
		link, ok := frontier.Pop()
		if !ok || processed >= maxListingCrawlURLs || ctx.Err() != nil {
			break
		}
		processed++

		if link.Priority == filmdex.PriorityDetail {
			release, err := c.processURL(ctx, site, link.URL)
			if err != nil {
				result.Failed++
				if progress != nil {
					progress(ProgressEvent{Type: ProgressFailed, Completed: processed, URL: link.URL, Error: err})
				}
				continue
			}
			c.accumulate(ctx, &result, release)
			if progress != nil {
				typ := ProgressCompleted
				if release == nil {
					typ = ProgressSkipped
				}
				progress(ProgressEvent{Type: typ, Completed: processed, URL: link.URL})
			}
			continue
		}

		// Listing or pagination page: fetch and harvest links.
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, domainOf(link.URL)); err != nil {
				break
			}
		}
		html, err := c.Fetcher.Fetch(ctx, link.URL)
		if err != nil {
			result.Failed++
			continue
		}
		discovered, err := goquery.ExtractListingLinks(html, link.URL)
		if err != nil {
			continue
		}
		for _, d := range discovered {
			du, err := url.Parse(d.URL)
			if err != nil || du.Host != baseURL.Host {
				continue
			}
			if d.Priority == filmdex.PriorityDetail && !urlFilter.Match(d.URL) {
				continue
			}
			frontier.Push(d)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: processed})
	}
	return &result, nil
}

// parseFilter compiles a site's newline-separated include patterns.
func parseFilter(filter string) (*filmdex.URLFilter, error) {
	if filter == "" {
		return nil, nil
	}
	urlFilter := &filmdex.URLFilter{}
	for _, pattern := range strings.Split(filter, "\n") {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		urlFilter.Include = append(urlFilter.Include, re)
	}
	return urlFilter, nil
}
