package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/filmdex/filmdex"
)

// selectorConfig defines a CSS selector with its priority and source label.
type selectorConfig struct {
	selector string
	priority filmdex.LinkPriority
	source   string
}

// listingConfigs cover the post-listing markup of stock catalog themes:
// article title links are detail pages, page-number links continue the
// listing walk.
var listingConfigs = []selectorConfig{
	{"article h2 a[href]", filmdex.PriorityDetail, "listing"},
	{"article .entry-title a[href]", filmdex.PriorityDetail, "listing"},
	{".post-title a[href]", filmdex.PriorityDetail, "listing"},
	{"h3.entry-title a[href]", filmdex.PriorityDetail, "listing"},
	{"a.next.page-numbers[href]", filmdex.PriorityPagination, "pagination"},
	{".pagination a[href]", filmdex.PriorityPagination, "pagination"},
	{"a[rel='next'][href]", filmdex.PriorityPagination, "pagination"},
}

// ExtractListingLinks parses a catalog listing page and returns
// discovered detail and pagination links with priority. Links are
// deduplicated by URL, keeping the highest priority version; external
// links (different host than baseURL) are filtered out. The returned
// links maintain document order based on first occurrence.
func ExtractListingLinks(htmlStr string, baseURL string) ([]filmdex.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, filmdex.Errorf(filmdex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, filmdex.Errorf(filmdex.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates.
	seen := make(map[string]int)
	var links []filmdex.DiscoveredLink

	for _, config := range listingConfigs {
		doc.Find(config.selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			if !isSameHost(base, resolved) {
				return
			}

			link := filmdex.DiscoveredLink{
				URL:      resolved,
				Priority: config.priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   config.source,
			}

			if idx, ok := seen[resolved]; ok {
				if config.priority > links[idx].Priority {
					links[idx] = link
				}
			} else {
				seen[resolved] = len(links)
				links = append(links, link)
			}
		})
	}

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink reports whether href uses a non-HTTP scheme
// (javascript:, mailto:, tel:) or is a bare fragment.
func isNonHTTPLink(href string) bool {
	if strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
