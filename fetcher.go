package filmdex

import "context"

// Fetcher retrieves HTML from URLs. Implementations own transport
// concerns: headers, cookies and session reuse, timeouts, retry policy,
// and the inter-request delay that keeps the crawl cadence humanized.
// Callers treat any fetch failure uniformly.
type Fetcher interface {
	// Fetch retrieves the HTML at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}
