package filmdex

import "context"

// ResolveContext carries hints from the originating detail page into a
// resolution: the episode the link was extracted under (if any), the
// label of its originating group, and the number of episode headings
// seen on the detail page (used by the positional assignment strategy).
type ResolveContext struct {
	EpisodeHint  string
	GroupLabel   string
	EpisodeCount int
}

// Resolution is the outcome of resolving one indirect link. Exactly one
// of Links or EpisodeGroups is populated for a successful resolution.
// When Unresolved is set, Links holds the original link unchanged: a
// failed resolution degrades, it never drops the link.
type Resolution struct {
	// Source is the original indirect link.
	Source DownloadLink

	// Links is the flat (non-episodic) outcome.
	Links []DownloadLink

	// EpisodeGroups is the episodic outcome, one group per button type.
	EpisodeGroups []EpisodeLinkGroup

	// BatchName is set when the source link was a batch archive: the
	// resolved entries are presented as one flat group under this name.
	BatchName string

	// Positional is set when episode assignment relied on the
	// equal-cardinality heuristic rather than explicit headings.
	Positional bool

	// Unresolved is set when the resolver page could not be fetched
	// or parsed and the original link was retained.
	Unresolved bool
}

// Resolver resolves an indirect download link into its final links by
// fetching and parsing the intermediate resolver page.
type Resolver interface {
	// Resolve is total: it never fails, degrading to an unresolved
	// Resolution carrying the original link instead.
	Resolve(ctx context.Context, link DownloadLink, rc ResolveContext) Resolution
}
