package filmdex

import (
	"context"
	"time"
)

// Release is the normalized document produced for one crawled detail
// page. It is constructed once per crawl, immutable after assembly, and
// handed to the persistence service.
type Release struct {
	ID          string    `json:"id"`
	SiteID      string    `json:"siteId"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Year        string    `json:"year,omitempty"`
	Language    string    `json:"language,omitempty"`
	Quality     string    `json:"quality,omitempty"`
	Format      string    `json:"format,omitempty"`
	Synopsis    string    `json:"synopsis,omitempty"`
	Screenshots []string  `json:"screenshots,omitempty"`
	Sections    []Section `json:"sections"`
	Tags        []string  `json:"tags,omitempty"`
	Stats       LinkStats `json:"stats"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the release contains invalid fields.
func (r *Release) Validate() error {
	if r.SiteID == "" {
		return Errorf(EINVALID, "release site ID required")
	}
	if r.SourceURL == "" {
		return Errorf(EINVALID, "release source URL required")
	}
	return nil
}

// LinkCount is one entry of the per-document link-type histogram.
type LinkCount struct {
	Type  LinkType `json:"type"`
	Count int      `json:"count"`
}

// LinkStats holds per-document link diagnostics. Counts are ordered by
// first appearance of the type during assembly; Unresolved counts the
// indirect links whose resolution failed and whose original URL was
// retained. Diagnostics only; nothing reads them back.
type LinkStats struct {
	Counts     []LinkCount `json:"counts,omitempty"`
	Unresolved int         `json:"unresolved"`
}

// Add increments the count for a type, appending it on first sight.
func (s *LinkStats) Add(typ LinkType) {
	for i := range s.Counts {
		if s.Counts[i].Type == typ {
			s.Counts[i].Count++
			return
		}
	}
	s.Counts = append(s.Counts, LinkCount{Type: typ, Count: 1})
}

// Total returns the total number of counted links.
func (s *LinkStats) Total() int {
	var n int
	for _, c := range s.Counts {
		n += c.Count
	}
	return n
}

// ReleaseService represents a service for managing stored releases.
type ReleaseService interface {
	// CreateRelease creates a new release.
	CreateRelease(ctx context.Context, release *Release) error

	// FindReleaseByID retrieves a release by ID.
	// Returns ENOTFOUND if the release does not exist.
	FindReleaseByID(ctx context.Context, id string) (*Release, error)

	// FindReleases retrieves releases matching the filter.
	FindReleases(ctx context.Context, filter ReleaseFilter) ([]*Release, error)

	// UpsertRelease creates the release or, when one with the same
	// source URL already exists, replaces its extracted content.
	UpsertRelease(ctx context.Context, release *Release) error

	// DeleteRelease permanently removes a release.
	// Returns ENOTFOUND if the release does not exist.
	DeleteRelease(ctx context.Context, id string) error

	// DeleteReleasesBySite removes all releases for a site.
	DeleteReleasesBySite(ctx context.Context, siteID string) error
}

// ReleaseSortOrder represents the sort order for release queries.
type ReleaseSortOrder string

// Sort orders for ReleaseFilter.
const (
	ReleasesByFetchedAt ReleaseSortOrder = "fetched_at"
	ReleasesByTitle     ReleaseSortOrder = "title"
)

// ReleaseFilter represents a filter for FindReleases.
type ReleaseFilter struct {
	ID        *string `json:"id"`
	SiteID    *string `json:"siteId"`
	SourceURL *string `json:"sourceUrl"`
	Title     *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy ReleaseSortOrder `json:"sortBy"`
}
