package crawl

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/goquery"
)

// Pipeline turns one fetched detail page into a Release. Process is
// total: a page the pipeline cannot make sense of yields a Release with
// empty sections rather than an error, so one malformed page never
// aborts a site crawl. Within a document everything runs sequentially;
// callers parallelize across documents.
type Pipeline struct {
	Detector filmdex.LayoutDetector
	Metadata filmdex.MetadataExtractor
	// Fallback, when set, supplies metadata for pages the primary
	// extractor found no title on.
	Fallback  filmdex.MetadataExtractor
	Converter filmdex.Converter
	Resolver  filmdex.Resolver
	Hosts     filmdex.HostSet
}

// Process extracts, resolves, and assembles one detail page.
func (p *Pipeline) Process(ctx context.Context, page filmdex.DetailPage) *filmdex.Release {
	release := &filmdex.Release{
		SourceURL:   page.URL,
		ContentHash: strconv.FormatUint(xxhash.Sum64String(page.HTML), 16),
	}

	p.fillMetadata(release, page.HTML)

	sections := p.extractSections(page.HTML)
	resolutions := p.resolveSections(ctx, sections)
	release.Sections, release.Stats = AssembleSections(sections, resolutions)

	return release
}

func (p *Pipeline) fillMetadata(release *filmdex.Release, html string) {
	md, err := p.Metadata.ExtractMetadata(html)
	if (err != nil || md.Title == "") && p.Fallback != nil {
		if fb, fbErr := p.Fallback.ExtractMetadata(html); fbErr == nil {
			if md == nil || md.Title == "" {
				md = fb
			}
		}
	}
	if md == nil {
		return
	}

	release.Title = md.Title
	release.Year = md.Year
	release.Language = md.Language
	release.Quality = md.Quality
	release.Format = md.Format
	release.Screenshots = md.Screenshots

	if md.SynopsisHTML == "" {
		return
	}
	if p.Converter != nil {
		if synopsis, err := p.Converter.Convert(md.SynopsisHTML); err == nil {
			release.Synopsis = synopsis
			return
		}
	}
	release.Synopsis = md.SynopsisHTML
}

// extractSections picks the extractor for the detected layout. An
// episode-layout page that yields no episode sections falls back to the
// quality extractor: layout detection is a heuristic, extraction is the
// ground truth.
func (p *Pipeline) extractSections(html string) []filmdex.Section {
	if p.Detector.Detect(html) == filmdex.LayoutEpisode {
		if sections := goquery.ExtractEpisodeSections(html); len(sections) > 0 {
			return sections
		}
	}
	return goquery.ExtractQualitySections(html, p.Hosts)
}

// resolveSections resolves every resolver-host link in document order,
// once per distinct URL.
func (p *Pipeline) resolveSections(ctx context.Context, sections []filmdex.Section) map[string]filmdex.Resolution {
	resolutions := make(map[string]filmdex.Resolution)

	for _, section := range sections {
		episodeCount := sectionEpisodeCount(section)

		for _, group := range section.Groups {
			for _, link := range group.Links {
				p.resolveOne(ctx, resolutions, link, filmdex.ResolveContext{
					GroupLabel:   group.Name,
					EpisodeCount: episodeCount,
				})
			}
		}
		for _, eg := range section.EpisodeGroups {
			for _, ep := range eg.Episodes.Keys() {
				url, _ := eg.Episodes.Get(ep)
				p.resolveOne(ctx, resolutions, filmdex.DownloadLink{
					Label: eg.Label,
					URL:   url,
					Type:  eg.Type,
				}, filmdex.ResolveContext{
					EpisodeHint:  ep,
					GroupLabel:   eg.Label,
					EpisodeCount: episodeCount,
				})
			}
		}
	}

	return resolutions
}

func (p *Pipeline) resolveOne(ctx context.Context, resolutions map[string]filmdex.Resolution, link filmdex.DownloadLink, rc filmdex.ResolveContext) {
	if !p.Hosts.MatchURL(link.URL) {
		return
	}
	if _, ok := resolutions[link.URL]; ok {
		return
	}
	resolutions[link.URL] = p.Resolver.Resolve(ctx, link, rc)
}

// sectionEpisodeCount reports the episode count the section's own
// headings establish, feeding the positional strategy on resolver
// pages. Quality-layout sections establish none.
func sectionEpisodeCount(section filmdex.Section) int {
	var max int
	for _, eg := range section.EpisodeGroups {
		if n := eg.Episodes.Len(); n > max {
			max = n
		}
	}
	return max
}
