package crawl

import (
	"fmt"

	"github.com/filmdex/filmdex"
)

// AssembleSections splices resolved links back into the extracted
// sections and computes the document's link statistics. Resolutions are
// keyed by the original link URL; links with no resolution entry pass
// through unchanged. Groups and sections left without any links are
// dropped. The input sections are not modified.
func AssembleSections(sections []filmdex.Section, resolutions map[string]filmdex.Resolution) ([]filmdex.Section, filmdex.LinkStats) {
	var stats filmdex.LinkStats
	var out []filmdex.Section

	for _, section := range sections {
		assembled := filmdex.Section{Heading: section.Heading}

		for _, group := range section.Groups {
			spliceGroup(&assembled, group, resolutions, &stats)
		}
		for _, eg := range section.EpisodeGroups {
			spliceEpisodeGroup(&assembled, eg, resolutions, &stats)
		}

		if !assembled.Empty() {
			out = append(out, assembled)
		}
	}

	return out, stats
}

// spliceGroup rebuilds one flat link group. An episodic resolution moves
// its links into the section's episode groups; a batch resolution forms
// its own group named after the batch button.
func spliceGroup(section *filmdex.Section, group filmdex.LinkGroup, resolutions map[string]filmdex.Resolution, stats *filmdex.LinkStats) {
	rebuilt := filmdex.LinkGroup{
		Name:    group.Name,
		Quality: group.Quality,
		Size:    group.Size,
	}

	for _, link := range group.Links {
		res, ok := resolutions[link.URL]
		if !ok {
			rebuilt.Links = append(rebuilt.Links, link)
			stats.Add(link.Type)
			continue
		}
		if res.Unresolved {
			rebuilt.Links = append(rebuilt.Links, link)
			stats.Add(link.Type)
			stats.Unresolved++
			continue
		}

		switch {
		case res.BatchName != "":
			section.Groups = append(section.Groups, batchGroup(res, group, stats))
		case len(res.EpisodeGroups) > 0:
			for _, eg := range res.EpisodeGroups {
				section.EpisodeGroups = append(section.EpisodeGroups, eg)
				countEpisodes(eg, stats)
			}
		default:
			rebuilt.Links = append(rebuilt.Links, res.Links...)
			for _, l := range res.Links {
				stats.Add(l.Type)
			}
		}
	}

	if len(rebuilt.Links) > 0 {
		if rebuilt.Name == "" {
			rebuilt.Name = rebuilt.Links[0].Label
		}
		// Prepend so the group keeps its original position ahead of any
		// batch groups spliced out of its own links.
		section.Groups = append([]filmdex.LinkGroup{rebuilt}, section.Groups...)
	}
}

// batchGroup flattens a batch resolution into a single group named after
// the batch button. Episodic outcomes flatten with episode-suffixed
// labels so nothing is lost.
func batchGroup(res filmdex.Resolution, origin filmdex.LinkGroup, stats *filmdex.LinkStats) filmdex.LinkGroup {
	group := filmdex.LinkGroup{
		Name:    res.BatchName,
		Quality: origin.Quality,
		Size:    origin.Size,
	}

	if len(res.EpisodeGroups) > 0 {
		for _, eg := range res.EpisodeGroups {
			for _, ep := range eg.Episodes.Keys() {
				url, _ := eg.Episodes.Get(ep)
				group.Links = append(group.Links, filmdex.DownloadLink{
					Label: fmt.Sprintf("%s [Episode %s]", eg.Label, ep),
					URL:   url,
					Type:  eg.Type,
				})
				stats.Add(eg.Type)
			}
		}
		return group
	}

	for _, l := range res.Links {
		group.Links = append(group.Links, filmdex.DownloadLink{
			Label: fmt.Sprintf("%s [%s]", l.Label, l.Type),
			URL:   l.URL,
			Type:  l.Type,
		})
		stats.Add(l.Type)
	}
	return group
}

// spliceEpisodeGroup rebuilds one episode group, entry by entry. Flat
// resolutions replace the entry's URL with the same-typed resolved link;
// links of other types discovered on the resolver page accumulate into
// sibling groups so a page offering both a fast and a direct mirror per
// episode yields two complete groups.
func spliceEpisodeGroup(section *filmdex.Section, eg filmdex.EpisodeLinkGroup, resolutions map[string]filmdex.Resolution, stats *filmdex.LinkStats) {
	rebuilt := filmdex.EpisodeLinkGroup{Label: eg.Label, Type: eg.Type}

	var siblingOrder []filmdex.LinkType
	siblings := make(map[filmdex.LinkType]*filmdex.EpisodeLinkGroup)
	sibling := func(typ filmdex.LinkType, label string) *filmdex.EpisodeLinkGroup {
		if g, ok := siblings[typ]; ok {
			return g
		}
		g := &filmdex.EpisodeLinkGroup{Label: label, Type: typ}
		siblings[typ] = g
		siblingOrder = append(siblingOrder, typ)
		return g
	}

	for _, ep := range eg.Episodes.Keys() {
		url, _ := eg.Episodes.Get(ep)
		res, ok := resolutions[url]
		if !ok {
			rebuilt.Episodes.Set(ep, url)
			stats.Add(eg.Type)
			continue
		}
		if res.Unresolved {
			rebuilt.Episodes.Set(ep, url)
			stats.Add(eg.Type)
			stats.Unresolved++
			continue
		}

		if len(res.EpisodeGroups) > 0 {
			// The resolver page was itself episodic: merge its entries,
			// keeping the type-matched group's entries in this group.
			for _, rg := range res.EpisodeGroups {
				target := &rebuilt
				if rg.Type != eg.Type {
					target = sibling(rg.Type, rg.Label)
				}
				for _, k := range rg.Episodes.Keys() {
					u, _ := rg.Episodes.Get(k)
					target.Episodes.Set(k, u)
					stats.Add(rg.Type)
				}
			}
			continue
		}

		for _, l := range res.Links {
			target := &rebuilt
			if l.Type != eg.Type {
				target = sibling(l.Type, l.Label)
			}
			target.Episodes.Set(ep, l.URL)
			stats.Add(l.Type)
		}
	}

	if rebuilt.Episodes.Len() > 0 {
		section.EpisodeGroups = append(section.EpisodeGroups, rebuilt)
	}
	for _, typ := range siblingOrder {
		if g := siblings[typ]; g.Episodes.Len() > 0 {
			section.EpisodeGroups = append(section.EpisodeGroups, *g)
		}
	}
}

// countEpisodes adds every entry of an episode group to the histogram.
func countEpisodes(eg filmdex.EpisodeLinkGroup, stats *filmdex.LinkStats) {
	for range eg.Episodes.Keys() {
		stats.Add(eg.Type)
	}
}
