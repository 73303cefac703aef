package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/filmdex/filmdex"
	"golang.org/x/net/html"
)

// ResolverPage is the parsed outcome of one resolver page. Exactly one
// of EpisodeGroups or Links is populated when the page yielded
// anything; both empty means the page had no recognizable buttons.
type ResolverPage struct {
	// EpisodeGroups holds the episodic outcome, one group per button
	// type, links keyed by episode number.
	EpisodeGroups []filmdex.EpisodeLinkGroup

	// Links holds the flat, non-episodic outcome: one link per
	// distinct classified type, first occurrence winning.
	Links []filmdex.DownloadLink

	// Positional is set when episode assignment relied on the
	// equal-cardinality heuristic rather than explicit headings; the
	// pairing is then a guess the page gives no way to verify.
	Positional bool
}

// ParseResolverPage parses a resolver page's HTML with three detection
// strategies in priority order:
//
//  1. explicit per-episode headings on the page itself, extracted
//     exactly like episode-layout detail sections;
//  2. positional assignment, when a button type's count equals the
//     episode count supplied from the originating detail page (types
//     with any other count are dropped rather than mis-attributed);
//  3. flat collection of one link per distinct classified type.
//
// Every emitted URL was present verbatim in the page's anchors.
func ParseResolverPage(htmlStr string, episodeCount int) ResolverPage {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return ResolverPage{}
	}

	if groups := resolverEpisodeGroups(doc); len(groups) > 0 {
		return ResolverPage{EpisodeGroups: groups}
	}

	anchors := pageAnchors(doc)

	if episodeCount > 1 {
		if groups := positionalGroups(anchors, episodeCount); len(groups) > 0 {
			return ResolverPage{EpisodeGroups: groups, Positional: true}
		}
	}

	return ResolverPage{Links: flatLinks(anchors)}
}

// resolverEpisodeGroups extracts buttons under explicit episode
// headings, one group per button type.
func resolverEpisodeGroups(doc *goquery.Document) []filmdex.EpisodeLinkGroup {
	groups := newGroupIndex()

	doc.Find("h1,h2,h3,h4,h5").Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		ep, ok := episodeNumber(strings.TrimSpace(sel.Text()))
		if !ok {
			return
		}
		walkFollowing(sel.Nodes[0], func(n *html.Node) bool {
			for _, a := range anchorsIn(n) {
				typ := filmdex.Classify(a.label)
				label := a.label
				if label == "" {
					label = filmdex.DefaultLabel(typ)
				}
				groups.get(typ, label).Episodes.Set(ep, a.href)
			}
			return true
		})
	})

	var out []filmdex.EpisodeLinkGroup
	for _, g := range groups.ordered() {
		if g.Episodes.Len() > 0 {
			out = append(out, *g)
		}
	}
	return out
}

// pageAnchors collects every labeled anchor on the page in document
// order, with type classification and default labels applied.
func pageAnchors(doc *goquery.Document) []filmdex.DownloadLink {
	var out []filmdex.DownloadLink
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		label := strings.TrimSpace(sel.Text())
		typ := filmdex.Classify(label)
		if label == "" {
			label = filmdex.DefaultLabel(typ)
		}
		out = append(out, filmdex.DownloadLink{Label: label, URL: href, Type: typ})
	})
	return out
}

// positionalGroups assigns a type's buttons to episodes 1..N in
// document order wherever the type's count equals the episode count.
// Generic anchors are excluded: navigation links would otherwise
// satisfy the cardinality check by accident.
func positionalGroups(anchors []filmdex.DownloadLink, episodeCount int) []filmdex.EpisodeLinkGroup {
	var order []filmdex.LinkType
	byTyp := make(map[filmdex.LinkType][]filmdex.DownloadLink)
	for _, a := range anchors {
		if a.Type == filmdex.LinkGeneric {
			continue
		}
		if _, ok := byTyp[a.Type]; !ok {
			order = append(order, a.Type)
		}
		byTyp[a.Type] = append(byTyp[a.Type], a)
	}

	var out []filmdex.EpisodeLinkGroup
	for _, typ := range order {
		links := byTyp[typ]
		if len(links) != episodeCount {
			continue
		}
		g := filmdex.EpisodeLinkGroup{Label: links[0].Label, Type: typ}
		for i, link := range links {
			g.Episodes.Set(strconv.Itoa(i+1), link.URL)
		}
		out = append(out, g)
	}
	return out
}

// flatLinks keeps the first occurrence of each distinct type, avoiding
// near-duplicate fast/slow variants of the same mirror flooding the
// result.
func flatLinks(anchors []filmdex.DownloadLink) []filmdex.DownloadLink {
	seen := make(map[filmdex.LinkType]bool)
	var out []filmdex.DownloadLink
	for _, a := range anchors {
		if seen[a.Type] {
			continue
		}
		seen[a.Type] = true
		out = append(out, a)
	}
	return out
}
