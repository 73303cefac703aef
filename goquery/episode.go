package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/filmdex/filmdex"
	"golang.org/x/net/html"
)

// defaultEpisodeHeading names the synthetic section used when a page
// has episode markers but no season heading to hang them on.
const defaultEpisodeHeading = "Episodes"

// ExtractEpisodeSections extracts episode-layout sections from a detail
// page. Season/quality headings open a new section; episode headings
// and episode markers in the walked text set the episode context for
// the anchors that follow. Anchors are captured from the siblings
// following each heading up to the next heading or horizontal rule,
// classified, and inserted into the per-type group's episode map at the
// current episode key (explicit markers win, otherwise the key is
// inferred positionally within the group; duplicate keys overwrite,
// last write wins).
//
// Positional keys are only synthesized inside sections that some
// explicit season or episode marker scoped; a section opened by a
// quality-only heading with no marker anywhere is dropped rather than
// repackaged as fake episodes.
//
// Some pages detach their buttons from the headings entirely; when the
// heading walk captures nothing, a page-wide equal-cardinality pass
// assigns buttons positionally wherever a button type's total count
// equals the matched-heading count. A nil result means the page yielded
// no episode links at all and the caller should fall back to
// quality-layout extraction.
func ExtractEpisodeSections(htmlStr string) []filmdex.Section {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil
	}

	var (
		builders []*sectionBuilder
		current  *sectionBuilder
		matched  []string // texts of matched headings, for the fallback
	)

	doc.Find("h1,h2,h3,h4,h5").Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		section := isSectionHeading(text)
		ep, marker := episodeNumber(text)
		if !section && !marker {
			return
		}
		if isSeasonHeading(text) || marker {
			matched = append(matched, text)
		}

		if section {
			current = &sectionBuilder{heading: text, scoped: isSeasonHeading(text), groups: newGroupIndex()}
			builders = append(builders, current)
		} else if current == nil {
			current = &sectionBuilder{heading: defaultEpisodeHeading, groups: newGroupIndex()}
			builders = append(builders, current)
		}
		if marker {
			current.scoped = true
		}

		// The heading's own marker seeds the episode context for
		// anchors that carry no marker of their own.
		currentEp := ""
		if marker {
			currentEp = ep
		}

		walkFollowing(sel.Nodes[0], func(n *html.Node) bool {
			if t := nodeText(n); t != "" {
				if e, ok := episodeNumber(t); ok {
					currentEp = e
					current.scoped = true
				}
			}
			for _, a := range anchorsIn(n) {
				typ := filmdex.Classify(a.label)
				label := a.label
				if label == "" {
					label = filmdex.DefaultLabel(typ)
				}
				g := current.groups.get(typ, label)
				key := currentEp
				if key == "" {
					key = strconv.Itoa(g.Episodes.Len() + 1)
				}
				g.Episodes.Set(key, a.href)
			}
			return true
		})
	})

	var sections []filmdex.Section
	for _, b := range builders {
		if section, ok := b.build(); ok {
			sections = append(sections, section)
		}
	}
	if len(sections) > 0 {
		return sections
	}
	return episodeSectionsByCardinality(doc, matched)
}

// isSectionHeading reports whether a heading opens a new section: a
// season heading, or a quality-bearing heading with a bracketed
// annotation.
func isSectionHeading(text string) bool {
	if isSeasonHeading(text) {
		return true
	}
	return headingQuality(text) != "" && annotationRe.MatchString(text)
}

// sectionBuilder accumulates episode groups for one section. scoped
// records whether any explicit season or episode marker anchored the
// section's episode keys; unscoped sections are dropped in build.
type sectionBuilder struct {
	heading string
	scoped  bool
	groups  *groupIndex
}

func (b *sectionBuilder) build() (filmdex.Section, bool) {
	if !b.scoped {
		return filmdex.Section{}, false
	}
	section := filmdex.Section{Heading: b.heading}
	for _, g := range b.groups.ordered() {
		if g.Episodes.Len() > 0 {
			section.EpisodeGroups = append(section.EpisodeGroups, *g)
		}
	}
	return section, len(section.EpisodeGroups) > 0
}

// episodeSectionsByCardinality is the page-wide fallback for pages
// whose buttons are detached from their headings: a button type whose
// total occurrence count equals the number of matched headings is
// assigned to them positionally in document order. Types with any other
// count are dropped rather than guessed.
func episodeSectionsByCardinality(doc *goquery.Document, headingTexts []string) []filmdex.Section {
	headingCount := len(headingTexts)
	if headingCount == 0 {
		return nil
	}

	groups := newGroupIndex()
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		label := strings.TrimSpace(sel.Text())
		typ := filmdex.Classify(label)
		if typ == filmdex.LinkGeneric {
			return // navigation links would satisfy the count by accident
		}
		if label == "" {
			label = filmdex.DefaultLabel(typ)
		}
		g := groups.get(typ, label)
		g.Episodes.Set(strconv.Itoa(g.Episodes.Len()+1), href)
	})

	section := filmdex.Section{Heading: headingTexts[0]}
	for _, g := range groups.ordered() {
		if g.Episodes.Len() != headingCount {
			continue
		}
		// Re-key by the headings' own episode numbers where present.
		rekeyed := filmdex.EpisodeLinkGroup{Label: g.Label, Type: g.Type}
		for i, key := range g.Episodes.Keys() {
			url, _ := g.Episodes.Get(key)
			ep, ok := episodeNumber(headingTexts[i])
			if !ok {
				ep = strconv.Itoa(i + 1)
			}
			rekeyed.Episodes.Set(ep, url)
		}
		section.EpisodeGroups = append(section.EpisodeGroups, rekeyed)
	}

	if len(section.EpisodeGroups) == 0 {
		return nil
	}
	return []filmdex.Section{section}
}

// groupIndex collects EpisodeLinkGroups by type while preserving the
// order types first appear in.
type groupIndex struct {
	order []filmdex.LinkType
	byTyp map[filmdex.LinkType]*filmdex.EpisodeLinkGroup
}

func newGroupIndex() *groupIndex {
	return &groupIndex{byTyp: make(map[filmdex.LinkType]*filmdex.EpisodeLinkGroup)}
}

// get returns the group for a type, creating it with the given label on
// first sight. The first-seen label sticks.
func (gi *groupIndex) get(typ filmdex.LinkType, label string) *filmdex.EpisodeLinkGroup {
	if g, ok := gi.byTyp[typ]; ok {
		return g
	}
	g := &filmdex.EpisodeLinkGroup{Label: label, Type: typ}
	gi.byTyp[typ] = g
	gi.order = append(gi.order, typ)
	return g
}

func (gi *groupIndex) ordered() []*filmdex.EpisodeLinkGroup {
	out := make([]*filmdex.EpisodeLinkGroup, 0, len(gi.order))
	for _, typ := range gi.order {
		out = append(out, gi.byTyp[typ])
	}
	return out
}
