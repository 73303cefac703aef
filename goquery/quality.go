package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/filmdex/filmdex"
	"golang.org/x/net/html"
)

// defaultSectionHeading names the synthetic section used by the
// page-wide fallback when no heading precedes the anchors.
const defaultSectionHeading = "Download Links"

// ExtractQualitySections extracts quality-layout sections from a detail
// page. Three strategies are tried in order until one yields at least
// one non-empty group:
//
//  1. h5 headings carrying a resolution marker, with the anchors in the
//     immediately following paragraph;
//  2. h3 headings matching a looser season-or-quality pattern, same
//     following-paragraph rule;
//  3. a page-wide scan that groups anchors pointing at known resolver
//     hosts by their nearest preceding heading.
//
// Each heading produces exactly one group, named after its first
// button's label rather than the heading: the heading text is
// presentational while the button label is what users search by.
// Quality and size come from the heading text and stay empty when the
// heading carries no such annotation.
func ExtractQualitySections(htmlStr string, hosts filmdex.HostSet) []filmdex.Section {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil
	}

	if sections := headingSections(doc, "h5", func(text string) bool {
		return headingQuality(text) != ""
	}); len(sections) > 0 {
		return sections
	}

	if sections := headingSections(doc, "h3", func(text string) bool {
		return isSeasonHeading(text) || headingQuality(text) != ""
	}); len(sections) > 0 {
		return sections
	}

	return resolverHostSections(doc, hosts)
}

// headingSections builds one section per matching heading, taking the
// anchors from the element immediately following the heading.
func headingSections(doc *goquery.Document, tag string, match func(string) bool) []filmdex.Section {
	var sections []filmdex.Section

	doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if !match(text) {
			return
		}

		next := firstElementAfter(sel.Nodes[0])
		if next == nil {
			return
		}
		group := groupFromAnchors(anchorsIn(next), text)
		if len(group.Links) == 0 {
			return
		}
		sections = append(sections, filmdex.Section{
			Heading: text,
			Groups:  []filmdex.LinkGroup{group},
		})
	})

	return sections
}

// resolverHostSections is the page-wide fallback: every anchor pointing
// at a known resolver host is grouped under its nearest preceding
// heading, defaulting to "Download Links" when no heading precedes it.
func resolverHostSections(doc *goquery.Document, hosts filmdex.HostSet) []filmdex.Section {
	type bucket struct {
		heading string
		anchors []anchor
	}
	var order []string
	buckets := make(map[string]*bucket)

	currentHeading := defaultSectionHeading
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if isHeadingNode(n) {
			if text := nodeText(n); text != "" {
				currentHeading = text
			}
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attrVal(n, "href"); href != "" && hosts.MatchURL(href) {
				b, ok := buckets[currentHeading]
				if !ok {
					b = &bucket{heading: currentHeading}
					buckets[currentHeading] = b
					order = append(order, currentHeading)
				}
				b.anchors = append(b.anchors, anchor{label: nodeText(n), href: href})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, root := range doc.Nodes {
		visit(root)
	}

	var sections []filmdex.Section
	for _, heading := range order {
		b := buckets[heading]
		group := groupFromAnchors(b.anchors, heading)
		if len(group.Links) == 0 {
			continue
		}
		sections = append(sections, filmdex.Section{
			Heading: heading,
			Groups:  []filmdex.LinkGroup{group},
		})
	}
	return sections
}

// groupFromAnchors builds one link group from a heading's anchors,
// pulling quality and size out of the heading text.
func groupFromAnchors(anchors []anchor, headingText string) filmdex.LinkGroup {
	group := filmdex.LinkGroup{
		Quality: headingQuality(headingText),
		Size:    headingSize(headingText),
	}
	for _, a := range anchors {
		typ := filmdex.Classify(a.label)
		label := a.label
		if label == "" {
			label = filmdex.DefaultLabel(typ)
		}
		group.Links = append(group.Links, filmdex.DownloadLink{
			Label: label,
			URL:   a.href,
			Type:  typ,
		})
	}
	if len(group.Links) > 0 {
		group.Name = group.Links[0].Label
	}
	return group
}
