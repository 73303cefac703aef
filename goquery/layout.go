package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/filmdex/filmdex"
)

// Ensure LayoutDetector implements filmdex.LayoutDetector at compile time.
var _ filmdex.LayoutDetector = (*LayoutDetector)(nil)

// LayoutDetector decides a detail page's layout from its headings.
type LayoutDetector struct{}

// NewLayoutDetector creates a new LayoutDetector.
func NewLayoutDetector() *LayoutDetector {
	return &LayoutDetector{}
}

// Detect scans h1–h5 headings and counts season headings ("Season N"
// plus a bracketed annotation) and episode headings. Two or more of
// either means the episode layout: a single stray heading resembling an
// episode marker is not enough evidence, since real episode-based pages
// repeat the pattern across every season/episode block. Unparseable
// HTML detects as the quality layout.
func (d *LayoutDetector) Detect(htmlStr string) filmdex.Layout {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return filmdex.LayoutQuality
	}

	var seasons, episodes int
	doc.Find("h1,h2,h3,h4,h5").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if isSeasonHeading(text) {
			seasons++
		}
		if isEpisodeHeading(text) {
			episodes++
		}
	})

	if seasons >= 2 || episodes >= 2 {
		return filmdex.LayoutEpisode
	}
	return filmdex.LayoutQuality
}
