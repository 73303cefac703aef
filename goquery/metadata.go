package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/filmdex/filmdex"
	"golang.org/x/net/html"
)

// Ensure MetadataExtractor implements filmdex.MetadataExtractor at compile time.
var _ filmdex.MetadataExtractor = (*MetadataExtractor)(nil)

var (
	yearRe = regexp.MustCompile(`\((19|20)\d{2}\)`)

	// infoLineRe matches "Key: value" lines in the release info block.
	infoLineRe = regexp.MustCompile(`(?i)^\s*(Language|Quality|Format)\s*:\s*(.+)$`)

	synopsisHeadingRe = regexp.MustCompile(`(?i)(Synopsis|Storyline|Plot)`)
	screenshotRe      = regexp.MustCompile(`(?i)Screen\s*-?\s*shots?`)
)

// MetadataExtractor extracts release metadata from detail pages using
// selectors common to stock-CMS catalog themes.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata pulls title, year, language/quality/format info
// lines, the synopsis block, and screenshot images out of a detail
// page. Fields the page doesn't carry stay empty; malformed values are
// skipped, never fatal.
func (e *MetadataExtractor) ExtractMetadata(htmlStr string) (*filmdex.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, filmdex.Errorf(filmdex.EINVALID, "failed to parse HTML: %v", err)
	}

	md := &filmdex.Metadata{}

	md.Title = pageTitle(doc)
	if m := yearRe.FindString(md.Title); m != "" {
		md.Year = strings.Trim(m, "()")
	}

	// Info lines live in the paragraphs and list items of the entry
	// body, one "Key: value" pair per line.
	doc.Find(".entry-content p, .entry-content li, article p, article li").Each(func(_ int, sel *goquery.Selection) {
		for _, line := range strings.Split(sel.Text(), "\n") {
			m := infoLineRe.FindStringSubmatch(strings.TrimSpace(line))
			if m == nil {
				continue
			}
			value := strings.TrimSpace(m[2])
			switch strings.ToLower(m[1]) {
			case "language":
				if md.Language == "" {
					md.Language = value
				}
			case "quality":
				if md.Quality == "" {
					md.Quality = value
				}
			case "format":
				if md.Format == "" {
					md.Format = value
				}
			}
		}
	})

	md.SynopsisHTML = synopsisHTML(doc)
	md.Screenshots = screenshots(doc)

	return md, nil
}

// pageTitle prefers the entry heading, falling back to og:title.
func pageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("h1.entry-title, article h1, h1").First().Text()); title != "" {
		return title
	}
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}

// synopsisHTML returns the HTML of the paragraph following a
// synopsis-style heading, falling back to the meta description.
func synopsisHTML(doc *goquery.Document) string {
	var out string
	doc.Find("h1,h2,h3,h4,h5").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !synopsisHeadingRe.MatchString(sel.Text()) {
			return true
		}
		if len(sel.Nodes) == 0 {
			return true
		}
		next := firstElementAfter(sel.Nodes[0])
		if next == nil {
			return true
		}
		if h := renderInner(next); strings.TrimSpace(h) != "" {
			out = h
			return false
		}
		return true
	})
	if out != "" {
		return out
	}
	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		return "<p>" + strings.TrimSpace(content) + "</p>"
	}
	return ""
}

// screenshots collects image URLs following a screenshots heading; when
// no such heading exists, every entry-body image except the first (the
// poster) counts.
func screenshots(doc *goquery.Document) []string {
	var urls []string

	doc.Find("h1,h2,h3,h4,h5").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !screenshotRe.MatchString(sel.Text()) {
			return true
		}
		if len(sel.Nodes) == 0 {
			return true
		}
		walkFollowing(sel.Nodes[0], func(n *html.Node) bool {
			urls = append(urls, imageSourcesIn(n)...)
			return true
		})
		return len(urls) == 0
	})
	if len(urls) > 0 {
		return urls
	}

	imgs := doc.Find(".entry-content img, article img")
	imgs.Each(func(i int, sel *goquery.Selection) {
		if i == 0 && imgs.Length() > 1 {
			return // poster
		}
		if src := imageSource(sel); src != "" {
			urls = append(urls, src)
		}
	})
	return urls
}

// imageSource returns an image's URL, preferring lazy-load attributes.
func imageSource(sel *goquery.Selection) string {
	if src, ok := sel.Attr("data-src"); ok && src != "" {
		return src
	}
	src, _ := sel.Attr("src")
	return src
}
