package goquery

import (
	"regexp"
	"strings"
)

var (
	// seasonRe matches "Season N" season markers.
	seasonRe = regexp.MustCompile(`(?i)\bSeason\s*(\d+)\b`)

	// annotationRe matches a bracketed size/quality annotation such as
	// "[720p]" or "[1.4GB/E]".
	annotationRe = regexp.MustCompile(`\[[^\[\]]+\]`)

	// qualityRe matches a resolution marker in heading text.
	qualityRe = regexp.MustCompile(`(480p|720p|1080p)`)

	// sizeRe captures a bracketed size annotation. Matches both
	// per-episode ("[700MB/E]") and total ("[4.2GB]") forms.
	sizeRe = regexp.MustCompile(`\[([^\[\]]*?\d[^\[\]]*?[MGT]B[^\[\]]*)\]`)

	// episodeRes are the accepted episode-marker shapes, tried in
	// order. An explicit "Episode N" form always wins over the
	// terser variants.
	episodeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bEpisodes?\s*:?\s*(\d+)\b`),
		regexp.MustCompile(`(?i)-\s*Episode\s*(\d+)\s*-`),
		regexp.MustCompile(`(?i)\bS\d{1,2}\s*E(\d{1,3})\b`),
		regexp.MustCompile(`(?i)\bEp\.?\s*(\d{1,3})\b`),
	}
)

// isSeasonHeading reports whether text is a season heading: a season
// marker plus a bracketed size/quality annotation. The annotation
// requirement filters prose headings like "Season 2 Review".
func isSeasonHeading(text string) bool {
	return seasonRe.MatchString(text) && annotationRe.MatchString(text)
}

// episodeNumber extracts an episode number from text, trying the
// accepted marker shapes in order.
func episodeNumber(text string) (string, bool) {
	for _, re := range episodeRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// isEpisodeHeading reports whether text contains an episode marker.
func isEpisodeHeading(text string) bool {
	_, ok := episodeNumber(text)
	return ok
}

// headingQuality extracts the resolution marker from heading text, or
// returns "" when the heading carries none.
func headingQuality(text string) string {
	return qualityRe.FindString(text)
}

// headingSize extracts the bracketed size annotation from heading text,
// or returns "" when the heading carries none. Explicitly blank
// brackets normalize to "".
func headingSize(text string) string {
	m := sizeRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
