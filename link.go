package filmdex

import (
	"net/url"
	"strings"
)

// LinkType identifies the hoster family behind a download button.
// It is derived purely from the button's label text.
type LinkType string

// Known hoster families. LinkGeneric is the catch-all for labels that
// match no known keyword.
const (
	LinkDirect    LinkType = "direct"
	LinkCloud     LinkType = "cloud"
	LinkGDFlix    LinkType = "gdflix"
	LinkFilepress LinkType = "filepress"
	LinkGDTot     LinkType = "gdtot"
	LinkBatch     LinkType = "batch"
	LinkInstant   LinkType = "instant"
	LinkSharer    LinkType = "sharer"
	LinkGeneric   LinkType = "generic"
)

// classifierTable maps label keywords to link types. Order matters:
// batch labels often embed a mirror name (e.g. "Batch/Zip V-Cloud"),
// so the batch keywords must be checked first. Matching is
// case-sensitive because the source site capitalizes button labels
// consistently and lowercased occurrences appear in unrelated prose.
var classifierTable = []struct {
	keyword string
	typ     LinkType
}{
	{"Batch", LinkBatch},
	{"Zip", LinkBatch},
	{"V-Cloud", LinkCloud},
	{"Cloud", LinkCloud},
	{"Instant", LinkInstant},
	{"GDFlix", LinkGDFlix},
	{"G-Direct", LinkGDFlix},
	{"Filepress", LinkFilepress},
	{"GDToT", LinkGDTot},
	{"Sharer", LinkSharer},
	{"Direct", LinkDirect},
	{"Fast Server", LinkDirect},
}

// Classify returns the link type for a button label. It is a pure,
// total function: the first matching keyword in the classifier table
// wins, and labels matching nothing classify as LinkGeneric. Both
// extraction and resolution use this same function so a link's
// classification is stable whether seen before or after resolution.
func Classify(label string) LinkType {
	for _, entry := range classifierTable {
		if strings.Contains(label, entry.keyword) {
			return entry.typ
		}
	}
	return LinkGeneric
}

// defaultLabels are substitute labels for unlabeled anchors.
var defaultLabels = map[LinkType]string{
	LinkDirect:    "Direct Download",
	LinkCloud:     "Cloud Download",
	LinkGDFlix:    "GDFlix",
	LinkFilepress: "Filepress",
	LinkGDTot:     "GDToT",
	LinkBatch:     "Batch/Zip",
	LinkInstant:   "Instant Download",
	LinkSharer:    "Sharer",
}

// DefaultLabel returns a type-derived label for anchors that carry no
// text of their own. Generic and unknown types get "Download".
func DefaultLabel(typ LinkType) string {
	if label, ok := defaultLabels[typ]; ok {
		return label
	}
	return "Download"
}

// DownloadLink is a single download button: its full label text
// (including any embedded size annotation, which downstream consumers
// parse out of it), its URL, and its classified type.
type DownloadLink struct {
	Label string   `json:"label"`
	URL   string   `json:"url"`
	Type  LinkType `json:"type"`
}

// HostSet is a set of host substrings identifying indirect resolver
// hosts: URLs on these hosts do not serve files directly but lead to a
// page containing the final download buttons.
type HostSet []string

// DefaultResolverHosts returns the built-in set of known resolver
// hosts.
func DefaultResolverHosts() HostSet {
	return HostSet{
		"vcloud", "v-cloud", "gdflix", "filepress",
		"gdtot", "fastdl", "sharer", "links.",
	}
}

// MatchURL reports whether the URL's host belongs to the set. Invalid
// or host-less URLs never match.
func (h HostSet) MatchURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, marker := range h {
		if strings.Contains(host, marker) {
			return true
		}
	}
	return false
}
