package filmdex

// DetailPage is the raw HTML of one release detail page plus its source
// URL. It is an ephemeral pipeline input and is never persisted.
type DetailPage struct {
	URL  string
	HTML string
}

// Layout identifies the structural layout of a detail page.
type Layout string

// Detail page layouts. Episode-based pages present download buttons per
// individual episode, repeated across seasons; quality-based pages
// present one button row per quality tier.
const (
	LayoutQuality Layout = "quality"
	LayoutEpisode Layout = "episode"
)

// LayoutDetector decides which structural layout a detail page uses.
type LayoutDetector interface {
	// Detect inspects the page's heading elements and returns the
	// layout. Detection is heuristic; callers must tolerate an
	// episode verdict whose extraction comes up empty and fall back
	// to quality extraction.
	Detect(html string) Layout
}

// Metadata holds release metadata extracted from a detail page.
// SynopsisHTML is the synopsis block as raw HTML; conversion to a
// storage format is a separate concern.
type Metadata struct {
	Title        string
	Year         string
	Language     string
	Quality      string
	Format       string
	SynopsisHTML string
	Screenshots  []string
}

// MetadataExtractor extracts release metadata from detail page HTML.
type MetadataExtractor interface {
	// ExtractMetadata processes raw HTML and returns release
	// metadata. Missing fields are left empty, never an error.
	ExtractMetadata(html string) (*Metadata, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment (e.g. a synopsis block)
	// into its Markdown representation.
	Convert(html string) (string, error)
}
