package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/filmdex/filmdex"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements filmdex.MetadataExtractor at compile time.
var _ filmdex.MetadataExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull a title and synopsis out of
// pages whose markup defeats the selector-based extractor. It is a
// fallback: only the fields content extraction can recover are filled,
// the structured annotations stay empty.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata processes raw HTML and returns release metadata.
func (e *Extractor) ExtractMetadata(rawHTML string) (*filmdex.Metadata, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &filmdex.Metadata{
		Title:        result.Metadata.Title,
		SynopsisHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
