package mock

import "github.com/filmdex/filmdex"

var _ filmdex.LayoutDetector = (*LayoutDetector)(nil)

// LayoutDetector is a mock implementation of filmdex.LayoutDetector.
type LayoutDetector struct {
	DetectFn func(html string) filmdex.Layout
}

func (d *LayoutDetector) Detect(html string) filmdex.Layout {
	return d.DetectFn(html)
}

var _ filmdex.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of filmdex.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*filmdex.Metadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*filmdex.Metadata, error) {
	return e.ExtractMetadataFn(html)
}

var _ filmdex.Converter = (*Converter)(nil)

// Converter is a mock implementation of filmdex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
