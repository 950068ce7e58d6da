package driven

import (
	"context"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// Extractor converts a raw file of one format family into plain text.
type Extractor interface {
	// Kind returns the source kind produced by this extractor.
	Kind() domain.SourceKind

	// Extensions returns the lower-cased file extensions handled, including the dot.
	Extensions() []string

	// MIMETypes returns the MIME hints handled when the extension is unknown.
	MIMETypes() []string

	// Extract reads the file. An empty Text is a valid result.
	Extract(ctx context.Context, raw *domain.RawFile) (*ExtractResult, error)
}

// ExtractResult contains the output of an extraction.
type ExtractResult struct {
	// Text is the extracted plain text.
	Text string

	// Pages is the literal page or slide count, or 0 for unpaginated formats.
	Pages int
}

// ExtractorRegistry selects the extractor for a file.
type ExtractorRegistry interface {
	// Lookup returns the extractor for a file, by extension then MIME hint.
	// Returns domain.ErrUnsupportedFormat when nothing matches.
	Lookup(raw *domain.RawFile) (Extractor, error)

	// Extensions returns every supported extension, sorted.
	Extensions() []string
}

// ExtractionCache remembers extraction results keyed by content digest.
type ExtractionCache interface {
	// Get returns a cached result.
	Get(key string) (*ExtractResult, bool)

	// Put stores a result.
	Put(key string, result *ExtractResult)
}
