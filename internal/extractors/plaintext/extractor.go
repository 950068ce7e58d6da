// Package plaintext decodes text and Markdown files.
package plaintext

import (
	"context"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const byteOrderMark = "\uFEFF"

// Extractor handles plain text and Markdown.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindText
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".text", ".md", ".markdown"}
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	return []string{"text/plain", "text/markdown", "text/x-markdown"}
}

// Extract decodes the content as UTF-8. Invalid byte sequences become
// U+FFFD instead of failing the file.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	return &driven.ExtractResult{Text: Decode(raw.Content)}, nil
}

// Decode converts bytes to valid UTF-8 with normalised line endings and
// without a leading byte order mark.
func Decode(content []byte) string {
	text := strings.ToValidUTF8(string(content), "\uFFFD")
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
