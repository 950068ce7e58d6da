// Package richtext extracts text from legacy and open word-processing
// formats (.doc, .odt, .rtf) through docconv.
package richtext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"code.sajari.com/docconv"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// mimeByExt maps handled extensions to the MIME type docconv dispatches on.
var mimeByExt = map[string]string{
	".doc": "application/msword",
	".odt": "application/vnd.oasis.opendocument.text",
	".rtf": "application/rtf",
}

// ConvertFunc converts a document of the given MIME type to plain text.
type ConvertFunc func(r io.Reader, mimeType string) (string, error)

// Extractor handles .doc, .odt and .rtf files.
type Extractor struct {
	convert ConvertFunc
}

// New creates an extractor backed by docconv. Legacy .doc and .rtf
// conversion needs the antiword and unrtf tools on PATH.
func New() *Extractor {
	return NewWithConverter(docconvConvert)
}

// NewWithConverter creates an extractor with a custom converter.
func NewWithConverter(convert ConvertFunc) *Extractor {
	return &Extractor{convert: convert}
}

func docconvConvert(r io.Reader, mimeType string) (string, error) {
	res, err := docconv.Convert(r, mimeType, false)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindWord
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".doc", ".odt", ".rtf"}
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	return []string{"application/msword", "application/vnd.oasis.opendocument.text", "application/rtf", "text/rtf"}
}

// Extract converts the file and keeps its non-empty paragraphs, one per line.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	mimeType, ok := mimeByExt[raw.Extension()]
	if !ok {
		mimeType = strings.ToLower(raw.MIMEType)
		if mimeType == "text/rtf" {
			mimeType = "application/rtf"
		}
	}

	body, err := e.convert(bytes.NewReader(raw.Content), mimeType)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", raw.Name, err)
	}

	lines := strings.Split(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return &driven.ExtractResult{Text: strings.Join(kept, "\n")}, nil
}
