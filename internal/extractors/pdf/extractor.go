// Package pdf extracts text from PDF documents page by page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	rpdf "rsc.io/pdf"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindPDF
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	return []string{"application/pdf"}
}

// Extract concatenates the text of every page. Pages holding only images
// contribute nothing, so a scanned document yields empty text and the
// literal page count.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile) (res *driven.ExtractResult, err error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	// rsc.io/pdf panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("read pdf: %v: %w", r, domain.ErrInvalidInput)
		}
	}()

	doc, err := rpdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := doc.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		if text := pageText(page.Content().Text); text != "" {
			pages = append(pages, text)
		}
	}

	return &driven.ExtractResult{
		Text:  strings.Join(pages, "\n\n"),
		Pages: total,
	}, nil
}

// pageText rebuilds lines from positioned glyph runs. A vertical move of
// more than half the font size starts a new line; a horizontal gap wider
// than a fifth of it becomes a space.
func pageText(runs []rpdf.Text) string {
	var b strings.Builder
	var lastY, lastEnd float64

	for i, t := range runs {
		if i > 0 {
			size := t.FontSize
			if size <= 0 {
				size = 1
			}
			switch {
			case math.Abs(t.Y-lastY) > size/2:
				b.WriteByte('\n')
			case t.X-lastEnd > size/5:
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		lastY = t.Y
		lastEnd = t.X + t.W
	}

	lines := strings.Split(b.String(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
