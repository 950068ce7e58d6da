// Package docx extracts paragraph text from Word (.docx) documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// wordNS is the WordprocessingML namespace.
const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ErrNoDocumentPart indicates the archive has no word/document.xml.
var ErrNoDocumentPart = errors.New("docx: missing word/document.xml")

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindWord
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".docx"}
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
}

// Extract returns the non-empty paragraphs of the document body, one per
// line. Paragraphs inside tables are included in reading order.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open document part: %w", err)
		}
		defer rc.Close()

		paragraphs, err := paragraphs(rc)
		if err != nil {
			return nil, fmt.Errorf("parse document part: %w", err)
		}
		return &driven.ExtractResult{Text: strings.Join(paragraphs, "\n")}, nil
	}

	return nil, ErrNoDocumentPart
}

// paragraphs streams document.xml and returns the trimmed non-empty w:p texts.
func paragraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		out     []string
		current strings.Builder
		inText  bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					out = append(out, text)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return out, nil
}
