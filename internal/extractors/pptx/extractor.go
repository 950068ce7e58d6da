// Package pptx extracts slide text from PowerPoint (.pptx) presentations.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const (
	drawingNS  = "http://schemas.openxmlformats.org/drawingml/2006/main"
	slideRelNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

var slidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Extractor handles PPTX presentations.
type Extractor struct{}

// New creates a new PPTX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindPowerPoint
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".pptx"}
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.presentationml.presentation"}
}

// Extract returns one "[Slide N]" block per slide in presentation order.
// Pages is the slide count. A deck without any text yields empty Text.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}

	files := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		files[f.Name] = f
	}

	order := slideOrder(files)
	if len(order) == 0 {
		return &driven.ExtractResult{}, nil
	}

	var (
		b       strings.Builder
		hasText bool
	)
	for i, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines, err := readSlide(files[name])
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Slide %d]", i+1)
		for _, line := range lines {
			b.WriteByte('\n')
			b.WriteString(line)
			hasText = true
		}
	}

	result := &driven.ExtractResult{Pages: len(order)}
	if hasText {
		result.Text = b.String()
	}
	return result, nil
}

// slideOrder returns slide part names in presentation order, read from the
// presentation's slide list. Packages without a usable list fall back to
// the numeric order of slideN.xml parts.
func slideOrder(files map[string]*zip.File) []string {
	if order, err := listedSlides(files); err == nil && len(order) > 0 {
		return order
	}

	type numbered struct {
		n    int
		name string
	}
	var found []numbered
	for name := range files {
		if m := slidePart.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			found = append(found, numbered{n: n, name: name})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.name
	}
	return names
}

type presentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func listedSlides(files map[string]*zip.File) ([]string, error) {
	var pres presentationXML
	if err := decodePart(files, "ppt/presentation.xml", &pres); err != nil {
		return nil, err
	}
	var rels relationshipsXML
	if err := decodePart(files, "ppt/_rels/presentation.xml.rels", &rels); err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		if rel.Type == slideRelNS {
			targets[rel.ID] = path.Clean(path.Join("ppt", rel.Target))
		}
	}

	order := make([]string, 0, len(pres.SlideIDs))
	for _, id := range pres.SlideIDs {
		target, ok := targets[id.RelID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found", id.RelID)
		}
		if _, ok := files[target]; !ok {
			return nil, fmt.Errorf("slide part %q not found", target)
		}
		order = append(order, target)
	}
	return order, nil
}

func decodePart(files map[string]*zip.File, name string, v any) error {
	f, ok := files[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, io.ErrUnexpectedEOF)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// readSlide returns the trimmed non-empty a:p paragraph texts of a slide.
func readSlide(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var (
		lines   []string
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
			if t.Name.Space != drawingNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				current.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Space != drawingNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					lines = append(lines, text)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return lines, nil
}
