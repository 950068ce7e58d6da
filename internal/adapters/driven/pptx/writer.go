package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DeckWriter = (*Writer)(nil)

// Extension is the file extension of written packages.
const Extension = ".pptx"

// Writer serialises presentation trees into .pptx packages.
type Writer struct {
	now func() time.Time
}

// New creates a writer stamping packages with the current time.
func New() *Writer {
	return &Writer{now: time.Now}
}

// NewWithClock creates a writer with a fixed clock, for reproducible output.
func NewWithClock(now func() time.Time) *Writer {
	return &Writer{now: now}
}

// ContentType returns the MIME type of written packages.
func (w *Writer) ContentType() string {
	return driven.PPTXContentType
}

// Extension returns the file extension of written packages.
func (w *Writer) Extension() string {
	return Extension
}

// Write returns the package bytes. Slide K of the tree becomes
// ppt/slides/slideK.xml, and every slide with notes gets a notes slide.
func (w *Writer) Write(p *domain.Presentation) ([]byte, error) {
	if p == nil || len(p.Slides) == 0 {
		return nil, fmt.Errorf("write pptx: %w: no slides", domain.ErrInvalidInput)
	}

	width, height := p.Width, p.Height
	if width <= 0 || height <= 0 {
		width, height = domain.SlideWidth, domain.SlideHeight
	}

	parts, err := w.parts(p, width, height)
	if err != nil {
		return nil, fmt.Errorf("write pptx: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := w.now()
	for _, pt := range parts {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: pt.name, Method: zip.Deflate, Modified: modified})
		if err != nil {
			return nil, fmt.Errorf("write pptx part %s: %w", pt.name, err)
		}
		if _, err := f.Write(pt.data); err != nil {
			return nil, fmt.Errorf("write pptx part %s: %w", pt.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("write pptx: %w", err)
	}
	return buf.Bytes(), nil
}

// parts assembles every package part, [Content_Types].xml first.
func (w *Writer) parts(p *domain.Presentation, width, height int64) ([]part, error) {
	types := contentTypes{
		Defaults: []ctDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []ctOverride{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/docProps/core.xml", ContentType: ctCore},
			{PartName: "/docProps/app.xml", ContentType: ctExtended},
		},
	}

	var body []part
	for _, sp := range staticLayout {
		data, err := staticParts.ReadFile(sp.embedded)
		if err != nil {
			return nil, err
		}
		body = append(body, part{name: sp.name, data: data})
		if sp.contentType != "" {
			types.Overrides = append(types.Overrides, ctOverride{PartName: "/" + sp.name, ContentType: sp.contentType})
		}
	}

	notes := 0
	for i, slide := range p.Slides {
		n := i + 1
		slideRels := newRels(rel(1, relSlideLayout, "../slideLayouts/slideLayout1.xml"))
		if slide.Notes != "" {
			notes++
			slideRels.Items = append(slideRels.Items, rel(2, relNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", n)))

			notesRels, err := marshalPart(newRels(
				rel(1, relNotesMaster, "../notesMasters/notesMaster1.xml"),
				rel(2, relSlide, fmt.Sprintf("../slides/slide%d.xml", n)),
			))
			if err != nil {
				return nil, err
			}
			body = append(body,
				part{name: fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), data: notesXML(slide.Notes)},
				part{name: fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), data: notesRels},
			)
			types.Overrides = append(types.Overrides, ctOverride{
				PartName: fmt.Sprintf("/ppt/notesSlides/notesSlide%d.xml", n), ContentType: ctNotesSlide,
			})
		}

		rels, err := marshalPart(slideRels)
		if err != nil {
			return nil, err
		}
		body = append(body,
			part{name: fmt.Sprintf("ppt/slides/slide%d.xml", n), data: slideXML(slide)},
			part{name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), data: rels},
		)
		types.Overrides = append(types.Overrides, ctOverride{
			PartName: fmt.Sprintf("/ppt/slides/slide%d.xml", n), ContentType: ctSlide,
		})
	}

	presRels := newRels(
		rel(1, relSlideMaster, "slideMasters/slideMaster1.xml"),
		rel(2, relTheme, "theme/theme1.xml"),
		rel(3, relPresProps, "presProps.xml"),
		rel(4, relViewProps, "viewProps.xml"),
		rel(5, relTableStyles, "tableStyles.xml"),
		rel(6, relNotesMaster, "notesMasters/notesMaster1.xml"),
	)
	for i := range p.Slides {
		presRels.Items = append(presRels.Items, rel(slideRelBase+i, relSlide, fmt.Sprintf("slides/slide%d.xml", i+1)))
	}

	rootRels := newRels(
		rel(1, relOfficeDocument, "ppt/presentation.xml"),
		rel(2, relCore, "docProps/core.xml"),
		rel(3, relExtended, "docProps/app.xml"),
	)

	typesXML, err := marshalPart(types)
	if err != nil {
		return nil, err
	}
	rootRelsXML, err := marshalPart(rootRels)
	if err != nil {
		return nil, err
	}
	presRelsXML, err := marshalPart(presRels)
	if err != nil {
		return nil, err
	}
	appXML, err := marshalPart(appProperties{Application: "studydeck", Slides: len(p.Slides), Notes: notes})
	if err != nil {
		return nil, err
	}

	head := []part{
		{name: "[Content_Types].xml", data: typesXML},
		{name: "_rels/.rels", data: rootRelsXML},
		{name: "docProps/core.xml", data: coreProperties(p.Title, p.Author, w.now())},
		{name: "docProps/app.xml", data: appXML},
		{name: "ppt/presentation.xml", data: presentationXML(len(p.Slides), width, height)},
		{name: "ppt/_rels/presentation.xml.rels", data: presRelsXML},
	}
	return append(head, body...), nil
}
