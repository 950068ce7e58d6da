package pptx

import (
	"embed"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

//go:embed parts/*
var staticParts embed.FS

// Namespaces and relationship types used across the package.
const (
	nsDrawing      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPresentation = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"

	relOfficeDocument = nsRelationship + "/officeDocument"
	relExtended       = nsRelationship + "/extended-properties"
	relCore           = nsPackageRels + "/metadata/core-properties"
	relSlideMaster    = nsRelationship + "/slideMaster"
	relSlideLayout    = nsRelationship + "/slideLayout"
	relSlide          = nsRelationship + "/slide"
	relNotesSlide     = nsRelationship + "/notesSlide"
	relNotesMaster    = nsRelationship + "/notesMaster"
	relTheme          = nsRelationship + "/theme"
	relPresProps      = nsRelationship + "/presProps"
	relViewProps      = nsRelationship + "/viewProps"
	relTableStyles    = nsRelationship + "/tableStyles"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctNotesSlide   = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctNotesMaster  = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCore         = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtended     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
)

// part is one file of the package.
type part struct {
	name string
	data []byte
}

// staticPart maps an embedded file to its package path.
type staticPart struct {
	embedded    string
	name        string
	contentType string
}

var staticLayout = []staticPart{
	{"parts/slideMaster.xml", "ppt/slideMasters/slideMaster1.xml", ctSlideMaster},
	{"parts/slideMaster.xml.rels", "ppt/slideMasters/_rels/slideMaster1.xml.rels", ""},
	{"parts/slideLayout.xml", "ppt/slideLayouts/slideLayout1.xml", ctSlideLayout},
	{"parts/slideLayout.xml.rels", "ppt/slideLayouts/_rels/slideLayout1.xml.rels", ""},
	{"parts/notesMaster.xml", "ppt/notesMasters/notesMaster1.xml", ctNotesMaster},
	{"parts/notesMaster.xml.rels", "ppt/notesMasters/_rels/notesMaster1.xml.rels", ""},
	{"parts/theme.xml", "ppt/theme/theme1.xml", ctTheme},
	{"parts/theme.xml", "ppt/theme/theme2.xml", ctTheme},
	{"parts/presProps.xml", "ppt/presProps.xml", ctPresProps},
	{"parts/viewProps.xml", "ppt/viewProps.xml", ctViewProps},
	{"parts/tableStyles.xml", "ppt/tableStyles.xml", ctTableStyles},
}

type relationships struct {
	XMLName xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Items   []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type contentTypes struct {
	XMLName   xml.Name     `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []ctDefault  `xml:"Default"`
	Overrides []ctOverride `xml:"Override"`
}

type ctDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type appProperties struct {
	XMLName     xml.Name `xml:"http://schemas.openxmlformats.org/officeDocument/2006/extended-properties Properties"`
	Application string   `xml:"Application"`
	Slides      int      `xml:"Slides"`
	Notes       int      `xml:"Notes"`
}

func marshalPart(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func newRels(items ...relationship) relationships {
	return relationships{Items: items}
}

func rel(n int, typ, target string) relationship {
	return relationship{ID: fmt.Sprintf("rId%d", n), Type: typ, Target: target}
}

// coreProperties renders docProps/core.xml. Its prefixed Dublin Core
// elements are written directly since encoding/xml cannot choose prefixes.
func coreProperties(title, author string, created time.Time) []byte {
	stamp := created.UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	fmt.Fprintf(&b, "<dc:title>%s</dc:title>", escape(title))
	fmt.Fprintf(&b, "<dc:creator>%s</dc:creator>", escape(author))
	fmt.Fprintf(&b, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, stamp)
	fmt.Fprintf(&b, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, stamp)
	b.WriteString("</cp:coreProperties>")
	return []byte(b.String())
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
