package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

func slideXML(paragraphs ...string) string {
	var body string
	for _, p := range paragraphs {
		body += fmt.Sprintf(`<a:p><a:r><a:t>%s</a:t></a:r></a:p>`, p)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody>` + body + `</p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
}

const presentationXMLBody = `<?xml version="1.0" encoding="UTF-8"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>
    <p:sldId id="256" r:id="rId3"/>
    <p:sldId id="257" r:id="rId2"/>
  </p:sldIdLst>
</p:presentation>`

const presentationRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide2.xml"/>
</Relationships>`

func buildPackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractor_Metadata(t *testing.T) {
	e := New()

	assert.Equal(t, domain.SourceKindPowerPoint, e.Kind())
	assert.Equal(t, []string{".pptx"}, e.Extensions())
}

func TestExtract_PresentationOrder(t *testing.T) {
	content := buildPackage(t, map[string]string{
		"ppt/presentation.xml":            presentationXMLBody,
		"ppt/_rels/presentation.xml.rels": presentationRels,
		"ppt/slides/slide1.xml":           slideXML("Second", "Details"),
		"ppt/slides/slide2.xml":           slideXML("First"),
	})

	res, err := New().Extract(context.Background(), &domain.RawFile{Name: "deck.pptx", Content: content})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "[Slide 1]\nFirst\n\n[Slide 2]\nSecond\nDetails", res.Text)
}

func TestExtract_FallsBackToNumericOrder(t *testing.T) {
	content := buildPackage(t, map[string]string{
		"ppt/slides/slide10.xml": slideXML("Ten"),
		"ppt/slides/slide2.xml":  slideXML("Two"),
		"ppt/slides/slide1.xml":  slideXML(),
	})

	res, err := New().Extract(context.Background(), &domain.RawFile{Name: "deck.pptx", Content: content})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, "[Slide 1]\n\n[Slide 2]\nTwo\n\n[Slide 3]\nTen", res.Text)
}

func TestExtract_NoTextIsEmpty(t *testing.T) {
	content := buildPackage(t, map[string]string{
		"ppt/slides/slide1.xml": slideXML(),
		"ppt/slides/slide2.xml": slideXML("  "),
	})

	res, err := New().Extract(context.Background(), &domain.RawFile{Name: "pictures.pptx", Content: content})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Empty(t, res.Text)
}

func TestExtract_Errors(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New().Extract(context.Background(), &domain.RawFile{Name: "x.pptx", Content: []byte("no zip")})
	assert.Error(t, err)
}

func TestExtract_CancelledContext(t *testing.T) {
	content := buildPackage(t, map[string]string{"ppt/slides/slide1.xml": slideXML("A")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, &domain.RawFile{Name: "x.pptx", Content: content})

	assert.ErrorIs(t, err, context.Canceled)
}
