package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

type stubExtractor struct {
	kind  domain.SourceKind
	exts  []string
	mimes []string
}

func (s *stubExtractor) Kind() domain.SourceKind { return s.kind }
func (s *stubExtractor) Extensions() []string    { return s.exts }
func (s *stubExtractor) MIMETypes() []string     { return s.mimes }
func (s *stubExtractor) Extract(context.Context, *domain.RawFile) (*driven.ExtractResult, error) {
	return &driven.ExtractResult{}, nil
}

func TestRegistry_Lookup(t *testing.T) {
	text := &stubExtractor{kind: domain.SourceKindText, exts: []string{".txt"}, mimes: []string{"text/plain"}}
	pdf := &stubExtractor{kind: domain.SourceKindPDF, exts: []string{".pdf"}, mimes: []string{"application/pdf"}}
	r := NewRegistry(text, pdf)

	tests := []struct {
		name string
		file domain.RawFile
		want driven.Extractor
	}{
		{"by extension", domain.RawFile{Name: "a.txt"}, text},
		{"extension is case-insensitive", domain.RawFile{Name: "A.PDF"}, pdf},
		{"extension wins over MIME", domain.RawFile{Name: "a.pdf", MIMEType: "text/plain"}, pdf},
		{"MIME fallback with params", domain.RawFile{Name: "upload", MIMEType: "Text/Plain; charset=utf-8"}, text},
		{"MIME fallback for unknown extension", domain.RawFile{Name: "a.bin", MIMEType: "application/pdf"}, pdf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := tt.file
			got, err := r.Lookup(&file)

			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestRegistry_Lookup_Unsupported(t *testing.T) {
	r := NewRegistry()

	_, err := r.Lookup(&domain.RawFile{Name: "image.xyz"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".xyz")

	_, err = r.Lookup(&domain.RawFile{Name: "noext"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = r.Lookup(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaultRegistry_CoversFormats(t *testing.T) {
	r := NewDefaultRegistry(nil, nil)

	want := map[string]domain.SourceKind{
		"a.pdf":  domain.SourceKindPDF,
		"a.docx": domain.SourceKindWord,
		"a.odt":  domain.SourceKindWord,
		"a.pptx": domain.SourceKindPowerPoint,
		"a.md":   domain.SourceKindText,
		"a.html": domain.SourceKindText,
		"a.eml":  domain.SourceKindText,
		"a.csv":  domain.SourceKindSpreadsheet,
		"a.xlsx": domain.SourceKindSpreadsheet,
		"a.mp3":  domain.SourceKindAudio,
		"a.webm": domain.SourceKindAudio,
	}
	for name, kind := range want {
		e, err := r.Lookup(&domain.RawFile{Name: name})
		require.NoError(t, err, name)
		assert.Equal(t, kind, e.Kind(), name)
	}

	exts := r.Extensions()
	assert.IsIncreasing(t, exts)
	assert.Contains(t, exts, ".pptx")
}

func TestDefaultRegistry_CSVByMIMEHint(t *testing.T) {
	r := NewDefaultRegistry(nil, nil)

	tests := []struct {
		name string
		raw  domain.RawFile
	}{
		{"unknown extension", domain.RawFile{Name: "grades.dat", MIMEType: "text/csv"}},
		{"no extension with charset", domain.RawFile{Name: "grades", MIMEType: "text/csv; charset=utf-8"}},
		{"upper case hint", domain.RawFile{Name: "grades.export", MIMEType: "Text/CSV"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			raw.Content = []byte("name,score\nAda,9\n")

			e, err := r.Lookup(&raw)
			require.NoError(t, err)
			require.Equal(t, domain.SourceKindSpreadsheet, e.Kind())

			res, err := e.Extract(context.Background(), &raw)
			require.NoError(t, err)
			assert.Equal(t, "name | score\nAda | 9", res.Text)
		})
	}
}
