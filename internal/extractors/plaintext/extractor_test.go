package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

func TestExtractor_Metadata(t *testing.T) {
	e := New()

	assert.Equal(t, domain.SourceKindText, e.Kind())
	assert.Contains(t, e.Extensions(), ".md")
	assert.Contains(t, e.Extensions(), ".txt")
	assert.Contains(t, e.MIMETypes(), "text/plain")
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"utf8", []byte("Mitosis → two cells"), "Mitosis → two cells"},
		{"invalid bytes replaced", []byte{'a', 0xff, 0xfe, 'b'}, "a\uFFFDb"},
		{"bom stripped", []byte("\xEF\xBB\xBFheading"), "heading"},
		{"crlf normalised", []byte("one\r\ntwo\rthree"), "one\ntwo\nthree"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New().Extract(context.Background(), &domain.RawFile{Name: "a.txt", Content: tt.content})

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
			assert.Zero(t, res.Pages)
		})
	}
}

func TestExtract_NilFile(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
