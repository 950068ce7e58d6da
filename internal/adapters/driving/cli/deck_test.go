package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

func TestPdfPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"deck.pptx", "deck.pdf"},
		{"out/lecture.pptx", "out/lecture.pdf"},
		{"noext", "noext.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pdfPath(tt.in))
		})
	}
}

func TestDeckCmd_WritesPPTX(t *testing.T) {
	input := writeInput(t, "notes.txt", "Entropy measures disorder.")
	out := filepath.Join(t.TempDir(), "lecture.pptx")
	svc := testServices()
	deck := &mockDeck{}
	svc.Deck = deck

	_, stderr, err := execute(t, svc, "deck", input, "-o", out, "-n", "5", "--title", "Heat", "--focus", "entropy")

	require.NoError(t, err)
	assert.Equal(t, domain.DeckOptions{Slides: 5, Title: "Heat", Focus: "entropy"}, deck.opts)
	assert.False(t, deck.rendered)
	assert.Contains(t, stderr, "Wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PPTX", string(data))
}

func TestDeckCmd_AlsoWritesPDF(t *testing.T) {
	input := writeInput(t, "notes.txt", "Entropy measures disorder.")
	dir := t.TempDir()
	out := filepath.Join(dir, "lecture.pptx")
	svc := testServices()
	deck := &mockDeck{}
	svc.Deck = deck

	_, _, err := execute(t, svc, "deck", input, "-o", out, "--pdf")

	require.NoError(t, err)
	assert.True(t, deck.rendered)
	data, err := os.ReadFile(filepath.Join(dir, "lecture.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "PDF", string(data))
}

func TestDeckCmd_SlidesOutOfRange(t *testing.T) {
	input := writeInput(t, "notes.txt", "Entropy measures disorder.")

	for _, n := range []string{"2", "21"} {
		_, _, err := execute(t, testServices(), "deck", input, "--slides", n)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "slides=%s", n)
	}
}
