package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRawFile_Extension tests extension normalisation
func TestRawFile_Extension(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		expected string
	}{
		{"lower case", "notes.pdf", ".pdf"},
		{"upper case", "SLIDES.PPTX", ".pptx"},
		{"nested path", "course/week1/intro.Docx", ".docx"},
		{"multiple dots", "archive.tar.csv", ".csv"},
		{"no extension", "README", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RawFile{Name: tt.file}.Extension())
		})
	}
}

// TestRawFile_Size tests content length
func TestRawFile_Size(t *testing.T) {
	assert.Equal(t, 0, RawFile{Name: "empty.txt"}.Size())
	assert.Equal(t, 5, RawFile{Name: "a.txt", Content: []byte("hello")}.Size())
}
