package domain

import (
	"path/filepath"
	"strings"
)

// RawFile is a named byte buffer supplied at the file input boundary.
// It is the extractor's input before normalisation into a Source.
type RawFile struct {
	// Name is the declared filename (or user-given label).
	Name string

	// MIMEType is an optional content type hint (e.g., "application/pdf").
	// Dispatch prefers the extension of Name and only falls back to this.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// Extension returns the lower-cased extension of the declared name, including the dot.
func (f RawFile) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Size returns the content length in bytes.
func (f RawFile) Size() int {
	return len(f.Content)
}
