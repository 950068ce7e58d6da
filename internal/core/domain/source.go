package domain

import (
	"time"
	"unicode/utf8"
)

// CharsPerUnit is the number of characters counted as one page-equivalent
// for formats without literal pages.
const CharsPerUnit = 2000

// SourceKind identifies the family of an ingested artifact.
type SourceKind string

// Supported source kinds.
const (
	SourceKindPDF         SourceKind = "pdf"
	SourceKindWord        SourceKind = "word"
	SourceKindPowerPoint  SourceKind = "powerpoint"
	SourceKindText        SourceKind = "text"
	SourceKindSpreadsheet SourceKind = "spreadsheet"
	SourceKindAudio       SourceKind = "audio"
)

// IsValid returns true if the kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindPDF, SourceKindWord, SourceKindPowerPoint,
		SourceKindText, SourceKindSpreadsheet, SourceKindAudio:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Label returns the display label used in corpus banners.
func (k SourceKind) Label() string {
	switch k {
	case SourceKindPDF:
		return "PDF"
	case SourceKindWord:
		return "Word"
	case SourceKindPowerPoint:
		return "PowerPoint"
	case SourceKindText:
		return "Text"
	case SourceKindSpreadsheet:
		return "Spreadsheet"
	case SourceKindAudio:
		return "Audio"
	default:
		return "Unknown"
	}
}

// Source is one ingested artifact. It is immutable once created.
type Source struct {
	// ID uniquely identifies this source within a session.
	ID string

	// Name is the display identifier (original filename or label).
	Name string

	// Kind is the artifact family.
	Kind SourceKind

	// Text is the extracted plain text. Empty is valid.
	Text string

	// UnitCount is the size proxy in pages. Always >= 1.
	UnitCount int

	// Paginated is true when UnitCount is a literal page or slide count.
	Paginated bool

	// AddedAt records when the source was created.
	AddedAt time.Time
}

// NewSource builds a Source, deriving UnitCount from pages when pages > 0
// and from the text length otherwise.
func NewSource(id, name string, kind SourceKind, text string, pages int) Source {
	s := Source{
		ID:      id,
		Name:    name,
		Kind:    kind,
		Text:    text,
		AddedAt: time.Now(),
	}
	if pages > 0 {
		s.UnitCount = pages
		s.Paginated = true
	} else {
		s.UnitCount = EstimateUnits(text)
	}
	return s
}

// EstimateUnits returns max(1, ceil(chars/CharsPerUnit)) counting runes.
func EstimateUnits(text string) int {
	n := utf8.RuneCountInString(text)
	units := (n + CharsPerUnit - 1) / CharsPerUnit
	if units < 1 {
		return 1
	}
	return units
}

// CharCount returns the number of characters in the extracted text.
func (s Source) CharCount() int {
	return utf8.RuneCountInString(s.Text)
}

// IsEmpty returns true if extraction yielded no usable text.
func (s Source) IsEmpty() bool {
	for _, r := range s.Text {
		if r != ' ' && r != '\n' && r != '\t' && r != '\r' {
			return false
		}
	}
	return true
}
