package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEstimateUnits tests the unpaginated unit estimate
func TestEstimateUnits(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty text", "", 1},
		{"short text", "hello", 1},
		{"exactly one unit", strings.Repeat("a", 2000), 1},
		{"just over one unit", strings.Repeat("a", 2001), 2},
		{"five units", strings.Repeat("a", 10000), 5},
		{"multibyte counted as characters", strings.Repeat("é", 2000), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EstimateUnits(tt.text))
		})
	}
}

// TestNewSource_UnitCountInvariant tests that UnitCount is always at least one
func TestNewSource_UnitCountInvariant(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		pages int
	}{
		{"empty unpaginated", "", 0},
		{"empty paginated with zero pages", "", 0},
		{"negative pages", "text", -3},
		{"paginated", "", 12},
		{"long unpaginated", strings.Repeat("x", 9000), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource("id", "file", SourceKindText, tt.text, tt.pages)
			assert.GreaterOrEqual(t, src.UnitCount, 1)
		})
	}
}

// TestNewSource_Paginated tests that literal page counts are kept
func TestNewSource_Paginated(t *testing.T) {
	src := NewSource("id-1", "book.pdf", SourceKindPDF, "short", 42)

	assert.Equal(t, "id-1", src.ID)
	assert.Equal(t, "book.pdf", src.Name)
	assert.Equal(t, SourceKindPDF, src.Kind)
	assert.Equal(t, 42, src.UnitCount)
	assert.True(t, src.Paginated)
	assert.False(t, src.AddedAt.IsZero())
}

// TestNewSource_Unpaginated tests that unpaginated sources use the estimate
func TestNewSource_Unpaginated(t *testing.T) {
	src := NewSource("id-2", "notes.txt", SourceKindText, strings.Repeat("a", 4500), 0)

	assert.Equal(t, 3, src.UnitCount)
	assert.False(t, src.Paginated)
}

// TestSource_IsEmpty tests whitespace-only detection
func TestSource_IsEmpty(t *testing.T) {
	assert.True(t, Source{Text: ""}.IsEmpty())
	assert.True(t, Source{Text: " \n\t\r "}.IsEmpty())
	assert.False(t, Source{Text: "  a "}.IsEmpty())
}

// TestSourceKind_Label tests banner labels
func TestSourceKind_Label(t *testing.T) {
	tests := []struct {
		kind     SourceKind
		label    string
		expected bool
	}{
		{SourceKindPDF, "PDF", true},
		{SourceKindWord, "Word", true},
		{SourceKindPowerPoint, "PowerPoint", true},
		{SourceKindText, "Text", true},
		{SourceKindSpreadsheet, "Spreadsheet", true},
		{SourceKindAudio, "Audio", true},
		{SourceKind("video"), "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.kind.Label())
			assert.Equal(t, tt.expected, tt.kind.IsValid())
		})
	}
}
