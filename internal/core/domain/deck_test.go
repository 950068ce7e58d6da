package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseColor tests hex triple validation
func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Color
		wantErr  bool
	}{
		{"plain upper", "1E2761", "1E2761", false},
		{"plain lower", "f96167", "F96167", false},
		{"leading hash", "#cadcfc", "CADCFC", false},
		{"surrounding space", " 000000 ", "000000", false},
		{"too short", "FFF", "", true},
		{"too long", "1E27610", "", true},
		{"not hex", "GGGGGG", "", true},
		{"double hash", "##1E2761", "", true},
		{"empty", "", "", true},
		{"named color", "red", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidColor))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

// TestColor_RGB tests component extraction
func TestColor_RGB(t *testing.T) {
	r, g, b := MustColor("1E2761").RGB()

	assert.Equal(t, uint8(0x1E), r)
	assert.Equal(t, uint8(0x27), g)
	assert.Equal(t, uint8(0x61), b)
}

// TestMustColor_Panics tests that invalid literals panic
func TestMustColor_Panics(t *testing.T) {
	assert.Panics(t, func() { MustColor("nope") })
}

// TestSlideDeckSpec_ApplyColorDefaults tests top-level default substitution
func TestSlideDeckSpec_ApplyColorDefaults(t *testing.T) {
	d := &SlideDeckSpec{PrimaryColor: "", SecondaryColor: "  ", AccentColor: "zzz"}

	d.ApplyColorDefaults()

	assert.Equal(t, DefaultPrimaryColor, d.PrimaryColor)
	assert.Equal(t, DefaultSecondaryColor, d.SecondaryColor)
	assert.Equal(t, "zzz", d.AccentColor, "invalid colors are not defaulted")
}

// TestSlideSpec_Variants tests the tag and heading of each variant
func TestSlideSpec_Variants(t *testing.T) {
	tests := []struct {
		spec     SlideSpec
		expected SlideType
	}{
		{TitleSlide{Title: "a"}, SlideTypeTitle},
		{ConceptSlide{Title: "a"}, SlideTypeConcept},
		{QuoteSlide{Title: "a"}, SlideTypeQuote},
		{TableSlide{Title: "a"}, SlideTypeTable},
		{ConclusionSlide{Title: "a"}, SlideTypeConclusion},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.spec.Type())
			assert.Equal(t, "a", tt.spec.Heading())
			assert.True(t, tt.spec.Type().IsValid())
		})
	}
	assert.False(t, SlideType("chart").IsValid())
}

// TestTable_DataRows tests header exclusion
func TestTable_DataRows(t *testing.T) {
	assert.Equal(t, 0, (&Table{}).DataRows())
	assert.Equal(t, 0, (&Table{Rows: [][]Cell{{{Text: "h"}}}}).DataRows())
	assert.Equal(t, 2, (&Table{Rows: [][]Cell{{{Text: "h"}}, {{Text: "a"}}, {{Text: "b"}}}}).DataRows())
}

// TestInches tests EMU conversion
func TestInches(t *testing.T) {
	assert.Equal(t, int64(914400), Inches(1))
	assert.Equal(t, int64(457200), Inches(0.5))
}
