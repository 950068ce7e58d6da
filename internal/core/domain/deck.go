package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Default deck colors, substituted only when the payload omits a color.
const (
	DefaultPrimaryColor   = "1E2761"
	DefaultSecondaryColor = "CADCFC"
	DefaultAccentColor    = "F96167"
)

// SlideType identifies a slide variant.
type SlideType string

// Slide variants.
const (
	SlideTypeTitle      SlideType = "title"
	SlideTypeConcept    SlideType = "concept"
	SlideTypeQuote      SlideType = "quote"
	SlideTypeTable      SlideType = "table"
	SlideTypeConclusion SlideType = "conclusion"
)

// IsValid returns true if the slide type is recognised.
func (t SlideType) IsValid() bool {
	switch t {
	case SlideTypeTitle, SlideTypeConcept, SlideTypeQuote, SlideTypeTable, SlideTypeConclusion:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SlideType) String() string {
	return string(t)
}

// SlideSpec is one entry of a deck. It is implemented only by the variant
// types in this package.
type SlideSpec interface {
	// Type returns the variant tag.
	Type() SlideType

	// Heading returns the slide title.
	Heading() string

	isSlideSpec()
}

// TitleSlide opens a deck.
type TitleSlide struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle" validate:"required"`
}

// ConceptSlide presents one idea as bullet points.
type ConceptSlide struct {
	Title       string   `json:"title" validate:"required"`
	Points      []string `json:"points" validate:"required,min=1,dive,required"`
	SpeakerNote string   `json:"speaker_note,omitempty"`
}

// QuoteSlide highlights a quotation.
type QuoteSlide struct {
	Title       string `json:"title" validate:"required"`
	Quote       string `json:"quote" validate:"required"`
	Attribution string `json:"attribution" validate:"required"`
}

// TableSlide shows a grid with a header row.
type TableSlide struct {
	Title   string     `json:"title" validate:"required"`
	Headers []string   `json:"headers" validate:"required,min=1"`
	Rows    [][]string `json:"rows" validate:"required,min=1"`
}

// ConclusionSlide closes a deck.
type ConclusionSlide struct {
	Title   string   `json:"title" validate:"required"`
	Points  []string `json:"points" validate:"required,min=1,dive,required"`
	Closing string   `json:"closing" validate:"required"`
}

// Type implements SlideSpec.
func (TitleSlide) Type() SlideType { return SlideTypeTitle }

// Type implements SlideSpec.
func (ConceptSlide) Type() SlideType { return SlideTypeConcept }

// Type implements SlideSpec.
func (QuoteSlide) Type() SlideType { return SlideTypeQuote }

// Type implements SlideSpec.
func (TableSlide) Type() SlideType { return SlideTypeTable }

// Type implements SlideSpec.
func (ConclusionSlide) Type() SlideType { return SlideTypeConclusion }

// Heading implements SlideSpec.
func (s TitleSlide) Heading() string { return s.Title }

// Heading implements SlideSpec.
func (s ConceptSlide) Heading() string { return s.Title }

// Heading implements SlideSpec.
func (s QuoteSlide) Heading() string { return s.Title }

// Heading implements SlideSpec.
func (s TableSlide) Heading() string { return s.Title }

// Heading implements SlideSpec.
func (s ConclusionSlide) Heading() string { return s.Title }

func (TitleSlide) isSlideSpec()      {}
func (ConceptSlide) isSlideSpec()    {}
func (QuoteSlide) isSlideSpec()      {}
func (TableSlide) isSlideSpec()      {}
func (ConclusionSlide) isSlideSpec() {}

// SlideDeckSpec is the validated generation target for the compiler.
type SlideDeckSpec struct {
	Title          string
	Subtitle       string
	Author         string
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
	Slides         []SlideSpec
}

// ApplyColorDefaults substitutes the default for each color left empty.
// Non-empty colors are kept verbatim and validated later by ParseColor.
func (d *SlideDeckSpec) ApplyColorDefaults() {
	if strings.TrimSpace(d.PrimaryColor) == "" {
		d.PrimaryColor = DefaultPrimaryColor
	}
	if strings.TrimSpace(d.SecondaryColor) == "" {
		d.SecondaryColor = DefaultSecondaryColor
	}
	if strings.TrimSpace(d.AccentColor) == "" {
		d.AccentColor = DefaultAccentColor
	}
}

// Color is a normalised six digit upper-case RGB hex triple without '#'.
type Color string

// ParseColor validates a hex triple. A single leading '#' is accepted.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color(strings.ToUpper(hex)), nil
}

// MustColor parses a known-good color literal and panics otherwise.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGB returns the red, green and blue components.
func (c Color) RGB() (r, g, b uint8) {
	v, err := strconv.ParseUint(string(c), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// String returns the hex representation.
func (c Color) String() string {
	return string(c)
}
