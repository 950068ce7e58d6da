package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// deckPayload is the JSON contract for a generated slide deck.
type deckPayload struct {
	Title          string            `json:"title"`
	Subtitle       string            `json:"subtitle"`
	Author         string            `json:"author"`
	PrimaryColor   string            `json:"primary_color"`
	SecondaryColor string            `json:"secondary_color"`
	AccentColor    string            `json:"accent_color"`
	Slides         []json.RawMessage `json:"slides"`
}

type slideHeader struct {
	Type domain.SlideType `json:"type"`
}

// ParseDeckSpec decodes an LLM response into a validated SlideDeckSpec.
// A response that is not JSON is ErrMalformedResponse; a slide that misses
// required fields for its type is ErrInvalidDeckSpec. When expected > 0 the
// slide count must match it exactly.
func ParseDeckSpec(raw string, expected int) (*domain.SlideDeckSpec, error) {
	var payload deckPayload
	if err := DecodeJSON(raw, &payload); err != nil {
		return nil, err
	}
	return payload.toSpec(expected)
}

func (payload *deckPayload) toSpec(expected int) (*domain.SlideDeckSpec, error) {
	spec := &domain.SlideDeckSpec{
		Title:          strings.TrimSpace(payload.Title),
		Subtitle:       strings.TrimSpace(payload.Subtitle),
		Author:         strings.TrimSpace(payload.Author),
		PrimaryColor:   payload.PrimaryColor,
		SecondaryColor: payload.SecondaryColor,
		AccentColor:    payload.AccentColor,
		Slides:         make([]domain.SlideSpec, 0, len(payload.Slides)),
	}

	for i, msg := range payload.Slides {
		slide, err := decodeSlide(msg)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		spec.Slides = append(spec.Slides, slide)
	}

	if len(spec.Slides) == 0 {
		return nil, fmt.Errorf("%w: no slides", domain.ErrInvalidDeckSpec)
	}
	if expected > 0 && len(spec.Slides) != expected {
		return nil, fmt.Errorf("%w: requested %d, got %d", domain.ErrSlideCountMismatch, expected, len(spec.Slides))
	}
	return spec, nil
}

// ValidateSlide checks the required fields of one slide variant.
func ValidateSlide(slide domain.SlideSpec) error {
	if slide == nil {
		return fmt.Errorf("%w: nil slide", domain.ErrInvalidDeckSpec)
	}
	if err := validate.Struct(slide); err != nil {
		return fmt.Errorf("%w: %s slide: %s", domain.ErrInvalidDeckSpec, slide.Type(), describeValidation(err))
	}
	if t, ok := slide.(domain.TableSlide); ok {
		for r, row := range t.Rows {
			if len(row) == 0 {
				return fmt.Errorf("%w: table row %d is empty", domain.ErrInvalidDeckSpec, r+1)
			}
			if len(row) > len(t.Headers) {
				return fmt.Errorf("%w: table row %d has %d cells for %d headers",
					domain.ErrInvalidDeckSpec, r+1, len(row), len(t.Headers))
			}
		}
	}
	return nil
}

// ValidateDeckSpec checks every slide of an already built spec.
func ValidateDeckSpec(spec *domain.SlideDeckSpec) error {
	if spec == nil || len(spec.Slides) == 0 {
		return fmt.Errorf("%w: no slides", domain.ErrInvalidDeckSpec)
	}
	for i, slide := range spec.Slides {
		if err := ValidateSlide(slide); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

func decodeSlide(msg json.RawMessage) (domain.SlideSpec, error) {
	var header slideHeader
	if err := json.Unmarshal(msg, &header); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	var slide domain.SlideSpec
	var err error
	switch domain.SlideType(strings.ToLower(string(header.Type))) {
	case domain.SlideTypeTitle:
		slide, err = decodeVariant[domain.TitleSlide](msg)
	case domain.SlideTypeConcept:
		slide, err = decodeVariant[domain.ConceptSlide](msg)
	case domain.SlideTypeQuote:
		slide, err = decodeVariant[domain.QuoteSlide](msg)
	case domain.SlideTypeTable:
		slide, err = decodeVariant[domain.TableSlide](msg)
	case domain.SlideTypeConclusion:
		slide, err = decodeVariant[domain.ConclusionSlide](msg)
	default:
		return nil, fmt.Errorf("%w: unknown slide type %q", domain.ErrInvalidDeckSpec, header.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := ValidateSlide(slide); err != nil {
		return nil, err
	}
	return slide, nil
}

func decodeVariant[T domain.SlideSpec](msg json.RawMessage) (domain.SlideSpec, error) {
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return v, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
