package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure DeckService implements the interface.
var _ driving.DeckService = (*DeckService)(nil)

// PDFContentType is the content type of rendered decks.
const PDFContentType = "application/pdf"

// MaxConceptPoints is the number of points requested per concept slide.
// It is asked for in the prompt and not enforced on the response.
const MaxConceptPoints = 6

// DeckService plans, builds and renders slide decks.
type DeckService struct {
	gen      *Generator
	prompts  *Prompts
	compiler *Compiler
	writer   driven.DeckWriter
	renderer driven.DeckRenderer
	limits   domain.Limits
	defaults domain.DeckSettings
}

// NewDeckService creates a new deck service.
// The renderer is optional (can be nil); RenderPDF then fails with ErrRenderFailed.
func NewDeckService(
	gen *Generator,
	prompts *Prompts,
	writer driven.DeckWriter,
	renderer driven.DeckRenderer,
	limits domain.Limits,
	defaults domain.DeckSettings,
) *DeckService {
	return &DeckService{
		gen:      gen,
		prompts:  prompts,
		compiler: NewCompiler(),
		writer:   writer,
		renderer: renderer,
		limits:   limits,
		defaults: defaults,
	}
}

// Plan asks the LLM for a deck of exactly opts.Slides slides and validates it.
func (s *DeckService) Plan(ctx context.Context, sess *domain.Session, opts domain.DeckOptions) (*domain.SlideDeckSpec, error) {
	corpus, err := requireCorpus(sess)
	if err != nil {
		return nil, err
	}

	slides := opts.Slides
	if slides == 0 {
		slides = s.defaults.Slides
	}
	if slides == 0 {
		slides = domain.DefaultDeckSlides
	}
	if slides < domain.MinDeckSlides || slides > domain.MaxDeckSlides {
		return nil, fmt.Errorf("%w: slide count %d outside %d-%d",
			domain.ErrInvalidInput, slides, domain.MinDeckSlides, domain.MaxDeckSlides)
	}

	logger.Section("Slide Deck")
	text, truncated := Truncate(corpus.Text, s.limits.DeckChars)

	prompt, err := s.prompts.Render(driven.PromptSlideDeck, DeckPromptData{
		Slides:         slides,
		MaxPoints:      MaxConceptPoints,
		Title:          strings.TrimSpace(opts.Title),
		Focus:          strings.TrimSpace(opts.Focus),
		PrimaryColor:   domain.DefaultPrimaryColor,
		SecondaryColor: domain.DefaultSecondaryColor,
		AccentColor:    domain.DefaultAccentColor,
		Corpus:         text,
	})
	if err != nil {
		return nil, err
	}

	var payload deckPayload
	err = s.gen.GenerateJSON(ctx, GenerationRequest{
		Task:      "slide_deck",
		Prompt:    prompt,
		MaxTokens: DeckBudget.For(slides, s.gen.Ceiling()),
		Truncated: truncated,
	}, &payload)
	if err != nil {
		return nil, err
	}

	spec, err := payload.toSpec(slides)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(opts.Title); t != "" {
		spec.Title = t
	}
	switch {
	case strings.TrimSpace(opts.Author) != "":
		spec.Author = strings.TrimSpace(opts.Author)
	case spec.Author == "":
		spec.Author = s.defaults.Author
	}
	spec.ApplyColorDefaults()
	logger.Debug("Planned %d slide(s): %q", len(spec.Slides), spec.Title)

	sess.SetDeck(spec)
	return spec, nil
}

// Build compiles a spec and serialises it with the configured DeckWriter.
func (s *DeckService) Build(spec *domain.SlideDeckSpec) (*domain.Artifact, error) {
	if s.writer == nil {
		return nil, fmt.Errorf("no deck writer configured: %w", domain.ErrRenderFailed)
	}

	p, err := s.compiler.Compile(spec)
	if err != nil {
		return nil, err
	}

	data, err := s.writer.Write(p)
	if err != nil {
		return nil, fmt.Errorf("write deck: %w", err)
	}

	return &domain.Artifact{
		FileName:    fileSlug(p.Title, "slides") + s.writer.Extension(),
		ContentType: s.writer.ContentType(),
		Data:        data,
	}, nil
}

// RenderPDF converts a built deck to PDF through the external renderer.
func (s *DeckService) RenderPDF(ctx context.Context, deck *domain.Artifact) (*domain.Artifact, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("no renderer configured: %w", domain.ErrRenderFailed)
	}
	if deck == nil || len(deck.Data) == 0 {
		return nil, fmt.Errorf("empty deck: %w", domain.ErrInvalidInput)
	}

	data, err := s.renderer.RenderPDF(ctx, deck.Data)
	if err != nil {
		return nil, err
	}

	name := deck.FileName
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return &domain.Artifact{
		FileName:    name + ".pdf",
		ContentType: PDFContentType,
		Data:        data,
	}, nil
}
