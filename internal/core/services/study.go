package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure StudyService implements the interface.
var _ driving.StudyService = (*StudyService)(nil)

// StudyService runs the corpus-level generation tasks: summary, section
// detection, per-section analysis and key concepts.
type StudyService struct {
	gen     *Generator
	prompts *Prompts
	limits  domain.Limits
}

// NewStudyService creates a new study service.
func NewStudyService(gen *Generator, prompts *Prompts, limits domain.Limits) *StudyService {
	return &StudyService{
		gen:     gen,
		prompts: prompts,
		limits:  limits,
	}
}

// Summarise produces a Markdown summary whose depth scales with the corpus size.
func (s *StudyService) Summarise(ctx context.Context, sess *domain.Session) (string, error) {
	corpus, err := requireCorpus(sess)
	if err != nil {
		return "", err
	}

	logger.Section("Summary")
	depth := domain.SummaryDepthFor(corpus.TotalUnits)
	text, truncated := Truncate(corpus.Text, s.limits.SummaryChars)
	logger.Debug("Units: %d, depth: %s", corpus.TotalUnits, depth)

	prompt, err := s.prompts.Render(driven.PromptSummary, SummaryPromptData{
		Depth:       depth.String(),
		Guidance:    depth.Guidance(),
		SourceCount: corpus.SourceCount,
		Units:       corpus.TotalUnits,
		Corpus:      text,
	})
	if err != nil {
		return "", err
	}

	summary, err := s.gen.Generate(ctx, GenerationRequest{
		Task:      "summary",
		Prompt:    prompt,
		MaxTokens: SummaryBudget.For(corpus.TotalUnits, s.gen.Ceiling()),
		Truncated: truncated,
	})
	if err != nil {
		return "", err
	}

	sess.SetSummary(summary)
	return summary, nil
}

type sectionsPayload struct {
	Sections []domain.Section `json:"sections"`
}

// DetectSections asks for the logical structure of a sample of the corpus.
// The result always holds at least one section.
func (s *StudyService) DetectSections(ctx context.Context, sess *domain.Session) ([]domain.Section, error) {
	corpus, err := requireCorpus(sess)
	if err != nil {
		return nil, err
	}

	logger.Section("Section Detection")
	sample, truncated := Truncate(corpus.Text, s.limits.SectionsChars)

	sources := sess.Sources()
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, fmt.Sprintf("%s (%s, %d page(s))", src.Name, src.Kind.Label(), src.UnitCount))
	}

	prompt, err := s.prompts.Render(driven.PromptSections, SectionsPromptData{
		MaxSections: domain.MaxSections,
		Units:       corpus.TotalUnits,
		Sources:     names,
		Sample:      sample,
	})
	if err != nil {
		return nil, err
	}

	var payload sectionsPayload
	err = s.gen.GenerateJSON(ctx, GenerationRequest{
		Task:      "sections",
		Prompt:    prompt,
		MaxTokens: SectionsBudget.For(corpus.TotalUnits, s.gen.Ceiling()),
		Truncated: truncated,
	}, &payload)
	if err != nil {
		return nil, err
	}

	sections := NormaliseSections(payload.Sections, corpus.TotalUnits)
	logger.Debug("Detected %d section(s)", len(sections))

	sess.SetSections(sections)
	return sections, nil
}

// NormaliseSections caps the list at domain.MaxSections, renumbers it 1..n and
// clamps unit ranges into [1, totalUnits]. An empty list becomes one section
// spanning the whole corpus.
func NormaliseSections(raw []domain.Section, totalUnits int) []domain.Section {
	if totalUnits < 1 {
		totalUnits = 1
	}
	if len(raw) == 0 {
		return []domain.Section{domain.WholeCorpusSection(totalUnits)}
	}
	if len(raw) > domain.MaxSections {
		raw = raw[:domain.MaxSections]
	}

	out := make([]domain.Section, 0, len(raw))
	for i, sec := range raw {
		sec.Index = i + 1
		sec.Title = strings.TrimSpace(sec.Title)
		if sec.Title == "" {
			sec.Title = fmt.Sprintf("Section %d", sec.Index)
		}
		sec.StartUnit = clamp(sec.StartUnit, 1, totalUnits)
		sec.EndUnit = clamp(sec.EndUnit, sec.StartUnit, totalUnits)
		out = append(out, sec)
	}
	return out
}

// AnalyseSection writes a study guide for one detected section. The material is
// the Source matched by the section's source name, or the whole corpus when
// nothing matches. Results are cached on the session per section index.
func (s *StudyService) AnalyseSection(ctx context.Context, sess *domain.Session, index int) (string, error) {
	corpus, err := requireCorpus(sess)
	if err != nil {
		return "", err
	}
	if cached, ok := sess.Analysis(index); ok {
		return cached, nil
	}

	section, ok := sess.Section(index)
	if !ok {
		return "", fmt.Errorf("section %d: %w", index, domain.ErrNotFound)
	}

	logger.Section("Section Analysis")
	material := corpus.Text
	sourceName := section.SourceName
	if src, ok := MatchSource(sess.Sources(), section.SourceName); ok {
		logger.Debug("Section %d matched source %q", index, src.Name)
		material = src.Text
		sourceName = src.Name
	} else {
		logger.Debug("Section %d has no matching source, using whole corpus", index)
	}
	text, truncated := Truncate(material, s.limits.AnalysisChars)

	prompt, err := s.prompts.Render(driven.PromptSectionAnalysis, AnalysisPromptData{
		Index:       section.Index,
		Title:       section.Title,
		StartUnit:   section.StartUnit,
		EndUnit:     section.EndUnit,
		Description: section.ShortDescription,
		SourceName:  sourceName,
		Material:    text,
	})
	if err != nil {
		return "", err
	}

	analysis, err := s.gen.Generate(ctx, GenerationRequest{
		Task:      "section_analysis",
		Prompt:    prompt,
		MaxTokens: AnalysisBudget.For(section.UnitSpan(), s.gen.Ceiling()),
		Truncated: truncated,
	})
	if err != nil {
		return "", err
	}

	sess.SetAnalysis(index, analysis)
	return analysis, nil
}

// MatchSource finds the Source a section refers to. The match is approximate:
// case-insensitive containment in either direction between the reference and
// the source's name or file stem. The first match in insertion order wins.
func MatchSource(sources []domain.Source, ref string) (domain.Source, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return domain.Source{}, false
	}

	for _, src := range sources {
		name := strings.ToLower(src.Name)
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if name == "" {
			continue
		}
		if strings.Contains(name, ref) || strings.Contains(ref, name) ||
			(stem != "" && strings.Contains(ref, stem)) {
			return src, true
		}
	}
	return domain.Source{}, false
}

// KeyConcepts extracts a Markdown table of the key concepts in the corpus.
func (s *StudyService) KeyConcepts(ctx context.Context, sess *domain.Session) (string, error) {
	corpus, err := requireCorpus(sess)
	if err != nil {
		return "", err
	}

	logger.Section("Key Concepts")
	text, truncated := Truncate(corpus.Text, s.limits.ConceptsChars)

	prompt, err := s.prompts.Render(driven.PromptKeyConcepts, KeyConceptsPromptData{Corpus: text})
	if err != nil {
		return "", err
	}

	table, err := s.gen.Generate(ctx, GenerationRequest{
		Task:      "key_concepts",
		Prompt:    prompt,
		MaxTokens: KeyConceptsBudget.For(corpus.TotalUnits, s.gen.Ceiling()),
		Truncated: truncated,
	})
	if err != nil {
		return "", err
	}

	sess.SetKeyConcepts(table)
	return table, nil
}

func requireCorpus(sess *domain.Session) (domain.Corpus, error) {
	if sess == nil {
		return domain.Corpus{}, fmt.Errorf("nil session: %w", domain.ErrInvalidInput)
	}
	corpus := sess.Corpus()
	if corpus.IsEmpty() {
		return domain.Corpus{}, domain.ErrEmptyCorpus
	}
	return corpus, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
