package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

func TestDefaultPrompts_CoverEveryName(t *testing.T) {
	defaults := DefaultPrompts()

	for _, name := range driven.AllPromptNames() {
		assert.NotEmpty(t, defaults[name], "missing default prompt %q", name)
	}
}

func TestDefaultPrompts_ReturnsCopy(t *testing.T) {
	defaults := DefaultPrompts()
	defaults[driven.PromptSummary] = "changed"

	assert.NotEqual(t, "changed", DefaultPrompts()[driven.PromptSummary])
}

func TestPrompts_RenderDefaults(t *testing.T) {
	p := NewPrompts(nil)

	tests := []struct {
		name string
		data any
		want []string
	}{
		{driven.PromptSummary, SummaryPromptData{Depth: "brief", Guidance: "Be short.", SourceCount: 2, Units: 4, Corpus: "CORPUS"},
			[]string{"2 source(s)", "about 4 page(s)", "Depth: brief", "Be short.", "CORPUS"}},
		{driven.PromptSections, SectionsPromptData{MaxSections: 15, Units: 9, Sources: []string{"a.pdf", "b.txt"}, Sample: "SAMPLE"},
			[]string{"at most 15", "between 1 and 9", "- a.pdf", "- b.txt", "SAMPLE", `"sections"`}},
		{driven.PromptSectionAnalysis, AnalysisPromptData{Index: 2, Title: "Thermo", StartUnit: 3, EndUnit: 5, SourceName: "phys.pdf", Material: "MAT"},
			[]string{`section 2 "Thermo"`, "pages 3 to 5", `from "phys.pdf"`, "MAT"}},
		{driven.PromptKeyConcepts, KeyConceptsPromptData{Corpus: "TEXT"},
			[]string{"| Concept | Simplified definition | Example / analogy |", "TEXT"}},
		{driven.PromptSlideDeck, DeckPromptData{Slides: 7, MaxPoints: 6, PrimaryColor: "1E2761", SecondaryColor: "CADCFC", AccentColor: "F96167", Corpus: "BODY"},
			[]string{"exactly 7 slides", "at most 6", `"primary_color": "1E2761"`, "BODY"}},
		{driven.PromptChatSystem, ChatPromptData{SourceNames: []string{"a.pdf", "b.txt"}, Corpus: "MATERIAL"},
			[]string{"Sources: a.pdf, b.txt", "unrelated", "MATERIAL"}},
		{driven.PromptTranscription, TranscriptionPromptData{FileName: "lecture.mp3"},
			[]string{`"lecture.mp3"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Render(tt.name, tt.data)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestPrompts_StoreOverride(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{
		driven.PromptKeyConcepts: "Custom: {{.Corpus}}",
	}}
	p := NewPrompts(store)

	got, err := p.Render(driven.PromptKeyConcepts, KeyConceptsPromptData{Corpus: "x"})

	require.NoError(t, err)
	assert.Equal(t, "Custom: x", got)
}

func TestPrompts_StoreErrorFallsBackToDefault(t *testing.T) {
	p := NewPrompts(&mockPromptStore{err: errors.New("disk gone")})

	got, err := p.Render(driven.PromptKeyConcepts, KeyConceptsPromptData{Corpus: "x"})

	require.NoError(t, err)
	assert.Contains(t, got, "Simplified definition")
}

func TestPrompts_InvalidTemplate(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{
		driven.PromptSummary: "{{.Corpus",
	}}
	p := NewPrompts(store)

	_, err := p.Render(driven.PromptSummary, SummaryPromptData{})

	assert.Error(t, err)
}

func TestPrompts_UnknownField(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{
		driven.PromptSummary: "{{.NoSuchField}}",
	}}
	p := NewPrompts(store)

	_, err := p.Render(driven.PromptSummary, SummaryPromptData{})

	assert.Error(t, err)
}

func TestPrompts_UnknownName(t *testing.T) {
	p := NewPrompts(nil)

	_, err := p.Render("no_such_prompt", nil)

	assert.Error(t, err)
}
