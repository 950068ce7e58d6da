package services

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// SummaryPromptData fills the summary template.
type SummaryPromptData struct {
	Depth       string
	Guidance    string
	SourceCount int
	Units       int
	Corpus      string
}

// SectionsPromptData fills the section detection template.
type SectionsPromptData struct {
	MaxSections int
	Units       int
	Sources     []string
	Sample      string
}

// AnalysisPromptData fills the section analysis template.
type AnalysisPromptData struct {
	Index       int
	Title       string
	StartUnit   int
	EndUnit     int
	Description string
	SourceName  string
	Material    string
}

// KeyConceptsPromptData fills the key concepts template.
type KeyConceptsPromptData struct {
	Corpus string
}

// DeckPromptData fills the slide deck template.
type DeckPromptData struct {
	Slides         int
	MaxPoints      int
	Title          string
	Focus          string
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
	Corpus         string
}

// ChatPromptData fills the chat system template.
type ChatPromptData struct {
	SourceNames []string
	Corpus      string
}

// TranscriptionPromptData fills the audio transcription template.
type TranscriptionPromptData struct {
	FileName string
}

// DefaultPrompts returns the built-in template for every prompt name.
// The returned map is a copy and may be modified.
func DefaultPrompts() map[string]string {
	out := make(map[string]string, len(defaultPrompts))
	for k, v := range defaultPrompts {
		out[k] = v
	}
	return out
}

//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSummary: `You are an expert tutor preparing study notes.
Summarise the study material below in Markdown.

Material: {{.SourceCount}} source(s), about {{.Units}} page(s). Depth: {{.Depth}}.
{{.Guidance}}

Use headings and bullet points. Do not invent facts that are not in the material.

STUDY MATERIAL:
{{.Corpus}}`,

	driven.PromptSections: `You are analysing study material to build a navigable table of contents.
The material has about {{.Units}} page(s) in total and comes from these sources:
{{range .Sources}}- {{.}}
{{end}}
Identify at most {{.MaxSections}} logical sections (chapters, units or main topics) in reading order.
Page numbers are 1-based and must lie between 1 and {{.Units}}.
If there is no clear structure, return a single section covering pages 1 to {{.Units}}.

Respond with JSON only, in exactly this shape:
{"sections":[{"index":1,"title":"...","start_unit":1,"end_unit":3,"short_description":"one sentence","source_name":"file the section comes from"}]}

SAMPLE OF THE MATERIAL:
{{.Sample}}`,

	driven.PromptSectionAnalysis: `You are an expert tutor. Analyse section {{.Index}} "{{.Title}}" (pages {{.StartUnit}} to {{.EndUnit}}){{if .SourceName}} from "{{.SourceName}}"{{end}}.
{{if .Description}}Section description: {{.Description}}
{{end}}
Write a Markdown study guide for this section only:
- an overview paragraph
- the key ideas, at most 8 bullet points
- important definitions
- 3 review questions with short answers

MATERIAL:
{{.Material}}`,

	driven.PromptKeyConcepts: `You are an expert in pedagogy and accelerated learning.
Extract the most important concepts from the text below.
Format the answer as a Markdown table with exactly three columns:
| Concept | Simplified definition | Example / analogy |
Return only the table.

TEXT:
{{.Corpus}}`,

	driven.PromptSlideDeck: `You are designing a lecture slide deck from study material.
Create exactly {{.Slides}} slides{{if .Title}} for a deck titled "{{.Title}}"{{end}}.{{if .Focus}} Focus on: {{.Focus}}.{{end}}
The first slide must be a "title" slide and the last slide a "conclusion" slide.
Concept slides have at most {{.MaxPoints}} short points.

Respond with JSON only, in exactly this shape:
{
  "title": "deck title",
  "subtitle": "deck subtitle",
  "primary_color": "{{.PrimaryColor}}",
  "secondary_color": "{{.SecondaryColor}}",
  "accent_color": "{{.AccentColor}}",
  "slides": [
    {"type": "title", "title": "...", "subtitle": "..."},
    {"type": "concept", "title": "...", "points": ["..."], "speaker_note": "..."},
    {"type": "quote", "title": "...", "quote": "...", "attribution": "..."},
    {"type": "table", "title": "...", "headers": ["...", "..."], "rows": [["...", "..."]]},
    {"type": "conclusion", "title": "...", "points": ["..."], "closing": "..."}
  ]
}
Colors are six hex digits without "#". Table rows never have more cells than headers.

STUDY MATERIAL:
{{.Corpus}}`,

	driven.PromptChatSystem: `You are a study assistant answering questions about the material loaded by the student.
Sources: {{range $i, $n := .SourceNames}}{{if $i}}, {{end}}{{$n}}{{end}}

Answer only from the material below. Cite the source name when it helps.
If the question is unrelated to the material, say politely that you can only answer questions about the loaded material.
Be concise and use Markdown.

MATERIAL:
{{.Corpus}}`,

	driven.PromptTranscription: `Transcribe the attached audio{{if .FileName}} from "{{.FileName}}"{{end}} verbatim.
Return only the transcript as plain text, with a paragraph break between speakers or topics.`,
}

// Prompts renders prompt templates loaded from a PromptStore.
// Parsed templates are cached by their source text.
type Prompts struct {
	store driven.PromptStore

	mu     sync.Mutex
	parsed map[string]*template.Template
}

// NewPrompts creates a renderer. A nil store uses the built-in templates.
func NewPrompts(store driven.PromptStore) *Prompts {
	return &Prompts{
		store:  store,
		parsed: make(map[string]*template.Template),
	}
}

// Render executes the named template with data.
func (p *Prompts) Render(name string, data any) (string, error) {
	tmpl, err := p.template(name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", name, err)
	}
	return b.String(), nil
}

func (p *Prompts) template(name string) (*template.Template, error) {
	text := p.source(name)
	if text == "" {
		return nil, fmt.Errorf("prompt %q: not found", name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := name + "\x00" + text
	if tmpl, ok := p.parsed[key]; ok {
		return tmpl, nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %q: %w", name, err)
	}
	p.parsed[key] = tmpl
	return tmpl, nil
}

// source returns the store's template, falling back to the built-in one.
func (p *Prompts) source(name string) string {
	if p.store != nil {
		text, err := p.store.Load(name)
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		if err != nil {
			logger.Warn("Prompt %q unavailable, using built-in default: %v", name, err)
		}
	}
	return defaultPrompts[name]
}
