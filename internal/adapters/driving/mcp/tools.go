package mcp

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// NoInput is the input schema for tools without arguments.
type NoInput struct{}

// AddFileInput is the input schema for the add_file tool.
type AddFileInput struct {
	Path string `json:"path" jsonschema:"absolute path of the file to load"`
}

// AddFileOutput reports what an import added.
type AddFileOutput struct {
	Added    []SourceOutput `json:"added"`
	Warnings []string       `json:"warnings,omitempty"`
}

// SourceOutput describes one loaded source.
type SourceOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Pages int    `json:"pages"`
	Chars int    `json:"chars"`
}

// ListSourcesOutput is the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources    []SourceOutput `json:"sources"`
	TotalPages int            `json:"total_pages"`
}

// MarkdownOutput carries a Markdown result.
type MarkdownOutput struct {
	Markdown string `json:"markdown"`
}

// SectionsOutput is the output schema for the detect_sections tool.
type SectionsOutput struct {
	Sections []domain.Section `json:"sections"`
}

// AnalyseSectionInput is the input schema for the analyse_section tool.
type AnalyseSectionInput struct {
	Index int `json:"index" jsonschema:"section number as returned by detect_sections"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question about the loaded material"`
}

// GenerateDeckInput is the input schema for the generate_deck tool.
type GenerateDeckInput struct {
	Out    string `json:"out" jsonschema:"path to write the .pptx file to"`
	Slides int    `json:"slides,omitempty" jsonschema:"number of slides between 3 and 20 (default 8)"`
	Title  string `json:"title,omitempty" jsonschema:"deck title override"`
	Focus  string `json:"focus,omitempty" jsonschema:"topic or section to focus on"`
}

// GenerateDeckOutput is the output schema for the generate_deck tool.
type GenerateDeckOutput struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Slides int    `json:"slides"`
	Bytes  int    `json:"bytes"`
}

// ResetOutput is the output schema for the reset tool.
type ResetOutput struct {
	Reset bool `json:"reset"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_file",
		Description: "Load a study file (PDF, Word, PowerPoint, text, spreadsheet or audio) into the session",
	}, s.handleAddFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List the files loaded into the session",
	}, s.handleListSources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarise",
		Description: "Summarise all loaded material as Markdown",
	}, s.handleSummarise)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect_sections",
		Description: "Split the loaded material into at most 15 sections with page ranges",
	}, s.handleDetectSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyse_section",
		Description: "Explain one detected section in depth",
	}, s.handleAnalyseSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "key_concepts",
		Description: "List key concepts with simplified definitions and examples",
	}, s.handleKeyConcepts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about the loaded material; recent turns are remembered",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_deck",
		Description: "Build a PowerPoint slide deck from the loaded material",
	}, s.handleGenerateDeck)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset",
		Description: "Drop all loaded material, results and chat history",
	}, s.handleReset)
}

func (s *Server) handleAddFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddFileInput,
) (*mcp.CallToolResult, AddFileOutput, error) {
	if input.Path == "" {
		return nil, AddFileOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, AddFileOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}
	raw := domain.RawFile{
		Name:     filepath.Base(input.Path),
		MIMEType: mime.TypeByExtension(filepath.Ext(input.Path)),
		Content:  data,
	}

	var output AddFileOutput
	err = s.withSession(func(sess *domain.Session) error {
		report, err := s.ports.Ingest.AddFiles(ctx, sess, []domain.RawFile{raw})
		if err != nil {
			return err
		}
		for _, src := range report.Added {
			output.Added = append(output.Added, toSourceOutput(src))
		}
		for _, w := range report.Warnings {
			output.Warnings = append(output.Warnings, w.File+": "+w.Reason)
		}
		return nil
	})
	return nil, output, err
}

func (s *Server) handleListSources(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	var output ListSourcesOutput
	err := s.withSession(func(sess *domain.Session) error {
		output.Sources = make([]SourceOutput, 0, len(sess.Sources()))
		for _, src := range sess.Sources() {
			output.Sources = append(output.Sources, toSourceOutput(src))
		}
		output.TotalPages = sess.Corpus().TotalUnits
		return nil
	})
	return nil, output, err
}

func (s *Server) handleSummarise(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, MarkdownOutput, error) {
	var output MarkdownOutput
	err := s.withSession(func(sess *domain.Session) error {
		summary, err := s.ports.Study.Summarise(ctx, sess)
		output.Markdown = summary
		return err
	})
	return nil, output, err
}

func (s *Server) handleDetectSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, SectionsOutput, error) {
	var output SectionsOutput
	err := s.withSession(func(sess *domain.Session) error {
		sections, err := s.ports.Study.DetectSections(ctx, sess)
		output.Sections = sections
		return err
	})
	return nil, output, err
}

func (s *Server) handleAnalyseSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyseSectionInput,
) (*mcp.CallToolResult, MarkdownOutput, error) {
	if input.Index < 1 {
		return nil, MarkdownOutput{}, fmt.Errorf("%w: index must be 1 or more", domain.ErrInvalidInput)
	}
	var output MarkdownOutput
	err := s.withSession(func(sess *domain.Session) error {
		if len(sess.Sections()) == 0 {
			if _, err := s.ports.Study.DetectSections(ctx, sess); err != nil {
				return err
			}
		}
		analysis, err := s.ports.Study.AnalyseSection(ctx, sess, input.Index)
		output.Markdown = analysis
		return err
	})
	return nil, output, err
}

func (s *Server) handleKeyConcepts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, MarkdownOutput, error) {
	var output MarkdownOutput
	err := s.withSession(func(sess *domain.Session) error {
		table, err := s.ports.Study.KeyConcepts(ctx, sess)
		output.Markdown = table
		return err
	})
	return nil, output, err
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, MarkdownOutput, error) {
	var output MarkdownOutput
	err := s.withSession(func(sess *domain.Session) error {
		answer, err := s.ports.Chat.Ask(ctx, sess, input.Question)
		output.Markdown = answer
		return err
	})
	return nil, output, err
}

func (s *Server) handleGenerateDeck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateDeckInput,
) (*mcp.CallToolResult, GenerateDeckOutput, error) {
	if s.ports.Deck == nil {
		return nil, GenerateDeckOutput{}, ErrDeckUnavailable
	}
	if input.Out == "" {
		return nil, GenerateDeckOutput{}, fmt.Errorf("%w: out is required", domain.ErrInvalidInput)
	}

	var output GenerateDeckOutput
	err := s.withSession(func(sess *domain.Session) error {
		spec, err := s.ports.Deck.Plan(ctx, sess, domain.DeckOptions{
			Slides: input.Slides,
			Title:  input.Title,
			Focus:  input.Focus,
		})
		if err != nil {
			return err
		}
		deck, err := s.ports.Deck.Build(spec)
		if err != nil {
			return err
		}
		if err := os.WriteFile(input.Out, deck.Data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", input.Out, err)
		}
		output = GenerateDeckOutput{
			Path:   input.Out,
			Title:  spec.Title,
			Slides: len(spec.Slides),
			Bytes:  len(deck.Data),
		}
		return nil
	})
	return nil, output, err
}

func (s *Server) handleReset(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, ResetOutput, error) {
	err := s.withSession(func(sess *domain.Session) error {
		s.ports.Ingest.Reset(sess)
		return nil
	})
	return nil, ResetOutput{Reset: err == nil}, err
}

func toSourceOutput(src domain.Source) SourceOutput {
	return SourceOutput{
		ID:    src.ID,
		Name:  src.Name,
		Kind:  src.Kind.String(),
		Pages: src.UnitCount,
		Chars: src.CharCount(),
	}
}
