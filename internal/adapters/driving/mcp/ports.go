package mcp

import (
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Ingest loads files into the session.
	Ingest driving.IngestService

	// Study runs summary, section and concept tasks.
	Study driving.StudyService

	// Chat answers questions.
	Chat driving.ChatService

	// Deck builds slide decks. Optional.
	Deck driving.DeckService

	// Export renders Markdown resources. Optional.
	Export driving.ExportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Study == nil {
		return ErrMissingStudyService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
