// Package tui provides an interactive study console for one session.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Study runs summary, sections, analysis and key concepts.
	Study driving.StudyService

	// Chat answers questions about the corpus.
	Chat driving.ChatService

	// Ingest resets the session.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Study == nil {
		return ErrMissingStudyService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	return nil
}
