package httpapi

import (
	"errors"

	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
)

// Errors returned by Ports.Validate.
var (
	ErrInvalidPorts          = errors.New("httpapi: ports are required")
	ErrMissingSessionService = errors.New("httpapi: session service is required")
	ErrMissingIngestService  = errors.New("httpapi: ingest service is required")
	ErrMissingStudyService   = errors.New("httpapi: study service is required")
	ErrMissingChatService    = errors.New("httpapi: chat service is required")
	ErrMissingDeckService    = errors.New("httpapi: deck service is required")
	ErrMissingExportService  = errors.New("httpapi: export service is required")
)

// Ports aggregates the driving ports used by the API.
type Ports struct {
	Sessions driving.SessionService
	Ingest   driving.IngestService
	Study    driving.StudyService
	Chat     driving.ChatService
	Deck     driving.DeckService
	Export   driving.ExportService
}

// Validate ensures all ports are set.
func (p *Ports) Validate() error {
	switch {
	case p == nil:
		return ErrInvalidPorts
	case p.Sessions == nil:
		return ErrMissingSessionService
	case p.Ingest == nil:
		return ErrMissingIngestService
	case p.Study == nil:
		return ErrMissingStudyService
	case p.Chat == nil:
		return ErrMissingChatService
	case p.Deck == nil:
		return ErrMissingDeckService
	case p.Export == nil:
		return ErrMissingExportService
	}
	return nil
}
