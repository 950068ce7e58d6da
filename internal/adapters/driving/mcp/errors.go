// Package mcp provides an MCP (Model Context Protocol) server adapter for studydeck.
// It lets AI assistants load study material and run study tasks over one session.
package mcp

import "errors"

var (
	// ErrMissingIngestService is returned when the ingest service is not provided.
	ErrMissingIngestService = errors.New("mcp: ingest service is required")

	// ErrMissingStudyService is returned when the study service is not provided.
	ErrMissingStudyService = errors.New("mcp: study service is required")

	// ErrMissingChatService is returned when the chat service is not provided.
	ErrMissingChatService = errors.New("mcp: chat service is required")

	// ErrDeckUnavailable is returned by generate_deck when no deck service is configured.
	ErrDeckUnavailable = errors.New("mcp: deck generation is not configured")
)
