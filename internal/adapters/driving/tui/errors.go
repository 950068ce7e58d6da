package tui

import "errors"

// ErrMissingStudyService is returned when the study service is not provided.
var ErrMissingStudyService = errors.New("tui: study service is required")

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("tui: ingest service is required")

// ErrMissingSession is returned when no session is provided.
var ErrMissingSession = errors.New("tui: session is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// ErrUnknownCommand is returned for an unrecognised slash command.
var ErrUnknownCommand = errors.New("unknown command")
