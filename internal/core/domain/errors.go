package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or slide type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedFormat indicates no extractor handles a file's extension or MIME hint.
	// Recovered per file: the file is skipped and the batch continues.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyExtraction marks a file that produced no text. It is reported as a warning.
	ErrEmptyExtraction = errors.New("no extractable text (scanned or image-only?)")

	// ErrEmptyCorpus indicates a task was requested before any Source was added.
	ErrEmptyCorpus = errors.New("no study material loaded")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrMissingCredential indicates the API key for the active provider is absent.
	// Startup-fatal for every command that talks to the LLM.
	ErrMissingCredential = errors.New("missing LLM API credential")

	// ErrMalformedResponse indicates a JSON-contracted response could not be parsed.
	ErrMalformedResponse = errors.New("malformed LLM response")

	// ErrInvalidDeckSpec indicates a slide deck payload failed validation.
	ErrInvalidDeckSpec = errors.New("invalid slide deck")

	// ErrSlideCountMismatch indicates the model returned a different number of slides than requested.
	ErrSlideCountMismatch = errors.New("slide count mismatch")

	// ErrInvalidColor indicates a color is not a six digit RGB hex triple.
	ErrInvalidColor = errors.New("invalid hex color")

	// ErrAttachmentUnsupported indicates the provider cannot accept binary attachments.
	ErrAttachmentUnsupported = errors.New("provider does not accept attachments")

	// ErrTranscriptionUnavailable indicates no attachment-capable LLM is configured for audio.
	ErrTranscriptionUnavailable = errors.New("audio transcription unavailable")

	// ErrRenderFailed indicates the external deck renderer failed.
	ErrRenderFailed = errors.New("render failed")

	// ErrSessionBusy indicates another action is already running against the session.
	ErrSessionBusy = errors.New("session busy")
)
