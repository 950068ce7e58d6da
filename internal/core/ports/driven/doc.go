// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - LLMService: The remote language model (prompt in, text out)
//   - Extractor / ExtractorRegistry: Per-format text extraction
//   - PromptStore: Prompt templates for every generation task
//   - ConfigStore: Application configuration
//   - DeckWriter: Serialises a presentation tree to a package
//   - SessionStore: Holds independent sessions for multi-session adapters
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DeckRenderer: Converts a written deck to PDF through an external process
//   - MediaTranscoder: Extracts an audio stream before transcription
//   - ExtractionCache: Avoids repeating expensive extractions, in memory or on disk
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
