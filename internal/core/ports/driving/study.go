package driving

import (
	"context"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// IngestService turns input files into Sources on a session.
type IngestService interface {
	// AddFiles extracts each file and appends the resulting Sources.
	// Unsupported or unreadable files become warnings; the batch continues.
	AddFiles(ctx context.Context, sess *domain.Session, files []domain.RawFile) (*domain.ImportReport, error)

	// AddText adds pasted text under a label.
	AddText(ctx context.Context, sess *domain.Session, label, text string) (*domain.Source, error)

	// RemoveSource drops a Source and invalidates derived state.
	RemoveSource(sess *domain.Session, id string) error

	// Reset drops all Sources and derived state.
	Reset(sess *domain.Session)

	// SupportedExtensions lists the extensions with a registered extractor.
	SupportedExtensions() []string
}

// StudyService runs the corpus-wide generation tasks.
type StudyService interface {
	// Summarise produces a Markdown summary whose depth scales with corpus size.
	Summarise(ctx context.Context, sess *domain.Session) (string, error)

	// DetectSections partitions the corpus into at most domain.MaxSections sections.
	DetectSections(ctx context.Context, sess *domain.Session) ([]domain.Section, error)

	// AnalyseSection produces a Markdown analysis of one section, cached on the session.
	AnalyseSection(ctx context.Context, sess *domain.Session, index int) (string, error)

	// KeyConcepts produces a Markdown table of key concepts.
	KeyConcepts(ctx context.Context, sess *domain.Session) (string, error)
}

// ChatService answers questions about the corpus.
type ChatService interface {
	// Ask answers a question using the corpus and recent turns, and records the exchange.
	Ask(ctx context.Context, sess *domain.Session, question string) (string, error)
}

// DeckService plans and builds slide decks.
type DeckService interface {
	// Plan asks the model for a deck and validates it into a SlideDeckSpec.
	Plan(ctx context.Context, sess *domain.Session, opts domain.DeckOptions) (*domain.SlideDeckSpec, error)

	// Build compiles a spec and writes the binary deck.
	Build(spec *domain.SlideDeckSpec) (*domain.Artifact, error)

	// RenderPDF converts a built deck to PDF.
	RenderPDF(ctx context.Context, deck *domain.Artifact) (*domain.Artifact, error)
}

// ExportService renders session artifacts as Markdown downloads.
type ExportService interface {
	// Summary exports the stored summary.
	Summary(sess *domain.Session) (*domain.Artifact, error)

	// Analysis exports the stored analysis of one section.
	Analysis(sess *domain.Session, index int) (*domain.Artifact, error)

	// KeyConcepts exports the stored key concepts table.
	KeyConcepts(sess *domain.Session) (*domain.Artifact, error)

	// Transcript exports the chat history.
	Transcript(sess *domain.Session) (*domain.Artifact, error)
}
