package driven

import (
	"context"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// PPTXContentType is the MIME type of an Office presentation package.
const PPTXContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// DeckWriter serialises a presentation tree into a binary deck.
type DeckWriter interface {
	// Write returns the package bytes. The slide count of the package equals len(p.Slides).
	Write(p *domain.Presentation) ([]byte, error)

	// ContentType returns the MIME type of the written package.
	ContentType() string

	// Extension returns the file extension of the written package, including the dot.
	Extension() string
}

// DeckRenderer converts a written deck into another format through an external process.
type DeckRenderer interface {
	// RenderPDF converts deck bytes to PDF. Temporary files are removed on every path.
	RenderPDF(ctx context.Context, deck []byte) ([]byte, error)
}
