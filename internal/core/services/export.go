package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService renders session artifacts as downloadable Markdown files.
type ExportService struct{}

// NewExportService creates a new export service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// Summary exports the generated summary.
func (s *ExportService) Summary(sess *domain.Session) (*domain.Artifact, error) {
	if sess == nil || sess.Summary() == "" {
		return nil, fmt.Errorf("summary: %w", domain.ErrNotFound)
	}
	var b strings.Builder
	b.WriteString("# Summary\n\n")
	writeSourceList(&b, sess.Sources())
	b.WriteString(sess.Summary())
	b.WriteString("\n")
	return markdown("summary", b.String()), nil
}

// Analysis exports the analysis of one section.
func (s *ExportService) Analysis(sess *domain.Session, index int) (*domain.Artifact, error) {
	if sess == nil {
		return nil, fmt.Errorf("analysis %d: %w", index, domain.ErrNotFound)
	}
	analysis, ok := sess.Analysis(index)
	if !ok {
		return nil, fmt.Errorf("analysis %d: %w", index, domain.ErrNotFound)
	}

	stem := fmt.Sprintf("section-%02d", index)
	var b strings.Builder
	if sec, ok := sess.Section(index); ok {
		if slug := fileSlug(sec.Title, ""); slug != "" {
			stem += "-" + slug
		}
		fmt.Fprintf(&b, "# Section %d: %s\n\n", sec.Index, sec.Title)
		fmt.Fprintf(&b, "_Pages %d-%d", sec.StartUnit, sec.EndUnit)
		if sec.SourceName != "" {
			fmt.Fprintf(&b, " of %s", sec.SourceName)
		}
		b.WriteString("_\n\n")
	} else {
		fmt.Fprintf(&b, "# Section %d\n\n", index)
	}
	b.WriteString(analysis)
	b.WriteString("\n")
	return markdown(stem, b.String()), nil
}

// KeyConcepts exports the key concepts table.
func (s *ExportService) KeyConcepts(sess *domain.Session) (*domain.Artifact, error) {
	if sess == nil || sess.KeyConcepts() == "" {
		return nil, fmt.Errorf("key concepts: %w", domain.ErrNotFound)
	}
	return markdown("key-concepts", "# Key Concepts\n\n"+sess.KeyConcepts()+"\n"), nil
}

// Transcript exports the chat history.
func (s *ExportService) Transcript(sess *domain.Session) (*domain.Artifact, error) {
	if sess == nil || len(sess.Turns()) == 0 {
		return nil, fmt.Errorf("transcript: %w", domain.ErrNotFound)
	}
	var b strings.Builder
	b.WriteString("# Chat Transcript\n\n")
	for _, turn := range sess.Turns() {
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString("**You:** ")
		default:
			b.WriteString("**Assistant:** ")
		}
		b.WriteString(turn.Content)
		b.WriteString("\n\n")
	}
	return markdown("chat-transcript", b.String()), nil
}

func writeSourceList(b *strings.Builder, sources []domain.Source) {
	if len(sources) == 0 {
		return
	}
	b.WriteString("Sources:\n")
	for _, src := range sources {
		fmt.Fprintf(b, "- %s (%s, %d page(s))\n", src.Name, src.Kind.Label(), src.UnitCount)
	}
	b.WriteString("\n")
}

func markdown(stem, body string) *domain.Artifact {
	return &domain.Artifact{
		FileName:    stem + ".md",
		ContentType: domain.MarkdownContentType,
		Data:        []byte(body),
	}
}

// fileSlug turns a title into a lower-case file stem of letters, digits and hyphens.
func fileSlug(title, fallback string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len([]rune(slug)) > 60 {
		slug = strings.Trim(string([]rune(slug)[:60]), "-")
	}
	if slug == "" {
		return fallback
	}
	return slug
}
