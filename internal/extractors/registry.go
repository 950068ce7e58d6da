package extractors

import (
	"fmt"
	"mime"
	"sort"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/extractors/audio"
	"github.com/custodia-labs/studydeck/internal/extractors/docx"
	"github.com/custodia-labs/studydeck/internal/extractors/eml"
	"github.com/custodia-labs/studydeck/internal/extractors/html"
	"github.com/custodia-labs/studydeck/internal/extractors/pdf"
	"github.com/custodia-labs/studydeck/internal/extractors/plaintext"
	"github.com/custodia-labs/studydeck/internal/extractors/pptx"
	"github.com/custodia-labs/studydeck/internal/extractors/richtext"
	"github.com/custodia-labs/studydeck/internal/extractors/spreadsheet"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps extensions and MIME types to extractors.
// Later registrations win on conflicts.
type Registry struct {
	byExt  map[string]driven.Extractor
	byMIME map[string]driven.Extractor
}

// NewRegistry creates a registry holding the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		byExt:  make(map[string]driven.Extractor),
		byMIME: make(map[string]driven.Extractor),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// NewDefaultRegistry registers every built-in extractor. Audio and video
// files are transcoded with transcoder (may be nil) and sent to transcriber.
func NewDefaultRegistry(transcriber driven.Transcriber, transcoder driven.MediaTranscoder) *Registry {
	return NewRegistry(
		pdf.New(),
		docx.New(),
		richtext.New(),
		pptx.New(),
		plaintext.New(),
		html.New(),
		eml.New(),
		spreadsheet.New(),
		audio.New(transcriber, transcoder),
	)
}

// Register adds an extractor under all of its extensions and MIME types.
func (r *Registry) Register(e driven.Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
	for _, m := range e.MIMETypes() {
		r.byMIME[strings.ToLower(m)] = e
	}
}

// Lookup returns the extractor for raw, by extension then MIME hint.
func (r *Registry) Lookup(raw *domain.RawFile) (driven.Extractor, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	ext := raw.Extension()
	if e, ok := r.byExt[ext]; ok {
		return e, nil
	}

	if raw.MIMEType != "" {
		mediaType := strings.ToLower(strings.TrimSpace(raw.MIMEType))
		if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
			mediaType = parsed
		}
		if e, ok := r.byMIME[mediaType]; ok {
			return e, nil
		}
	}

	if ext == "" {
		return nil, fmt.Errorf("%s: %w", raw.Name, domain.ErrUnsupportedFormat)
	}
	return nil, fmt.Errorf("%w %q", domain.ErrUnsupportedFormat, ext)
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
