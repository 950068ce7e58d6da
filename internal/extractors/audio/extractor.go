// Package audio transcribes audio and video recordings into text.
package audio

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// mimeByExt lists the handled extensions with the MIME type sent when the
// file is forwarded without transcoding.
var mimeByExt = map[string]string{
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
}

// Extractor sends recordings to a Transcriber, optionally transcoding them
// to a compact audio stream first.
type Extractor struct {
	transcriber driven.Transcriber
	transcoder  driven.MediaTranscoder
}

// New creates an audio extractor. A nil transcoder forwards files as they are.
func New(transcriber driven.Transcriber, transcoder driven.MediaTranscoder) *Extractor {
	return &Extractor{transcriber: transcriber, transcoder: transcoder}
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindAudio
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	exts := make([]string, 0, len(mimeByExt))
	for ext := range mimeByExt {
		exts = append(exts, ext)
	}
	return exts
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	seen := make(map[string]bool)
	types := make([]string, 0, len(mimeByExt)+1)
	for _, m := range mimeByExt {
		if !seen[m] {
			seen[m] = true
			types = append(types, m)
		}
	}
	return append(types, "audio/mpeg")
}

// Extract returns the transcript. Units are later estimated from its length.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if e.transcriber == nil {
		return nil, domain.ErrTranscriptionUnavailable
	}

	data, mimeType := raw.Content, mimeFor(raw)
	if e.transcoder != nil {
		converted, convertedType, err := e.transcoder.ToAudio(ctx, raw.Name, raw.Content)
		if err != nil {
			return nil, fmt.Errorf("transcode %s: %w", raw.Name, err)
		}
		data, mimeType = converted, convertedType
	}

	text, err := e.transcriber.Transcribe(ctx, raw.Name, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", raw.Name, err)
	}
	return &driven.ExtractResult{Text: strings.TrimSpace(text)}, nil
}

func mimeFor(raw *domain.RawFile) string {
	if m, ok := mimeByExt[raw.Extension()]; ok {
		return m
	}
	if raw.MIMEType != "" {
		return raw.MIMEType
	}
	return "application/octet-stream"
}
