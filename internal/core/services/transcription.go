package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure TranscriptionService implements the interface.
var _ driven.Transcriber = (*TranscriptionService)(nil)

// TranscriptionService transcribes audio by sending it as an attachment to an
// attachment-capable model.
type TranscriptionService struct {
	gen     *Generator
	prompts *Prompts
}

// NewTranscriptionService creates a transcription service.
// gen may be nil when no attachment-capable provider is configured.
func NewTranscriptionService(gen *Generator, prompts *Prompts) *TranscriptionService {
	return &TranscriptionService{gen: gen, prompts: prompts}
}

// Transcribe returns the text spoken in audio.
func (s *TranscriptionService) Transcribe(
	ctx context.Context, fileName, mimeType string, audio []byte,
) (string, error) {
	if !s.gen.Available() {
		return "", domain.ErrTranscriptionUnavailable
	}
	if !s.gen.SupportsAttachment(mimeType) {
		return "", fmt.Errorf("%w: %s", domain.ErrAttachmentUnsupported, mimeType)
	}

	prompt, err := s.prompts.Render(driven.PromptTranscription, TranscriptionPromptData{FileName: fileName})
	if err != nil {
		return "", err
	}

	return s.gen.Generate(ctx, GenerationRequest{
		Task:       "transcription",
		Prompt:     prompt,
		MaxTokens:  TranscriptionBudget.For(0, s.gen.Ceiling()),
		Attachment: &driven.Attachment{MIMEType: mimeType, Data: audio},
	})
}
