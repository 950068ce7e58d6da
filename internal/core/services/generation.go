package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// GenerationRequest is one call to the LLM service.
type GenerationRequest struct {
	// Task names the call in logs ("summary", "sections", ...).
	Task string

	// System is the system-level instruction. Optional.
	System string

	// History holds prior conversation turns, oldest first.
	History []domain.ConversationTurn

	// Prompt is the final user turn.
	Prompt string

	// MaxTokens is the output budget before clamping to the provider ceiling.
	MaxTokens int

	// Truncated records whether the caller cut the input; logged only.
	Truncated bool

	// Attachment is binary input such as audio. Optional.
	Attachment *driven.Attachment
}

// Generator is the only component that talks to the LLM service.
// It makes exactly one request per call and never retries.
type Generator struct {
	llm     driven.LLMService
	ceiling int
}

// NewGenerator creates a generator. A non-positive ceiling uses domain.DefaultMaxOutputTokens.
func NewGenerator(llm driven.LLMService, ceiling int) *Generator {
	if ceiling <= 0 {
		ceiling = domain.DefaultMaxOutputTokens
	}
	return &Generator{llm: llm, ceiling: ceiling}
}

// Available reports whether an LLM service is configured.
func (g *Generator) Available() bool {
	return g != nil && g.llm != nil
}

// Ceiling returns the provider's hard output-token ceiling.
func (g *Generator) Ceiling() int {
	return g.ceiling
}

// SupportsAttachment reports whether the underlying model accepts the MIME type as input.
func (g *Generator) SupportsAttachment(mimeType string) bool {
	return g.Available() && g.llm.SupportsAttachment(mimeType)
}

// Generate issues a free-text request and returns the response text.
// Errors from the LLM service are returned as they are.
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	completion, err := g.complete(ctx, req, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(completion.Text), nil
}

// GenerateJSON issues a JSON-contracted request and decodes the response into v.
// A response that does not parse after fence stripping is ErrMalformedResponse.
func (g *Generator) GenerateJSON(ctx context.Context, req GenerationRequest, v any) error {
	completion, err := g.complete(ctx, req, true)
	if err != nil {
		return err
	}
	return DecodeJSON(completion.Text, v)
}

func (g *Generator) complete(ctx context.Context, req GenerationRequest, jsonOut bool) (*driven.Completion, error) {
	if !g.Available() {
		return nil, domain.ErrLLMUnavailable
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 || maxTokens > g.ceiling {
		maxTokens = g.ceiling
	}

	messages := make([]driven.ChatMessage, 0, len(req.History)+1)
	for _, turn := range req.History {
		messages = append(messages, driven.ChatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, driven.ChatMessage{Role: driven.ChatRoleUser, Content: req.Prompt})

	logger.Debug("LLM request: task=%s model=%s max_tokens=%d input_chars=%d truncated=%t json=%t",
		req.Task, g.llm.ModelName(), maxTokens,
		utf8.RuneCountInString(req.System)+utf8.RuneCountInString(req.Prompt),
		req.Truncated, jsonOut)

	completion, err := g.llm.Complete(ctx, driven.CompletionRequest{
		System:     req.System,
		Messages:   messages,
		MaxTokens:  maxTokens,
		JSON:       jsonOut,
		Attachment: req.Attachment,
	})
	if err != nil {
		logger.Debug("LLM request failed: task=%s: %v", req.Task, err)
		return nil, err
	}
	if completion == nil {
		return nil, fmt.Errorf("%s: %w: empty completion", req.Task, domain.ErrMalformedResponse)
	}

	logger.Debug("LLM response: task=%s output_chars=%d stop=%s",
		req.Task, utf8.RuneCountInString(completion.Text), completion.StopReason)
	return completion, nil
}

// StripCodeFences removes a surrounding Markdown code fence (``` or ```json) from s.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = dropFenceTag(strings.TrimPrefix(s, "```"))
		}
	}

	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}

	return strings.TrimSpace(s)
}

// dropFenceTag removes the language word of a one-line fence such as
// "```json {...}```". A word not followed by a space or a JSON opener is
// kept, so a bare literal like "true" survives.
func dropFenceTag(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	if end <= 0 {
		return s
	}
	switch s[end] {
	case ' ', '\t', '{', '[':
		return s[end:]
	}
	return s
}

// DecodeJSON strips code fences from raw and unmarshals it into v.
func DecodeJSON(raw string, v any) error {
	body := StripCodeFences(raw)
	if body == "" {
		return fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return nil
}
