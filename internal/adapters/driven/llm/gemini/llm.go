// Package gemini provides an LLM service adapter using the Google Gen AI SDK.
// It is the only adapter that accepts audio attachments.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// Model is the LLM model to use (default: gemini-2.5-flash).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// models is the subset of *genai.Models used by the adapter.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// LLMService provides LLM operations using the Gemini API.
type LLMService struct {
	models models
	model  string
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w: API key is required", domain.ErrMissingCredential)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	timeout := cfg.Timeout
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
			Timeout: &timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return newWithModels(client.Models, cfg.Model), nil
}

func newWithModels(m models, model string) *LLMService {
	return &LLMService{models: m, model: model}
}

// Complete sends one generateContent request. An attachment is sent inline
// with the last user turn.
func (s *LLMService) Complete(ctx context.Context, req driven.CompletionRequest) (*driven.Completion, error) {
	if req.Attachment != nil && !s.SupportsAttachment(req.Attachment.MIMEType) {
		return nil, fmt.Errorf("gemini: %w: %s", domain.ErrAttachmentUnsupported, req.Attachment.MIMEType)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		role := genai.RoleUser
		if msg.Role == driven.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}
	if req.Attachment != nil {
		blob := &genai.Part{InlineData: &genai.Blob{MIMEType: req.Attachment.MIMEType, Data: req.Attachment.Data}}
		if n := len(contents); n > 0 && contents[n-1].Role == genai.RoleUser {
			contents[n-1].Parts = append(contents[n-1].Parts, blob)
		} else {
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{blob}})
		}
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := s.models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}

	completion := &driven.Completion{Text: resp.Text()}
	if len(resp.Candidates) > 0 {
		completion.StopReason = string(resp.Candidates[0].FinishReason)
	}
	if resp.UsageMetadata != nil {
		completion.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		completion.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return completion, nil
}

// SupportsAttachment reports whether the MIME type can be sent inline.
func (s *LLMService) SupportsAttachment(mimeType string) bool {
	mimeType = strings.ToLower(mimeType)
	return strings.HasPrefix(mimeType, "audio/") ||
		strings.HasPrefix(mimeType, "image/") ||
		mimeType == "application/pdf"
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the API key by fetching the configured model.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
