// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/studydeck/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/studydeck/internal/adapters/driven/llm/gemini"
	openaillm "github.com/custodia-labs/studydeck/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	LLMService           driven.LLMService
	TranscriptionService driven.LLMService // Attachment-capable model for audio; may be nil.
	Warnings             []string          // Non-fatal issues that left a service unset.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		r.LLMService.Close()
	}
	if r.TranscriptionService != nil {
		r.TranscriptionService.Close()
	}
}

// Init creates the services described by settings without pinging them.
// A missing or broken transcription provider is a warning, not an error.
func Init(ctx context.Context, settings *domain.AppSettings) (*InitResult, error) {
	result := &InitResult{}
	if settings == nil {
		return result, nil
	}

	llm, err := CreateLLMService(ctx, &settings.LLM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	result.LLMService = llm

	transcription, err := CreateTranscriptionService(ctx, &settings.Transcription, settings.LLM.RequestsPerMinute)
	switch {
	case err != nil:
		result.Warnings = append(result.Warnings, fmt.Sprintf("audio transcription disabled: %v", err))
	case transcription == nil:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("audio transcription disabled: set %s", settings.Transcription.Provider.EnvVar()))
	default:
		result.TranscriptionService = transcription
	}

	return result, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'studydeck settings set-key' to fix",
			domain.ErrLLMUnavailable, err)
	}

	// Validate connectivity.
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'studydeck settings set-key' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for use by the settings commands to validate credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	return svc.Ping(ctx)
}

// CreateLLMService creates the appropriate LLM service based on settings,
// throttled when a request rate is configured.
// Returns nil if the provider is not configured.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	timeout := time.Duration(settings.TimeoutSeconds) * time.Second

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderAnthropic:
		svc, err = createAnthropicLLM(settings, timeout)
	case domain.AIProviderGemini:
		svc, err = createGeminiLLM(ctx, settings.APIKey, settings.BaseURL, settings.Model, timeout)
	case domain.AIProviderOpenAI:
		svc, err = createOpenAILLM(settings, timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	return ratelimit.Wrap(svc, settings.RequestsPerMinute), nil
}

// CreateTranscriptionService creates the attachment-capable service used for audio.
// Returns nil if the provider is not configured.
func CreateTranscriptionService(
	ctx context.Context, settings *domain.TranscriptionSettings, requestsPerMinute int,
) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	if !settings.Provider.SupportsAudio() {
		return nil, fmt.Errorf("%w: %s does not accept audio", domain.ErrAttachmentUnsupported, settings.Provider)
	}

	svc, err := createGeminiLLM(ctx, settings.APIKey, "", settings.Model, 0)
	if err != nil {
		return nil, err
	}
	return ratelimit.Wrap(svc, requestsPerMinute), nil
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings, timeout time.Duration) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: timeout,
	})
}

// createGeminiLLM creates a Gemini LLM service.
func createGeminiLLM(ctx context.Context, apiKey, baseURL, model string, timeout time.Duration) (driven.LLMService, error) {
	return geminillm.NewLLMService(ctx, geminillm.Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		Timeout: timeout,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings, timeout time.Duration) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: timeout,
	})
}
