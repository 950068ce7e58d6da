package driving

import "github.com/custodia-labs/studydeck/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment credentials applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Set stores a single dotted configuration key.
	Set(key, value string) error

	// RequireCredential returns domain.ErrMissingCredential when the active provider has no API key.
	RequireCredential() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
