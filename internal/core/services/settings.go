package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyLLMProvider          = "llm.provider"
	KeyLLMModel             = "llm.model"
	KeyLLMBaseURL           = "llm.base_url"
	KeyLLMAPIKey            = "llm.api_key"
	KeyLLMRequestsPerMinute = "llm.requests_per_minute"
	KeyLLMTimeoutSeconds    = "llm.timeout_seconds"
	KeyLLMMaxOutputTokens   = "llm.max_output_tokens"
	KeyTranscribeProvider   = "transcription.provider"
	KeyTranscribeModel      = "transcription.model"
	KeyTranscribeAPIKey     = "transcription.api_key"
	KeyChatWindow           = "chat.window"
	KeyLimitSummary         = "limits.summary_chars"
	KeyLimitSections        = "limits.sections_chars"
	KeyLimitAnalysis        = "limits.analysis_chars"
	KeyLimitChat            = "limits.chat_chars"
	KeyLimitDeck            = "limits.deck_chars"
	KeyLimitConcepts        = "limits.concepts_chars"
	KeyDeckSlides           = "deck.slides"
	KeyDeckAuthor           = "deck.author"
	KeyLogFile              = "log.file"
)

// googleAPIKeyEnv is accepted for Gemini when GEMINI_API_KEY is unset.
const googleAPIKeyEnv = "GOOGLE_API_KEY"

var intKeys = map[string]bool{
	KeyLLMRequestsPerMinute: true,
	KeyLLMTimeoutSeconds:    true,
	KeyLLMMaxOutputTokens:   true,
	KeyChatWindow:           true,
	KeyLimitSummary:         true,
	KeyLimitSections:        true,
	KeyLimitAnalysis:        true,
	KeyLimitChat:            true,
	KeyLimitDeck:            true,
	KeyLimitConcepts:        true,
	KeyDeckSlides:           true,
}

var stringKeys = map[string]bool{
	KeyLLMModel:         true,
	KeyLLMBaseURL:       true,
	KeyLLMAPIKey:        true,
	KeyTranscribeModel:  true,
	KeyTranscribeAPIKey: true,
	KeyDeckAuthor:       true,
	KeyLogFile:          true,
}

// SettingKeys lists every key accepted by Set.
func SettingKeys() []string {
	keys := []string{KeyLLMProvider, KeyTranscribeProvider}
	for k := range stringKeys {
		keys = append(keys, k)
	}
	for k := range intKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings. Credentials from the
// environment take precedence over credentials stored in the config file.
type SettingsService struct {
	configStore driven.ConfigStore
	secrets     driven.SecretSource
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
// The secrets and aiValidator parameters are optional (can be nil).
func NewSettingsService(
	configStore driven.ConfigStore,
	secrets driven.SecretSource,
	aiValidator driven.AIConfigValidator,
) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		secrets:     secrets,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	llmProvider := s.getProvider(KeyLLMProvider, defaults.LLM.Provider)
	llmModel := s.configStore.GetString(KeyLLMModel)
	if llmModel == "" {
		llmModel = domain.DefaultLLMModels()[llmProvider]
	}

	transProvider := s.getProvider(KeyTranscribeProvider, defaults.Transcription.Provider)
	transModel := s.configStore.GetString(KeyTranscribeModel)
	if transModel == "" {
		transModel = domain.DefaultLLMModels()[transProvider]
	}

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:          llmProvider,
			Model:             llmModel,
			BaseURL:           s.configStore.GetString(KeyLLMBaseURL), // No default - empty uses the provider's API
			APIKey:            s.credential(llmProvider, KeyLLMAPIKey),
			RequestsPerMinute: s.getInt(KeyLLMRequestsPerMinute, defaults.LLM.RequestsPerMinute),
			TimeoutSeconds:    s.getInt(KeyLLMTimeoutSeconds, defaults.LLM.TimeoutSeconds),
			MaxOutputTokens:   s.getInt(KeyLLMMaxOutputTokens, defaults.LLM.MaxOutputTokens),
		},
		Transcription: domain.TranscriptionSettings{
			Provider: transProvider,
			Model:    transModel,
			APIKey:   s.credential(transProvider, KeyTranscribeAPIKey),
		},
		Limits: domain.Limits{
			SummaryChars:  s.getInt(KeyLimitSummary, defaults.Limits.SummaryChars),
			SectionsChars: s.getInt(KeyLimitSections, defaults.Limits.SectionsChars),
			AnalysisChars: s.getInt(KeyLimitAnalysis, defaults.Limits.AnalysisChars),
			ChatChars:     s.getInt(KeyLimitChat, defaults.Limits.ChatChars),
			DeckChars:     s.getInt(KeyLimitDeck, defaults.Limits.DeckChars),
			ConceptsChars: s.getInt(KeyLimitConcepts, defaults.Limits.ConceptsChars),
		},
		ChatWindow: s.getInt(KeyChatWindow, defaults.ChatWindow),
		Deck: domain.DeckSettings{
			Slides: s.getInt(KeyDeckSlides, defaults.Deck.Slides),
			Author: s.configStore.GetString(KeyDeckAuthor),
		},
		LogFile: s.configStore.GetString(KeyLogFile),
	}

	// The transcription provider can reuse the chat credential.
	if settings.Transcription.APIKey == "" && transProvider == llmProvider {
		settings.Transcription.APIKey = settings.LLM.APIKey
	}

	return settings, nil
}

// Save persists application settings. Credentials that came from the
// environment are not written to the config file.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyLLMProvider, settings.LLM.Provider.String()},
		{KeyLLMModel, settings.LLM.Model},
		{KeyLLMBaseURL, settings.LLM.BaseURL},
		{KeyLLMRequestsPerMinute, settings.LLM.RequestsPerMinute},
		{KeyLLMTimeoutSeconds, settings.LLM.TimeoutSeconds},
		{KeyLLMMaxOutputTokens, settings.LLM.MaxOutputTokens},
		{KeyTranscribeProvider, settings.Transcription.Provider.String()},
		{KeyTranscribeModel, settings.Transcription.Model},
		{KeyChatWindow, settings.ChatWindow},
		{KeyLimitSummary, settings.Limits.SummaryChars},
		{KeyLimitSections, settings.Limits.SectionsChars},
		{KeyLimitAnalysis, settings.Limits.AnalysisChars},
		{KeyLimitChat, settings.Limits.ChatChars},
		{KeyLimitDeck, settings.Limits.DeckChars},
		{KeyLimitConcepts, settings.Limits.ConceptsChars},
		{KeyDeckSlides, settings.Deck.Slides},
		{KeyDeckAuthor, settings.Deck.Author},
		{KeyLogFile, settings.LogFile},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if err := s.saveCredential(settings.LLM.Provider, KeyLLMAPIKey, settings.LLM.APIKey); err != nil {
		return err
	}
	if settings.Transcription.Provider != settings.LLM.Provider || settings.Transcription.APIKey != settings.LLM.APIKey {
		if err := s.saveCredential(settings.Transcription.Provider, KeyTranscribeAPIKey,
			settings.Transcription.APIKey); err != nil {
			return err
		}
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	if apiKey == "" {
		if _, ok := s.envCredential(provider); !ok {
			return fmt.Errorf("API key required for %s (or set %s)", provider, provider.EnvVar())
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	// A custom base URL belongs to the previous provider.
	settings.LLM.BaseURL = ""
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Set updates a single key from its string form.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch {
	case key == KeyLLMProvider || key == KeyTranscribeProvider:
		provider := domain.AIProvider(strings.ToLower(value))
		if !provider.IsValid() {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, provider.String())

	case intKeys[key]:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		if key == KeyDeckSlides && n != 0 && (n < domain.MinDeckSlides || n > domain.MaxDeckSlides) {
			return fmt.Errorf("%w: %s must be between %d and %d",
				domain.ErrInvalidInput, key, domain.MinDeckSlides, domain.MaxDeckSlides)
		}
		return s.configStore.Set(key, n)

	case stringKeys[key]:
		return s.configStore.Set(key, value)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// RequireCredential fails with ErrMissingCredential when the active LLM
// provider has no API key from the environment or the config file.
func (s *SettingsService) RequireCredential() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if settings.LLM.APIKey == "" {
		return fmt.Errorf("%w: set %s in the environment or .env file, or run 'studydeck settings set-key'",
			domain.ErrMissingCredential, settings.LLM.Provider.EnvVar())
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// credential resolves a provider's API key: environment first, then the config key.
func (s *SettingsService) credential(provider domain.AIProvider, key string) string {
	if v, ok := s.envCredential(provider); ok {
		return v
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) envCredential(provider domain.AIProvider) (string, bool) {
	if s.secrets == nil {
		return "", false
	}
	if v, ok := s.secrets.Lookup(provider.EnvVar()); ok {
		return v, true
	}
	if provider == domain.AIProviderGemini {
		return s.secrets.Lookup(googleAPIKeyEnv)
	}
	return "", false
}

func (s *SettingsService) saveCredential(provider domain.AIProvider, key, value string) error {
	if value == "" {
		return nil
	}
	if env, ok := s.envCredential(provider); ok && env == value {
		return nil
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
