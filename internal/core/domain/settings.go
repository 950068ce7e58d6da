package domain

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderAnthropic, AIProviderGemini, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// SupportsAudio returns true if the provider accepts audio attachments.
func (p AIProvider) SupportsAudio() bool {
	return p == AIProviderGemini
}

// EnvVar returns the environment variable holding the provider's API key.
func (p AIProvider) EnvVar() string {
	switch p {
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIProviderGemini:
		return "GEMINI_API_KEY"
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// APIKey is the API key.
	APIKey string

	// RequestsPerMinute throttles requests. Zero disables throttling.
	RequestsPerMinute int

	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int

	// MaxOutputTokens is the provider's hard output ceiling.
	MaxOutputTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid() && l.APIKey != ""
}

// TranscriptionSettings selects the attachment-capable model used for audio.
type TranscriptionSettings struct {
	Provider AIProvider
	Model    string
	APIKey   string
}

// IsConfigured returns true if a transcription provider is set up.
func (t TranscriptionSettings) IsConfigured() bool {
	return t.Provider.IsValid() && t.APIKey != ""
}

// Limits holds per-task character ceilings applied before a request is sent.
type Limits struct {
	SummaryChars  int
	SectionsChars int
	AnalysisChars int
	ChatChars     int
	DeckChars     int
	ConceptsChars int
}

// DeckSettings holds slide deck defaults.
type DeckSettings struct {
	// Slides is the default number of slides requested.
	Slides int

	// Author is printed on the title slide footer.
	Author string
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM           LLMSettings
	Transcription TranscriptionSettings
	Limits        Limits

	// ChatWindow is the number of recent turns sent with each question.
	ChatWindow int

	Deck DeckSettings

	// LogFile enables a rotated JSON log file when non-empty.
	LogFile string
}

// Default setting values.
const (
	DefaultMaxOutputTokens = 8192
	DefaultTimeoutSeconds  = 120
	DefaultChatWindow      = 6
	DefaultDeckSlides      = 8
	MinDeckSlides          = 3
	MaxDeckSlides          = 20
)

// DefaultLimits returns the default per-task character ceilings.
func DefaultLimits() Limits {
	return Limits{
		SummaryChars:  60000,
		SectionsChars: 15000,
		AnalysisChars: 40000,
		ChatChars:     30000,
		DeckChars:     40000,
		ConceptsChars: 15000,
	}
}

// DefaultAppSettings returns settings with sensible defaults.
// API keys are never defaulted.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:        AIProviderAnthropic,
			Model:           DefaultLLMModels()[AIProviderAnthropic],
			TimeoutSeconds:  DefaultTimeoutSeconds,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
		Transcription: TranscriptionSettings{
			Provider: AIProviderGemini,
			Model:    DefaultLLMModels()[AIProviderGemini],
		},
		Limits:     DefaultLimits(),
		ChatWindow: DefaultChatWindow,
		Deck: DeckSettings{
			Slides: DefaultDeckSlides,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderAnthropic,
		AIProviderGemini,
		AIProviderOpenAI,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderAnthropic: "claude-sonnet-4-20250514",
		AIProviderGemini:    "gemini-2.5-flash",
		AIProviderOpenAI:    "gpt-4o-mini",
	}
}
