package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAIProvider_IsValid tests provider recognition
func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"anthropic is valid", AIProviderAnthropic, true},
		{"gemini is valid", AIProviderGemini, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"ollama is not supported", AIProvider("ollama"), false},
		{"empty is invalid", AIProvider(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

// TestAIProvider_EnvVar tests credential variable names
func TestAIProvider_EnvVar(t *testing.T) {
	assert.Equal(t, "ANTHROPIC_API_KEY", AIProviderAnthropic.EnvVar())
	assert.Equal(t, "GEMINI_API_KEY", AIProviderGemini.EnvVar())
	assert.Equal(t, "OPENAI_API_KEY", AIProviderOpenAI.EnvVar())
	assert.Equal(t, "", AIProvider("x").EnvVar())
}

// TestAIProvider_SupportsAudio tests attachment capability
func TestAIProvider_SupportsAudio(t *testing.T) {
	assert.True(t, AIProviderGemini.SupportsAudio())
	assert.False(t, AIProviderAnthropic.SupportsAudio())
	assert.False(t, AIProviderOpenAI.SupportsAudio())
}

// TestAIProvider_Description tests human-readable names
func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Anthropic (cloud)", AIProviderAnthropic.Description())
	assert.Equal(t, "Unknown", AIProvider("x").Description())
}

// TestLLMSettings_IsConfigured tests credential requirement
func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.False(t, LLMSettings{Provider: AIProviderAnthropic}.IsConfigured())
	assert.False(t, LLMSettings{APIKey: "k"}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderAnthropic, APIKey: "k"}.IsConfigured())
}

// TestDefaultAppSettings tests defaults
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, AIProviderAnthropic, s.LLM.Provider)
	assert.NotEmpty(t, s.LLM.Model)
	assert.Empty(t, s.LLM.APIKey)
	assert.Equal(t, DefaultMaxOutputTokens, s.LLM.MaxOutputTokens)
	assert.Equal(t, AIProviderGemini, s.Transcription.Provider)
	assert.Equal(t, DefaultChatWindow, s.ChatWindow)
	assert.Equal(t, DefaultDeckSlides, s.Deck.Slides)
	assert.Equal(t, DefaultLimits(), s.Limits)
}

// TestDefaultLLMModels tests that every provider has a default model
func TestDefaultLLMModels(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], p.String())
	}
}
