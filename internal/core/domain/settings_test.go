package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AIProviders() {
		assert.True(t, p.IsValid(), p.String())
		assert.NotEqual(t, unknownDescription, p.Description())
		assert.NotEmpty(t, p.DefaultModel())
	}
	assert.False(t, AIProvider("anthropic").IsValid())
	assert.Equal(t, unknownDescription, AIProvider("x").Description())
	assert.Empty(t, AIProvider("x").DefaultModel())
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.True(t, AIProviderGemini.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOllama.IsLocal())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{"gemini with key", LLMSettings{Provider: AIProviderGemini, APIKey: "k"}, true},
		{"gemini without key", LLMSettings{Provider: AIProviderGemini}, false},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama}, true},
		{"unknown provider", LLMSettings{Provider: "x", APIKey: "k"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, AIProviderGemini, s.LLM.Provider)
	assert.Equal(t, "gemini-2.5-pro", s.LLM.Model)
	assert.Empty(t, s.LLM.APIKey)
	assert.Zero(t, s.LLM.Timeout)
	assert.Equal(t, 200000, s.Generation.MaxChars)
}
