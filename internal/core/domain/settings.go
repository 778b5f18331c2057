package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies the generative-AI service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is Google's Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is OpenAI cloud API or a compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// AIProviders returns all providers in display order.
func AIProviders() []AIProvider {
	return []AIProvider{AIProviderGemini, AIProviderOpenAI, AIProviderOllama}
}

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// DefaultModel returns the model used when none is configured.
func (p AIProvider) DefaultModel() string {
	switch p {
	case AIProviderGemini:
		return "gemini-2.5-pro"
	case AIProviderOpenAI:
		return "gpt-4o-mini"
	case AIProviderOllama:
		return "llama3.2"
	default:
		return ""
	}
}

// LLMSettings holds model provider configuration.
type LLMSettings struct {
	// Provider is the model service provider.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// APIKey is the credential for cloud providers.
	APIKey string

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
}

// IsConfigured returns true if the provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// DefaultMaxChars is the character budget of the document text sent to the model.
const DefaultMaxChars = 200000

// GenerationSettings holds study guide generation configuration.
type GenerationSettings struct {
	// MaxChars is the prefix length of the document text sent to the model.
	MaxChars int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds model provider settings.
	LLM LLMSettings

	// Generation holds generation settings.
	Generation GenerationSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The API key is never defaulted; it comes from config or environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider: AIProviderGemini,
			Model:    AIProviderGemini.DefaultModel(),
		},
		Generation: GenerationSettings{
			MaxChars: DefaultMaxChars,
		},
	}
}
