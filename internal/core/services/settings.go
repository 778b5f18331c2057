package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyLLMProvider    = "llm.provider"
	KeyLLMModel       = "llm.model"
	KeyLLMBaseURL     = "llm.base_url"
	KeyLLMAPIKey      = "llm.api_key"
	KeyLLMTimeout     = "llm.timeout_seconds"
	KeyMaxChars       = "generation.max_chars"
	defaultOllamaHost = "http://localhost:11434"
)

// Environment variables that override the stored API key, by provider.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
var apiKeyEnv = map[domain.AIProvider][]string{
	domain.AIProviderGemini: {"GEMINI_API_KEY", "API_KEY"},
	domain.AIProviderOpenAI: {"OPENAI_API_KEY"},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
// An API key in the environment takes precedence over the stored one.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(KeyLLMProvider, defaults.LLM.Provider)
	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: provider,
			Model:    s.getString(KeyLLMModel, provider.DefaultModel()),
			BaseURL:  s.configStore.GetString(KeyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(KeyLLMAPIKey),
			Timeout:  time.Duration(s.configStore.GetInt(KeyLLMTimeout)) * time.Second,
		},
		Generation: domain.GenerationSettings{
			MaxChars: s.getInt(KeyMaxChars, defaults.Generation.MaxChars),
		},
	}

	if key := envAPIKey(provider); key != "" {
		settings.LLM.APIKey = key
	}
	if settings.LLM.Timeout < 0 {
		settings.LLM.Timeout = 0
	}

	return settings, nil
}

func envAPIKey(provider domain.AIProvider) string {
	for _, name := range apiKeyEnv[provider] {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(KeyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(KeyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(KeyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(KeyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(KeyLLMTimeout, int(settings.LLM.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save llm timeout: %w", err)
	}
	if err := s.configStore.Set(KeyMaxChars, settings.Generation.MaxChars); err != nil {
		return fmt.Errorf("save max chars: %w", err)
	}
	return nil
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{KeyLLMProvider, KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey, KeyLLMTimeout, KeyMaxChars}
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case KeyLLMProvider:
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, value)
	case KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey:
		return s.configStore.Set(key, value)
	case KeyLLMTimeout:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)
	case KeyMaxChars:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" && envAPIKey(provider) == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = provider.DefaultModel()
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaHost
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that a model provider is configured.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", settings.LLM.Provider)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: %s requires an API key (set %s or %s)",
			domain.ErrLLMUnavailable, settings.LLM.Provider,
			strings.Join(apiKeyEnv[settings.LLM.Provider], " or "), KeyLLMAPIKey)
	}

	if s.aiValidator == nil {
		return nil
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
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
