package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studybuddy/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

type mockValidator struct {
	err    error
	called bool
}

func (m *mockValidator) ValidateLLM(_ *domain.LLMSettings) error {
	m.called = true
	return m.err
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, names := range apiKeyEnv {
		for _, n := range names {
			t.Setenv(n, "")
		}
	}
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	clearKeyEnv(t)
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.LLM.Model, settings.LLM.Model)
	assert.Empty(t, settings.LLM.APIKey)
	assert.Zero(t, settings.LLM.Timeout)
	assert.Equal(t, domain.DefaultMaxChars, settings.Generation.MaxChars)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	clearKeyEnv(t)
	store := memory.NewConfigStore(map[string]any{
		KeyLLMProvider: "ollama",
		KeyLLMBaseURL:  "http://gpu-box:11434",
		KeyLLMTimeout:  int64(90),
		KeyMaxChars:    int64(50000),
	})
	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Equal(t, "http://gpu-box:11434", settings.LLM.BaseURL)
	assert.Equal(t, 90*time.Second, settings.LLM.Timeout)
	assert.Equal(t, 50000, settings.Generation.MaxChars)
}

func TestSettingsService_Get_InvalidProviderReturnsDefault(t *testing.T) {
	clearKeyEnv(t)
	store := memory.NewConfigStore(map[string]any{KeyLLMProvider: "anthropic"})

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderGemini, settings.LLM.Provider)
}

func TestSettingsService_Get_EnvKeyOverridesStored(t *testing.T) {
	clearKeyEnv(t)
	store := memory.NewConfigStore(map[string]any{KeyLLMAPIKey: "stored"})
	service := NewSettingsService(store, nil)

	t.Setenv("API_KEY", "from-api-key")
	settings, _ := service.Get()
	assert.Equal(t, "from-api-key", settings.LLM.APIKey)

	t.Setenv("GEMINI_API_KEY", "from-gemini")
	settings, _ = service.Get()
	assert.Equal(t, "from-gemini", settings.LLM.APIKey)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	clearKeyEnv(t)
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.Save(&domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o",
			APIKey:   "sk-test",
			Timeout:  2 * time.Minute,
		},
		Generation: domain.GenerationSettings{MaxChars: 1000},
	})
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Provider)
	assert.Equal(t, "gpt-4o", settings.LLM.Model)
	assert.Equal(t, "sk-test", settings.LLM.APIKey)
	assert.Equal(t, 2*time.Minute, settings.LLM.Timeout)
	assert.Equal(t, 1000, settings.Generation.MaxChars)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"provider", KeyLLMProvider, "ollama", false},
		{"bad provider", KeyLLMProvider, "claude", true},
		{"model", KeyLLMModel, "gemini-2.5-flash", false},
		{"timeout", KeyLLMTimeout, "30", false},
		{"zero timeout", KeyLLMTimeout, "0", false},
		{"negative timeout", KeyLLMTimeout, "-1", true},
		{"max chars", KeyMaxChars, "1000", false},
		{"zero max chars", KeyMaxChars, "0", true},
		{"not a number", KeyMaxChars, "lots", true},
		{"unknown key", "search.mode", "hybrid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore(), nil)

			err := service.Set(tt.key, tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	clearKeyEnv(t)
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "", ""))
	settings, _ := service.Get()
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Equal(t, "http://localhost:11434", settings.LLM.BaseURL)

	err := service.SetLLMProvider(domain.AIProviderOpenAI, "", "")
	assert.Error(t, err)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderGemini, "gemini-2.5-flash", "key"))
	settings, _ = service.Get()
	assert.Equal(t, "gemini-2.5-flash", settings.LLM.Model)
	assert.Empty(t, settings.LLM.BaseURL)

	assert.Error(t, service.SetLLMProvider("bogus", "", "key"))
}

func TestSettingsService_Validate(t *testing.T) {
	clearKeyEnv(t)

	t.Run("missing key", func(t *testing.T) {
		v := &mockValidator{}
		err := NewSettingsService(memory.NewConfigStore(), v).Validate()
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		assert.False(t, v.called)
	})

	t.Run("validator error", func(t *testing.T) {
		v := &mockValidator{err: errors.New("unreachable")}
		store := memory.NewConfigStore(map[string]any{KeyLLMAPIKey: "k"})
		err := NewSettingsService(store, v).Validate()
		assert.EqualError(t, err, "unreachable")
		assert.True(t, v.called)
	})

	t.Run("local provider needs no key", func(t *testing.T) {
		store := memory.NewConfigStore(map[string]any{KeyLLMProvider: "ollama"})
		assert.NoError(t, NewSettingsService(store, nil).Validate())
	})
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	assert.Len(t, service.Keys(), 6)
	assert.Equal(t, KeyLLMProvider, service.Keys()[0])
}
