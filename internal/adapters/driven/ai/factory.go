// Package ai provides factory functions for creating model adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	geminillm "github.com/custodia-labs/studybuddy/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/studybuddy/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/studybuddy/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateModel creates the structured-output model for the configured provider.
// A cloud provider without an API key is rejected here, before any request
// is made, with an error wrapping domain.ErrLLMUnavailable.
func CreateModel(ctx context.Context, settings *domain.LLMSettings) (driven.StructuredModel, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no model settings", domain.ErrLLMUnavailable)
	}
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: unsupported provider %q", domain.ErrLLMUnavailable, settings.Provider)
	}
	if settings.Provider.RequiresAPIKey() && settings.APIKey == "" {
		return nil, fmt.Errorf("%w: %s API key is not set", domain.ErrLLMUnavailable, settings.Provider)
	}

	var (
		model driven.StructuredModel
		err   error
	)
	switch settings.Provider {
	case domain.AIProviderGemini:
		model, err = createGemini(ctx, settings)
	case domain.AIProviderOpenAI:
		model, err = createOpenAI(settings)
	case domain.AIProviderOllama:
		model = createOllama(settings)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return model, nil
}

// CreateAndValidateModel creates a model and validates connectivity.
// Returns the model if successful, or an error with guidance.
func CreateAndValidateModel(ctx context.Context, settings *domain.LLMSettings) (driven.StructuredModel, error) {
	model, err := CreateModel(ctx, settings)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := model.Ping(pingCtx); err != nil {
		model.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'studybuddy settings show' to check the configuration",
			domain.ErrLLMUnavailable, err)
	}

	return model, nil
}

// ValidateLLMConfig validates a model configuration by creating a model and pinging it.
// A nil configuration has nothing to validate.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil {
		return nil
	}

	model, err := CreateAndValidateModel(context.Background(), settings)
	if err != nil {
		return err
	}
	return model.Close()
}

// createGemini creates a Gemini model.
func createGemini(ctx context.Context, settings *domain.LLMSettings) (driven.StructuredModel, error) {
	return geminillm.NewLLMService(ctx, geminillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

// createOpenAI creates an OpenAI model.
func createOpenAI(settings *domain.LLMSettings) (driven.StructuredModel, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

// createOllama creates an Ollama model.
func createOllama(settings *domain.LLMSettings) driven.StructuredModel {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}
