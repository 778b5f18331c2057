package driven

import "github.com/custodia-labs/studybuddy/internal/core/domain"

// AIConfigValidator validates model provider configurations.
// Implementations verify that configurations are valid by testing
// connectivity to the underlying AI services.
type AIConfigValidator interface {
	// ValidateLLM validates a model configuration by pinging the provider.
	ValidateLLM(config *domain.LLMSettings) error
}
