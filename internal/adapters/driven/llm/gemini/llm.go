// Package gemini provides a structured-output model adapter for Google's
// Gemini API using the Google Gen AI client.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.StructuredModel = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultLLMModel = "gemini-2.5-pro"

	apiVersion   = "v1beta"
	jsonMIMEType = "application/json"
	modelPrefix  = "models/"
)

// LLMConfig holds configuration for the Gemini model service.
type LLMConfig struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API endpoint (default: the public Gemini endpoint).
	BaseURL string

	// Model is the model to use (default: gemini-2.5-pro).
	Model string

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
}

// LLMService generates schema-constrained JSON using the Gemini API.
type LLMService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewLLMService creates a new Gemini model service.
func NewLLMService(ctx context.Context, cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &LLMService{
		client:  client,
		model:   strings.TrimPrefix(cfg.Model, modelPrefix),
		timeout: cfg.Timeout,
	}, nil
}

// GenerateJSON sends the prompt as a single user turn with a JSON response
// schema and returns the concatenated text of the first candidate.
func (s *LLMService) GenerateJSON(ctx context.Context, prompt string, schema *driven.Schema) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   toAPISchema(schema),
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", classify(err))
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no candidates returned")
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case "", genai.FinishReasonStop:
	case genai.FinishReasonMaxTokens:
		return "", errors.New("gemini: response truncated at token limit")
	default:
		return "", fmt.Errorf("gemini: generation stopped: %s", candidate.FinishReason)
	}
	if candidate.Content == nil {
		return "", errors.New("gemini: empty candidate content")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		// Thought summaries are not part of the answer.
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// ModelName returns the name of the model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the API key and model by fetching the model's metadata.
// This is a lightweight check that doesn't run inference.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.Models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", classify(err))
	}
	return nil
}

// Close releases resources. The client holds no connections of its own.
func (s *LLMService) Close() error {
	return nil
}

// toAPISchema converts a provider-neutral schema into Gemini's OpenAPI
// subset, which spells types in upper case.
func toAPISchema(s *driven.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genai.Type(strings.ToUpper(string(s.Type))),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       toAPISchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toAPISchema(p)
		}
		out.PropertyOrdering = s.PropertyOrder
	}
	return out
}
