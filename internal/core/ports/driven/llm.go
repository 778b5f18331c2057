package driven

import (
	"context"
	"sort"
)

// StructuredModel is a generative model that can be constrained to emit JSON
// conforming to a response schema.
//
// Implementations include:
//   - Gemini (responseSchema)
//   - OpenAI and compatible servers (response_format json_schema)
//   - Ollama (format schema)
type StructuredModel interface {
	// GenerateJSON sends a single prompt and returns the raw JSON text of
	// the response. The caller decodes and validates it.
	GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// SchemaType is the type keyword of a schema node.
type SchemaType string

// Schema types shared by every provider.
const (
	SchemaObject  SchemaType = "object"
	SchemaArray   SchemaType = "array"
	SchemaString  SchemaType = "string"
	SchemaInteger SchemaType = "integer"
)

// Schema is a provider-neutral subset of JSON Schema.
// Adapters translate it into their own request format.
type Schema struct {
	Type        SchemaType
	Description string

	// Properties and PropertyOrder apply to objects. PropertyOrder fixes the
	// order properties are emitted in, since map iteration is random.
	Properties    map[string]*Schema
	PropertyOrder []string
	Required      []string

	// Items applies to arrays.
	Items *Schema

	// Enum restricts a string to the listed values.
	Enum []string
}

// JSONSchema renders the schema as a JSON Schema document.
// When strict is set, every object forbids additional properties and lists
// all of its properties as required, with optional ones made nullable, as
// OpenAI's strict mode requires.
func (s *Schema) JSONSchema(strict bool) map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema(strict)
	}
	if s.Type != SchemaObject {
		return out
	}

	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		prop := p.JSONSchema(strict)
		if strict && !s.isRequired(name) {
			prop["type"] = []string{string(p.Type), "null"}
		}
		props[name] = prop
	}
	out["properties"] = props

	switch {
	case strict:
		out["required"] = s.propertyNames()
		out["additionalProperties"] = false
	case len(s.Required) > 0:
		out["required"] = s.Required
	}
	return out
}

func (s *Schema) isRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// propertyNames returns PropertyOrder followed by any properties it omits, sorted.
func (s *Schema) propertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, n := range s.PropertyOrder {
		if _, ok := s.Properties[n]; ok && !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	var rest []string
	for n := range s.Properties {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
