package driven

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_JSONSchema(t *testing.T) {
	s := &Schema{
		Type: SchemaObject,
		Properties: map[string]*Schema{
			"kind": {Type: SchemaString, Enum: []string{"a", "b"}},
			"tags": {Type: SchemaArray, Items: &Schema{Type: SchemaString}},
		},
		PropertyOrder: []string{"kind", "tags"},
		Required:      []string{"kind", "tags"},
	}

	out := s.JSONSchema(true)

	assert.Equal(t, "object", out["type"])
	assert.Equal(t, false, out["additionalProperties"])
	assert.Equal(t, []string{"kind", "tags"}, out["required"])

	props, ok := out["properties"].(map[string]any)
	require.True(t, ok)
	kind, ok := props["kind"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, kind["enum"])

	tags, ok := props["tags"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])
}

func TestSchema_JSONSchema_NotStrict(t *testing.T) {
	s := &Schema{Type: SchemaObject, Properties: map[string]*Schema{}}
	out := s.JSONSchema(false)
	_, has := out["additionalProperties"]
	assert.False(t, has)
}

func TestSchema_JSONSchema_Nil(t *testing.T) {
	var s *Schema
	assert.Nil(t, s.JSONSchema(true))
}

func TestSchema_JSONSchema_StrictMakesOptionalNullable(t *testing.T) {
	s := &Schema{
		Type: SchemaObject,
		Properties: map[string]*Schema{
			"question": {Type: SchemaString},
			"options":  {Type: SchemaArray, Items: &Schema{Type: SchemaString}},
		},
		PropertyOrder: []string{"question", "options"},
		Required:      []string{"question"},
	}

	strict := s.JSONSchema(true)
	assert.Equal(t, []string{"question", "options"}, strict["required"])
	props := strict["properties"].(map[string]any)
	assert.Equal(t, []string{"array", "null"}, props["options"].(map[string]any)["type"])
	assert.Equal(t, "string", props["question"].(map[string]any)["type"])

	loose := s.JSONSchema(false)
	assert.Equal(t, []string{"question"}, loose["required"])
}
