package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

func testSchema() *driven.Schema {
	return &driven.Schema{
		Type: driven.SchemaObject,
		Properties: map[string]*driven.Schema{
			"cards": {Type: driven.SchemaArray, Items: &driven.Schema{Type: driven.SchemaString}},
		},
		Required: []string{"cards"},
	}
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc := NewLLMService(LLMConfig{})

	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.NoError(t, svc.Close())
}

func TestGenerateJSON(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"response":"{\"cards\":[\"a\"]}","done":true,"done_reason":"stop"}`))
	}))
	defer srv.Close()

	svc := NewLLMService(LLMConfig{BaseURL: srv.URL, Model: "qwen2.5"})
	out, err := svc.GenerateJSON(context.Background(), "make cards", testSchema())
	require.NoError(t, err)
	assert.JSONEq(t, `{"cards":["a"]}`, out)

	assert.Equal(t, "qwen2.5", raw["model"])
	assert.Equal(t, "make cards", raw["prompt"])
	assert.Equal(t, false, raw["stream"])
	format := raw["format"].(map[string]any)
	assert.Equal(t, "object", format["type"])
	assert.Equal(t, []any{"cards"}, format["required"])
	assert.NotContains(t, format, "additionalProperties")
}

func TestGenerateJSON_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"model missing", http.StatusNotFound, `{"error":"model not found"}`, "status 404"},
		{"error field", http.StatusOK, `{"error":"out of memory"}`, "out of memory"},
		{"truncated", http.StatusOK, `{"response":"{","done":true,"done_reason":"length"}`, "truncated"},
		{"not json", http.StatusOK, `nope`, "decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			svc := NewLLMService(LLMConfig{BaseURL: srv.URL})
			_, err := svc.GenerateJSON(context.Background(), "p", testSchema())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))

	svc := NewLLMService(LLMConfig{BaseURL: srv.URL})
	assert.NoError(t, svc.Ping(context.Background()))

	srv.Close()
	err := svc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is Ollama running")
}
