package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

func TestConfigStore_ImplementsInterface(t *testing.T) {
	var _ driven.ConfigStore = NewConfigStore()
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"llm.provider": "ollama"},
		map[string]any{"llm.model": "llama3.2", "llm.provider": "openai"},
	)

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, "llama3.2", store.GetString("llm.model"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("llm.model", "gemini-2.5-pro"))
	require.NoError(t, store.Set("generation.max_chars", int64(5000)))
	require.NoError(t, store.Set("llm.timeout_seconds", float64(30)))
	require.NoError(t, store.Set("tui.mouse", true))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("llm.model"), "gemini-2.5-pro"},
		{"int from int64", store.GetInt("generation.max_chars"), 5000},
		{"int from float64", store.GetInt("llm.timeout_seconds"), 30},
		{"missing string", store.GetString("missing"), ""},
		{"missing int", store.GetInt("missing"), 0},
		{"wrong type string", store.GetString("tui.mouse"), ""},
		{"wrong type int", store.GetInt("llm.model"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_PersistenceIsNoOp(t *testing.T) {
	store := NewConfigStore(map[string]any{"llm.model": "x"})

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "x", store.GetString("llm.model"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("generation.max_chars", n)
			_ = store.GetInt("generation.max_chars")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("generation.max_chars")
	assert.True(t, ok)
}
