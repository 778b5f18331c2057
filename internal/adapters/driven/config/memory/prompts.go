package memory

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore holds prompt templates in memory.
type PromptStore struct {
	mu      sync.RWMutex
	prompts map[string]string
}

// NewPromptStore creates a prompt store holding the given templates.
func NewPromptStore(prompts map[string]string) *PromptStore {
	s := &PromptStore{prompts: make(map[string]string, len(prompts))}
	for k, v := range prompts {
		s.prompts[k] = v
	}
	return s
}

// Load returns the template for name.
func (s *PromptStore) Load(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prompts[name]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", name)
	}
	return p, nil
}

// Set replaces the template for name.
func (s *PromptStore) Set(name, prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts[name] = prompt
}

// Reload is a no-op; the store has no backing files.
func (s *PromptStore) Reload() {}
