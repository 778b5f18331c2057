package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

// mockExtractor is a test double for driven.Extractor.
type mockExtractor struct {
	formats  []domain.Format
	priority int
	text     string
	err      error
	calls    int
}

func (m *mockExtractor) SupportedFormats() []domain.Format { return m.formats }

func (m *mockExtractor) Priority() int { return m.priority }

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	m.calls++
	return m.text, m.err
}

// mockModel is a test double for driven.StructuredModel.
type mockModel struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	schema   *driven.Schema

	// block, when set, holds GenerateJSON until it is closed.
	block   chan struct{}
	started chan struct{}
}

func (m *mockModel) GenerateJSON(ctx context.Context, prompt string, schema *driven.Schema) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.schema = schema
	m.mu.Unlock()

	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.response, m.err
}

func (m *mockModel) ModelName() string { return "mock-model" }

func (m *mockModel) Ping(_ context.Context) error { return nil }

func (m *mockModel) Close() error { return nil }

func (m *mockModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// guideFixture returns a valid response as a generic map so tests can break it.
func guideFixture() map[string]any {
	exam := make([]any, 0, 10)
	for i := 1; i <= 10; i++ {
		q := map[string]any{
			"questionNumber": i,
			"questionType":   "Definition",
			"question":       fmt.Sprintf("Question %d", i),
		}
		if i == 1 {
			q["questionType"] = "MCQ"
			q["options"] = []any{"A", "B", "C", "D"}
		}
		exam = append(exam, q)
	}
	return map[string]any{
		"flashcards": []any{map[string]any{"term": "Mitosis", "definition": "Cell division"}},
		"mcqs": []any{map[string]any{
			"question": "Which organelle makes ATP?",
			"options":  []any{"Nucleus", "Mitochondria", "Ribosome", "Golgi"},
			"answer":   "Mitochondria",
		}},
		"fillInTheBlanks":      []any{map[string]any{"question": "DNA lives in the ___.", "answer": "nucleus"}},
		"whatIsThisCalled":     []any{map[string]any{"description": "Powerhouse of the cell", "answer": "Mitochondria"}},
		"definitions":          []any{map[string]any{"term": "Osmosis", "definition": "Diffusion of water"}},
		"programmingQuestions": []any{},
		"examSheet":            exam,
	}
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
