package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads model prompts from user-editable files on disk, falling
// back to the built-in templates. Files are created lazily on first Load.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts seeds new prompt files and backs missing ones.
var defaultPrompts = map[string]string{
	driven.PromptStudyGuide: driven.DefaultStudyGuidePrompt,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.studybuddy/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for name, trimmed of surrounding
// whitespace. The first call creates the directory and writes the default
// files. A missing or unreadable file yields the built-in default; only an
// unknown name is an error.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)

	s.mu.RLock()
	prompt, cached := s.cache[name]
	s.mu.RUnlock()
	if cached {
		return prompt, nil
	}

	def, known := defaultPrompts[name]
	if s.initErr != nil {
		if known {
			return def, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if known {
			return def, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}
	prompt = strings.TrimSpace(string(data))

	s.mu.Lock()
	defer s.mu.Unlock()
	// A concurrent Load may have filled the entry first; keep its value.
	if existing, ok := s.cache[name]; ok {
		return existing, nil
	}
	s.cache[name] = prompt
	return prompt, nil
}

// Reload drops cached templates so edits on disk are picked up.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.promptDir, name+".txt")
}

// initialise writes any missing default files. It runs once, on first Load.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}
	for name, content := range defaultPrompts {
		if err := writeIfMissing(s.path(name), content); err != nil {
			s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
			return
		}
	}
	if err := writeIfMissing(filepath.Join(s.promptDir, "README.md"), readme); err != nil {
		s.initErr = err
	}
}

func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0600)
}

const readme = `# StudyBuddy Prompts

This directory holds the instructions sent to the model with each document.

## Files

- ` + "`study_guide.txt`" + ` - Builds the study guide: flashcards, practice
  questions and the 30-minute exam

## Customisation

Edit the file to change what the model is asked for. The response is still
constrained to the study guide schema, so only wording and emphasis change.
Changes take effect on the next command or after restarting the TUI.
Delete the file to restore the default.

## Placeholder

The prompt must contain exactly one ` + "`%s`" + `, which is replaced by the
document text. A prompt without it is ignored and the default is used.
`
