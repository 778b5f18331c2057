// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back returns to file selection.
	Back key.Binding

	// Generate runs extraction and generation on the selected file.
	Generate key.Binding

	// NextTab and PrevTab cycle through the non-empty sections.
	NextTab key.Binding
	PrevTab key.Binding

	// Flip turns the current flashcard over.
	Flip key.Binding

	// Prev and Next move between flashcards.
	Prev key.Binding
	Next key.Binding

	// Up and Down move between question cards.
	Up   key.Binding
	Down key.Binding

	// Choose picks a multiple choice option by number.
	Choose key.Binding

	// Reveal shows the answer of the selected question.
	Reveal key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "new file"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous section"),
		),
		Flip: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "flip"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous card"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next card"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "choose"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "reveal"),
		),
	}
}

// UploadHelp returns keybindings for the file selection view.
func (k *KeyMap) UploadHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Quit}
}

// FlashcardHelp returns keybindings for the flashcards tab.
func (k *KeyMap) FlashcardHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Prev, k.Next, k.NextTab, k.Back, k.Quit}
}

// QuestionHelp returns keybindings for the question tabs.
func (k *KeyMap) QuestionHelp() []key.Binding {
	return []key.Binding{k.Up, k.Choose, k.Reveal, k.NextTab, k.Back, k.Quit}
}

// ExamHelp returns keybindings for the exam sheet tab.
func (k *KeyMap) ExamHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevTab, k.Back, k.Quit}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
