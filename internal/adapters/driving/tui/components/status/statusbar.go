// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady      State = "ready"
	StateGenerating State = "generating"
	StateError      State = "error"
)

// Bar displays the model in use, application state and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	state    State
	message  string
	model    string
	bindings []key.Binding
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Bar{
		styles: s,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar on exactly one line. Hints that do not fit
// are dropped from the right.
func (s *Bar) View() string {
	style := s.styles.StatusBar
	inner := s.width - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	left := s.renderLeft()
	bindings := s.bindings
	right := s.renderRight(bindings)
	for len(bindings) > 0 && lipgloss.Width(left)+1+lipgloss.Width(right) > inner {
		bindings = bindings[:len(bindings)-1]
		right = s.renderRight(bindings)
	}

	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return style.Width(s.width).MaxHeight(1).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, prefixed by the model name when known.
func (s *Bar) renderLeft() string {
	var state string
	switch s.state {
	case StateGenerating:
		state = s.styles.Warning.Render("Generating...")
	case StateError:
		state = s.styles.Error.Render("Error")
	default:
		if s.message != "" {
			state = s.styles.Normal.Render(s.message)
		} else {
			state = s.styles.Muted.Render("Ready")
		}
	}

	if s.model == "" {
		return state
	}
	return s.styles.Subtitle.Render(s.model) + "  " + state
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight(bindings []key.Binding) string {
	if len(bindings) == 0 {
		return ""
	}
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the text shown in the ready state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetModel sets the model label.
func (s *Bar) SetModel(model string) {
	s.model = model
}

// SetBindings sets the keybinding hints.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
