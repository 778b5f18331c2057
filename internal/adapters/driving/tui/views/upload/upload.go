// Package upload provides the file selection view for the TUI.
package upload

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// View lets the user pick a document and start generation.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	picker     filepicker.Model
	spinner    spinner.Model
	selected   string
	processing bool
	err        string
	width      int
	height     int
}

// NewView creates a file picker rooted at dir, or the working directory when dir is empty.
func NewView(s *styles.Styles, km *keymap.KeyMap, dir string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}

	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = domain.Extensions()
	// g starts generation, so jump-to-top moves to home/end.
	fp.KeyMap.GoToTop = key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first"))
	fp.KeyMap.GoToLast = key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:  s,
		keymap:  km,
		picker:  fp,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// Init reads the starting directory.
func (v *View) Init() tea.Cmd {
	return v.picker.Init()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Generate) {
			if v.processing {
				return v, nil
			}
			return v, func() tea.Msg { return messages.GenerateRequested{} }
		}
		if v.processing {
			// The selection must not change under a running pipeline.
			return v, nil
		}

	case spinner.TickMsg:
		if !v.processing {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)

	if ok, path := v.picker.DidSelectFile(msg); ok {
		return v, tea.Batch(cmd, func() tea.Msg { return messages.FileChosen{Path: path} })
	}
	if ok, path := v.picker.DidSelectDisabledFile(msg); ok {
		v.err = domain.MsgUnsupportedFile
		return v, tea.Batch(cmd, func() tea.Msg {
			return messages.FileRejected{Path: path, Err: domain.ErrUnsupportedFormat}
		})
	}
	return v, cmd
}

// View renders the picker, the selection and the pipeline state.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("studybuddy"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Pick a .pdf, .docx, .md or .txt file, then press g to generate a study guide."))
	b.WriteString("\n\n")

	b.WriteString(v.picker.View())
	b.WriteString("\n")

	if v.selected != "" {
		b.WriteString(v.styles.Normal.Render("Selected: "))
		b.WriteString(v.styles.Subtitle.Render(v.selected))
	} else {
		b.WriteString(v.styles.Muted.Render("No file selected"))
	}
	b.WriteString("\n")

	switch {
	case v.processing:
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Normal.Render(" Generating your study guide..."))
		b.WriteString("\n")
	case v.err != "":
		b.WriteString(v.styles.Error.Render(v.err))
		b.WriteString("\n")
	}

	return b.String()
}

// SetProcessing marks the pipeline as running or finished and
// returns the spinner tick when it starts.
func (v *View) SetProcessing(processing bool) tea.Cmd {
	v.processing = processing
	if processing {
		v.err = ""
		return v.spinner.Tick
	}
	return nil
}

// Processing reports whether a pipeline is running.
func (v *View) Processing() bool {
	return v.processing
}

// SetSelected records the display name of the selected document and clears the error.
func (v *View) SetSelected(name string) {
	v.selected = name
	v.err = ""
}

// Selected returns the display name of the selected document.
func (v *View) Selected() string {
	return v.selected
}

// SetError sets the user-facing error line.
func (v *View) SetError(message string) {
	v.err = message
}

// Err returns the user-facing error line.
func (v *View) Err() string {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
