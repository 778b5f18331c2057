package tui

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/views/guide"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is passed to the pipeline so shutdown aborts the model call.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	uploadView *upload.View
	guideView  *guide.View
	statusBar  *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// generating is true between GenerateRequested and GuideGenerated.
	generating bool

	// err holds the last pipeline error.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// A document already selected on the session is shown as selected.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		uploadView:  upload.NewView(s, km, ""),
		guideView:   guide.NewView(s, km),
		statusBar:   status.NewBar(s),
		currentView: messages.ViewUpload,
	}

	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			a.statusBar.SetModel(settings.LLM.Model)
		}
	}
	if doc := ports.Session.Snapshot().Document; !doc.IsZero() {
		a.uploadView.SetSelected(doc.Name)
	}
	a.syncStatus()

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("studybuddy"),
		a.uploadView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		// The file picker sizes itself from the window.
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewGuide:
			a.guideView, cmd = a.guideView.Update(msg)
		default:
			a.uploadView, cmd = a.uploadView.Update(msg)
		}
		a.syncStatus()
		return a, cmd

	case messages.FileChosen:
		a.selectFile(msg.Path)
		return a, nil

	case messages.FileRejected:
		logger.Debug("tui: rejected %s", msg.Path)
		a.err = msg.Err
		a.syncStatus()
		return a, nil

	case messages.GenerateRequested:
		return a, a.startGeneration()

	case messages.GuideGenerated:
		a.finishGeneration(msg)
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		a.syncStatus()
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.uploadView.SetError(domain.UserMessage(msg.Err))
		a.syncStatus()
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Spinner ticks and file picker reads go to the upload view even
	// while the guide is shown, so its state stays current.
	a.uploadView, cmd = a.uploadView.Update(msg)
	return a, cmd
}

// selectFile records the picked file on the session.
func (a *App) selectFile(path string) {
	doc, err := domain.NewFileDocument(uuid.NewString(), path)
	if err != nil {
		logger.Debug("tui: cannot open %s: %v", path, err)
		err = domain.NewFailure(domain.ErrReadFailure, domain.MsgReadFailure, err)
	} else {
		err = a.ports.Session.Select(doc)
	}

	if err != nil {
		a.err = err
		a.uploadView.SetError(domain.UserMessage(err))
	} else {
		a.err = nil
		a.uploadView.SetSelected(filepath.Base(path))
	}
	a.syncStatus()
}

// startGeneration runs the pipeline off the update loop. A second request
// while one is running is ignored.
func (a *App) startGeneration() tea.Cmd {
	if a.generating {
		return nil
	}
	a.generating = true
	a.err = nil
	a.syncStatus()

	session, ctx := a.ports.Session, a.ctx
	run := func() tea.Msg {
		guide, err := session.Generate(ctx)
		return messages.GuideGenerated{Guide: guide, Err: err}
	}
	return tea.Batch(a.uploadView.SetProcessing(true), run)
}

func (a *App) finishGeneration(msg messages.GuideGenerated) {
	a.generating = false
	a.uploadView.SetProcessing(false)

	if msg.Err != nil {
		a.err = msg.Err
		a.uploadView.SetError(domain.UserMessage(msg.Err))
		a.currentView = messages.ViewUpload
		a.syncStatus()
		return
	}

	a.err = nil
	a.guideView.SetGuide(msg.Guide, a.uploadView.Selected())
	a.currentView = messages.ViewGuide
	a.syncStatus()
}

// syncStatus updates the status bar for the current view and state.
func (a *App) syncStatus() {
	switch {
	case a.generating:
		a.statusBar.SetState(status.StateGenerating)
	case a.err != nil:
		a.statusBar.SetState(status.StateError)
	default:
		a.statusBar.SetState(status.StateReady)
	}
	a.statusBar.SetMessage(a.uploadView.Selected())

	if a.currentView == messages.ViewGuide {
		a.statusBar.SetBindings(a.guideView.Bindings())
	} else {
		a.statusBar.SetBindings(a.keymap.UploadHelp())
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewGuide:
		body = a.guideView.View()
	default:
		body = a.uploadView.View()
	}

	// Keep the status bar on the last line.
	bodyHeight := a.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Generating reports whether a pipeline is running.
func (a *App) Generating() bool {
	return a.generating
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.uploadView.SetDimensions(width, height-1)
	a.guideView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
