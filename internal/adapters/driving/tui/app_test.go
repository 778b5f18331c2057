package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

func newTestApp(t *testing.T, session *MockSession) *App {
	t.Helper()
	app, err := NewApp(&Ports{Session: session})
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return app
}

func testGuide() *domain.StudyGuide {
	g := &domain.StudyGuide{
		Flashcards: []domain.Flashcard{{Term: "Enzyme", Definition: "Biological catalyst"}},
		MCQs: []domain.MCQ{{
			Question:   "What lowers activation energy?",
			Options:    []string{"Heat", "Enzyme", "Water", "Light"},
			AnswerText: "Enzyme",
		}},
	}
	g.Normalise()
	return g
}

// runBatch executes cmd and any batched commands, returning the first
// GuideGenerated message. Spinner ticks are skipped.
func runBatch(t *testing.T, cmd tea.Cmd) messages.GuideGenerated {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if out, ok := c().(messages.GuideGenerated); ok {
				return out
			}
		}
	case messages.GuideGenerated:
		return msg
	}
	t.Fatal("no GuideGenerated message produced")
	return messages.GuideGenerated{}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(&Ports{Session: &MockSession{}})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewUpload, app.CurrentView())
	assert.False(t, app.Ready())
	assert.False(t, app.Generating())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingSession)
	assert.Nil(t, app)
}

func TestNewApp_ShowsPreselectedDocument(t *testing.T) {
	session := &MockSession{}
	require.NoError(t, session.Select(domain.NewBytesDocument("1", "week2.md", domain.MIMEMarkdown, []byte("# w2"))))

	app := newTestApp(t, session)

	assert.Contains(t, app.View(), "Selected: week2.md")
}

func TestNewApp_ShowsModelFromSettings(t *testing.T) {
	settings := &MockSettingsService{Settings: domain.DefaultAppSettings()}
	app, err := NewApp(&Ports{Session: &MockSession{}, Settings: settings})
	require.NoError(t, err)
	app.SetDimensions(160, 40)

	assert.Contains(t, app.View(), "gemini-2.5-pro")
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, &MockSession{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t, &MockSession{})

	assert.NotNil(t, app.Init())
}

func TestApp_View_BeforeReady(t *testing.T) {
	app, err := NewApp(&Ports{Session: &MockSession{}})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Session: &MockSession{}})
	require.NoError(t, err)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.True(t, app.Ready())
}

func TestApp_Update_Quit(t *testing.T) {
	app := newTestApp(t, &MockSession{})

	for _, msg := range []tea.Msg{
		tea.KeyMsg{Type: tea.KeyCtrlC},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}},
		messages.Quit{},
	} {
		_, cmd := app.Update(msg)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestApp_FileChosen_SelectsDocument(t *testing.T) {
	session := &MockSession{}
	app := newTestApp(t, session)

	app.Update(messages.FileChosen{Path: writeFile(t, "lecture.txt", "notes")})

	assert.Equal(t, "lecture.txt", session.Snapshot().Document.Name)
	assert.Equal(t, domain.MIMEText, session.Snapshot().Document.MIMEType)
	assert.NoError(t, app.Err())
	assert.Contains(t, app.View(), "Selected: lecture.txt")
}

func TestApp_FileChosen_MissingFile(t *testing.T) {
	session := &MockSession{}
	app := newTestApp(t, session)

	app.Update(messages.FileChosen{Path: filepath.Join(t.TempDir(), "gone.pdf")})

	assert.ErrorIs(t, app.Err(), domain.ErrReadFailure)
	assert.True(t, session.Snapshot().Document.IsZero())
	assert.Contains(t, app.View(), domain.MsgReadFailure)
}

func TestApp_FileChosen_Rejected(t *testing.T) {
	session := &MockSession{SelectFunc: func(domain.Document) error {
		return domain.NewFailure(domain.ErrUnsupportedFormat, domain.MsgUnsupportedFile, nil)
	}}
	app := newTestApp(t, session)

	app.Update(messages.FileChosen{Path: writeFile(t, "photo.png", "png")})

	assert.ErrorIs(t, app.Err(), domain.ErrUnsupportedFormat)
	assert.Contains(t, app.View(), domain.MsgUnsupportedFile)
}

func TestApp_GenerateKeyRequestsGeneration(t *testing.T) {
	app := newTestApp(t, &MockSession{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.GenerateRequested{}, cmd())
}

func TestApp_Generate_Success(t *testing.T) {
	guide := testGuide()
	session := &MockSession{GenerateFunc: func(context.Context) (*domain.StudyGuide, error) {
		return guide, nil
	}}
	app := newTestApp(t, session)
	app.Update(messages.FileChosen{Path: writeFile(t, "enzymes.md", "# Enzymes")})

	_, cmd := app.Update(messages.GenerateRequested{})
	assert.True(t, app.Generating())
	assert.Contains(t, app.View(), "Generating your study guide...")

	result := runBatch(t, cmd)
	require.NoError(t, result.Err)
	app.Update(result)

	assert.False(t, app.Generating())
	assert.Equal(t, messages.ViewGuide, app.CurrentView())
	out := app.View()
	assert.Contains(t, out, "Study guide: enzymes.md")
	assert.Contains(t, out, "Enzyme")
	assert.Contains(t, out, "space: flip")
}

func TestApp_Generate_IgnoredWhileRunning(t *testing.T) {
	session := &MockSession{}
	app := newTestApp(t, session)

	_, first := app.Update(messages.GenerateRequested{})
	_, second := app.Update(messages.GenerateRequested{})

	assert.NotNil(t, first)
	assert.Nil(t, second)
}

func TestApp_Generate_Failure(t *testing.T) {
	failed := domain.NewFailure(domain.ErrGenerationFailure, domain.MsgGeneration, errors.New("500"))
	session := &MockSession{GenerateFunc: func(context.Context) (*domain.StudyGuide, error) {
		return nil, failed
	}}
	app := newTestApp(t, session)

	_, cmd := app.Update(messages.GenerateRequested{})
	app.Update(runBatch(t, cmd))

	assert.False(t, app.Generating())
	assert.Equal(t, messages.ViewUpload, app.CurrentView())
	assert.ErrorIs(t, app.Err(), domain.ErrGenerationFailure)
	assert.Contains(t, app.View(), "Failed to generate study guide")
}

func TestApp_GuideView_EscReturnsToUpload(t *testing.T) {
	app := newTestApp(t, &MockSession{})
	app.Update(messages.GuideGenerated{Guide: testGuide()})
	require.Equal(t, messages.ViewGuide, app.CurrentView())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewUpload, app.CurrentView())
}

func TestApp_GuideView_ForwardsKeys(t *testing.T) {
	app := newTestApp(t, &MockSession{})
	app.Update(messages.GuideGenerated{Guide: testGuide()})

	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Contains(t, app.View(), "What lowers activation energy?")
	assert.Contains(t, app.View(), "enter: reveal")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, &MockSession{})

	app.Update(messages.ErrorOccurred{Err: errors.New("disk on fire")})

	assert.EqualError(t, app.Err(), "disk on fire")
	assert.Contains(t, app.View(), "disk on fire")
}

func TestApp_View_FillsTerminalExactly(t *testing.T) {
	settings := &MockSettingsService{Settings: domain.DefaultAppSettings()}
	app, err := NewApp(&Ports{Session: &MockSession{}, Settings: settings})
	require.NoError(t, err)

	for _, size := range []struct{ w, h int }{{80, 24}, {120, 40}, {200, 50}} {
		app.SetDimensions(size.w, size.h)
		assert.Len(t, strings.Split(app.View(), "\n"), size.h, "upload %dx%d", size.w, size.h)
	}

	app.Update(messages.GuideGenerated{Guide: testGuide()})
	app.SetDimensions(80, 24)
	lines := strings.Split(app.View(), "\n")
	assert.Len(t, lines, 24)
	assert.Contains(t, lines[len(lines)-1], "space: flip")
}
