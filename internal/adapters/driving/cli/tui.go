package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive study guide viewer.

Pick a .pdf, .docx, .md or .txt file, press g to generate, then browse the
guide section by section. Passing a file skips the picker.

Controls:
  g              - Generate the study guide
  tab/shift+tab  - Next / previous section (or 1-7)
  space          - Flip flashcard
  ←/→            - Previous / next flashcard
  ↑/↓            - Select question
  1-4            - Choose a multiple choice option
  enter          - Reveal answer
  esc            - Back to file selection
  q              - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	session, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	ports := &tui.Ports{
		Session:  session,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		doc, err := domain.NewFileDocument(uuid.NewString(), path)
		if err != nil {
			return domain.NewFailure(domain.ErrReadFailure, domain.MsgReadFailure, err)
		}
		if err := session.Select(doc); err != nil {
			return err
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
