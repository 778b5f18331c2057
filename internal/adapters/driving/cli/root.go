// Package cli provides the cobra command tree for studybuddy.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// SessionFactory creates a session bound to the configured model.
// It fails with domain.ErrLLMUnavailable when no model can be created.
type SessionFactory func(ctx context.Context) (driving.Session, error)

// Services holds the driving ports used by the commands.
type Services struct {
	Extraction driving.ExtractionService
	Settings   driving.SettingsService
	NewSession SessionFactory
}

var (
	extractionService driving.ExtractionService
	settingsService   driving.SettingsService
	newSession        SessionFactory
)

var errSessionUnavailable = errors.New("study guide generation is not configured")

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "Turn course material into a study guide",
	Long: `studybuddy reads a PDF, Word, Markdown or text file and asks a generative
model for a study guide: flashcards, multiple choice, fill in the blanks,
"what is this called?", definitions, programming questions and a 30-minute exam.

Configure the model with 'studybuddy settings' or the GEMINI_API_KEY environment
variable, then run 'studybuddy generate notes.pdf' or 'studybuddy tui'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose") //nolint:errcheck // flag is always registered
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print pipeline diagnostics to stderr")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	extractionService = s.Extraction
	settingsService = s.Settings
	newSession = s.NewSession
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openSession creates a session, turning a missing factory into ErrLLMUnavailable.
func openSession(ctx context.Context) (driving.Session, error) {
	if newSession == nil {
		return nil, domain.NewFailure(domain.ErrLLMUnavailable, errSessionUnavailable.Error(), nil)
	}
	return newSession(ctx)
}
