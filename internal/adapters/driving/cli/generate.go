package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/render"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a study guide from a file",
	Long: `Extract the text of a .pdf, .docx, .md or .txt file and generate a study guide.

The guide is printed as a readable study sheet when stdout is a terminal and
as JSON otherwise. Use --output to choose explicitly.

Examples:
  studybuddy generate lecture-03.pdf
  studybuddy generate notes.md --output json > guide.json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "output format: text or json (default: text on a terminal, json otherwise)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	format, err := outputFormat(cmd, out)
	if err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	doc, err := domain.NewFileDocument(uuid.NewString(), path)
	if err != nil {
		logger.Debug("cannot open %s: %v", path, err)
		return domain.NewFailure(domain.ErrReadFailure, domain.MsgReadFailure, err)
	}

	session, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	if err := session.Select(doc); err != nil {
		return err
	}

	guide, err := session.Generate(cmd.Context())
	if err != nil {
		return err
	}
	return render.Write(out, guide, format)
}

// outputFormat resolves --output, defaulting by whether out is a terminal.
func outputFormat(cmd *cobra.Command, out io.Writer) (render.Format, error) {
	if cmd.Flags().Changed("output") {
		value, err := cmd.Flags().GetString("output")
		if err != nil {
			return "", fmt.Errorf("getting output flag: %w", err)
		}
		return render.ParseFormat(value)
	}
	if isTerminal(out) {
		return render.FormatText, nil
	}
	return render.FormatJSON, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
