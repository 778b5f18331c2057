package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Generate study guides for files dropped into a folder",
	Long: `Watch a folder and generate a study guide for every .pdf, .docx, .md or .txt
file created in it. Files are processed one at a time, once they have stopped
changing. Hidden files and editor lock files are ignored.

Stop with ctrl+c.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "output format: text or json (default: text on a terminal, json otherwise)")
	watchCmd.Flags().Duration("settle", watch.DefaultSettle, "how long a file must stop changing before it is processed")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	format, err := outputFormat(cmd, out)
	if err != nil {
		return err
	}
	settle, err := cmd.Flags().GetDuration("settle")
	if err != nil {
		return fmt.Errorf("getting settle flag: %w", err)
	}

	session, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Dir:     args[0],
		Session: session,
		Out:     out,
		Format:  format,
		Settle:  settle,
	})
	if err != nil {
		return err
	}

	cmd.PrintErrf("Watching %s (ctrl+c to stop)\n", args[0])
	return w.Run(cmd.Context())
}
