package cli

import (
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [pdf]",
	Short: "Summarize one indexed document",
	Long: `Retrieves chunks belonging to the given source file from the index
and asks the model for a short summary. The path must match one of the
configured pdf_files entries.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context(), false, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.answerer.SummarizeDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cmd.Println(summary)
	return nil
}
