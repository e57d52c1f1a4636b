package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
)

var askForceRebuild bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the knowledge base",
	Long: `Answers a question from the indexed documents, falling back to a web
search when the documents do not contain the answer.

With a question argument, prints one answer and exits. Without
arguments, enters an interactive loop reading questions from stdin;
type "exit" or "quit" to leave.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askForceRebuild, "rebuild", false, "rebuild the index before answering")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context(), askForceRebuild, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	if len(args) == 1 {
		printAnswer(cmd, app.answerer.Answer(cmd.Context(), args[0]))
		return nil
	}

	cmd.Println("Ask a question (type \"exit\" to quit):")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}
		printAnswer(cmd, app.answerer.Answer(cmd.Context(), question))
		cmd.Println()
	}
}

func printAnswer(cmd *cobra.Command, ans domain.Answer) {
	cmd.Println(ans.Text)
	cmd.Println()
	cmd.Printf("Source: %s\n", ans.Origin.Label())
	for _, src := range ans.Sources {
		cmd.Printf("  - %s\n", src)
	}
}
