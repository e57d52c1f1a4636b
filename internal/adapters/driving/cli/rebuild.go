package cli

import (
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the vector index from the configured PDF files",
	Long: `Loads every configured PDF, splits the pages into chunks, embeds
them and writes a fresh index. Any existing index is replaced.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Println("Rebuilding index")
	cmd.Printf("  Documents:   %s\n", strings.Join(cfg.PDFFiles, ", "))
	cmd.Printf("  Index dir:   %s\n", cfg.IndexDir)
	cmd.Printf("  Chunking:    %d bytes, %d overlap\n", cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	cmd.Printf("  Embeddings:  %s\n", cfg.Embedding.Model)
	cmd.Println()

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "embedding chunks")
		}
		_ = bar.Set(done)
	}

	app, err := newApp(cmd.Context(), true, progress)
	if err != nil {
		return err
	}
	defer app.Close()

	cmd.Printf("\nIndexed %d chunks at %s\n", app.index.Len(), cfg.IndexDir)
	return nil
}
