package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the self-hosted court index",
	Long: `Commands for the Elasticsearch index used when search.provider is
"elastic".`,
}

var indexLoadCmd = &cobra.Command{
	Use:   "load [file.json]",
	Short: "Load court records into the index",
	Long: `Reads a JSON array of court records, in the same shape the Places API
returns them, and writes them to the index. Records are keyed by place_id,
so loading a file again replaces earlier copies.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexLoad,
}

func init() {
	indexCmd.AddCommand(indexLoadCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexLoad(cmd *cobra.Command, args []string) error {
	if courtIndexer == nil {
		return errors.New("court index not configured: set search.provider to elastic")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var courts []domain.Court
	if err := json.Unmarshal(data, &courts); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if len(courts) == 0 {
		cmd.Println("No courts to index.")
		return nil
	}

	ctx := commandContext(cmd)
	if err := courtIndexer.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("preparing index: %w", err)
	}

	n, err := courtIndexer.Index(ctx, courts)
	if err != nil {
		return fmt.Errorf("indexing courts: %w", err)
	}
	cmd.Printf("Indexed %d of %d courts.\n", n, len(courts))
	return nil
}
