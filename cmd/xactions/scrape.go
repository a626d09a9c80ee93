package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/actions"
)

var (
	scrapeKind string
	scrapeMax  int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Collect records from a page without acting on them",
	Long: `Scrolls the given page and extracts records of the chosen kind (post,
account, conversation, community, space, notification), printing them as
JSON. Nothing is clicked and nothing enters the ledger.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ex, err := actions.ExtractorFor(scrapeKind)
		if err != nil {
			return err
		}

		records, err := a.Scrape(cmd.Context(), actions.ScrapeOptions{
			URL:       args[0],
			Extractor: ex,
			Max:       scrapeMax,
			Direction: actions.DirectionFor(ex.Kind()),
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeKind, "kind", "post", "record kind to extract")
	scrapeCmd.Flags().IntVar(&scrapeMax, "max", 100, "maximum records to collect")
	rootCmd.AddCommand(scrapeCmd)
}
