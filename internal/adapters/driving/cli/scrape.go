package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siria/internal/core/domain"
)

var (
	scrapeOrg         string
	scrapeConcurrency int
	scrapeRaw         bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Collect events without storing them",
	Long: `Runs the source adapters and prints the events they produce.
Events are classified and deduplicated unless --raw is given.
Nothing is written to the event store; use 'siria update' for that.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeOrg, "org", "", "only collect from this organisation")
	scrapeCmd.Flags().IntVarP(&scrapeConcurrency, "concurrency", "c", 0, "maximum sources fetched at once (default 5)")
	scrapeCmd.Flags().BoolVar(&scrapeRaw, "raw", false, "skip classification and deduplication")
	scrapeCmd.Flags().Bool("json", false, "output events as JSON")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	if collector == nil {
		return errors.New("collector not configured")
	}

	ctx := cmd.Context()

	var events []domain.Event
	if scrapeOrg != "" {
		var err error
		events, err = collector.RunOne(ctx, scrapeOrg)
		if err != nil {
			return fmt.Errorf("scrape %s failed: %w", scrapeOrg, err)
		}
	} else {
		events = collector.RunAll(ctx, scrapeConcurrency)
	}

	if !scrapeRaw {
		if classifier != nil {
			events = classifier.ClassifyBatch(ctx, events)
		}
		if deduplicator != nil {
			events = deduplicator.Deduplicate(events, true)
		}
	}

	return printEvents(cmd, events)
}
