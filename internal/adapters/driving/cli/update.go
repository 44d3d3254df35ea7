package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	updateOrg string
	runsLimit int
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run the ingestion pipeline and store the result",
	Long: `Collects from every configured source, classifies, deduplicates,
keeps events within the configured date window and replaces the stored set.
With --org only that organisation is collected and its events are appended.`,
	RunE: runUpdate,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent pipeline runs",
	RunE:  runRuns,
}

func init() {
	updateCmd.Flags().StringVar(&updateOrg, "org", "", "only update this organisation")
	updateCmd.Flags().Bool("json", false, "output the run report as JSON")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "maximum number of runs")
	runsCmd.Flags().Bool("json", false, "output runs as JSON")
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(runsCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	if updateService == nil {
		return errors.New("update service not configured")
	}

	ctx := cmd.Context()

	if updateOrg != "" {
		report, err := updateService.RunOrganization(ctx, updateOrg)
		if report != nil {
			if perr := printReport(cmd, report); perr != nil {
				return perr
			}
		}
		if err != nil {
			return fmt.Errorf("update failed: %w", err)
		}
		return nil
	}

	report, err := updateService.RunFullUpdate(ctx)
	if report != nil {
		if perr := printReport(cmd, report); perr != nil {
			return perr
		}
	}
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return nil
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if updateService == nil {
		return errors.New("update service not configured")
	}

	runs, err := updateService.RecentRuns(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if wantJSON(cmd) {
		return printJSON(cmd, runs)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for i := range runs {
		r := &runs[i]
		scope := "all"
		if r.Organization != "" {
			scope = r.Organization
		}
		cmd.Printf("%s  %-7s  %-20s  stored=%d  errors=%d\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"), r.Status, scope, r.EventsStored, len(r.Errors))
	}
	return nil
}
