package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var orgsCmd = &cobra.Command{
	Use:     "orgs",
	Aliases: []string{"organizations"},
	Short:   "List configured organisations",
	RunE:    runOrgs,
}

func init() {
	orgsCmd.Flags().Bool("json", false, "output organisations as JSON")
	rootCmd.AddCommand(orgsCmd)
}

func runOrgs(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list organisations: %w", err)
	}

	if wantJSON(cmd) {
		return printJSON(cmd, sources)
	}

	if len(sources) == 0 {
		cmd.Println("No organisations configured.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORGANIZATION\tKIND\tCOUNTRY\tSTATUS\tEVENTS URL")
	for i := range sources {
		src := sources[i].WithDefaults()
		status := "enabled"
		if src.Disabled {
			status = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", src.OrganizationName, src.Kind, src.Country, status, src.EventsURL)
	}
	return w.Flush()
}
