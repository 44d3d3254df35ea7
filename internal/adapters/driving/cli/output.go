package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// wantJSON reports whether a command should print JSON. An explicit --json
// flag wins; otherwise JSON is used when stdout is not a terminal.
func wantJSON(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("json")
		return err == nil && v
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	return !ok || !term.IsTerminal(int(out.Fd()))
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func printEvents(cmd *cobra.Command, events []domain.Event) error {
	if wantJSON(cmd) {
		if events == nil {
			events = []domain.Event{}
		}
		return printJSON(cmd, events)
	}

	if len(events) == 0 {
		cmd.Println("No events found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tORGANIZATION\tCATEGORY\tNAME")
	for i := range events {
		e := &events[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date, e.Organization, e.Category, truncate(e.Name, 60))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cmd.Printf("\n%d events\n", len(events))
	return nil
}

func printReport(cmd *cobra.Command, r *domain.RunReport) error {
	if wantJSON(cmd) {
		return printJSON(cmd, r)
	}

	cmd.Printf("Run %s: %s\n", r.ID, r.Status)
	if r.Organization != "" {
		cmd.Printf("  Organization: %s\n", r.Organization)
	}
	cmd.Printf("  Scraped:      %d\n", r.EventsScraped)
	cmd.Printf("  Classified:   %d\n", r.EventsClassified)
	cmd.Printf("  Deduplicated: %d\n", r.EventsDeduplicated)
	cmd.Printf("  Stored:       %d\n", r.EventsStored)
	cmd.Printf("  Duration:     %s\n", r.Duration().Round(time.Millisecond))
	for _, e := range r.Errors {
		cmd.Printf("  Error: %s\n", e)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
