package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siria/internal/core/domain"
)

var eventsFilter domain.EventFilter

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List stored events",
	Long: `Lists events from the local store, ordered by date.

The category may be given by name or by its number in the taxonomy:
  1. Inclusión laboral
  2. Formación profesional
  3. Derechos de infancia, juventud y mujeres
  4. Acompañamiento a migrantes
  5. Cooperación internacional y desarrollo
  6. Uso de IA y aplicaciones informáticas en el tercer sector`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsFilter.Category, "category", "", "category name or number (1-6)")
	eventsCmd.Flags().StringVar(&eventsFilter.Country, "country", "", "country, e.g. España")
	eventsCmd.Flags().StringVar(&eventsFilter.Organization, "org", "", "organisation name")
	eventsCmd.Flags().StringVar(&eventsFilter.From, "from", "", "first date, YYYY-MM-DD")
	eventsCmd.Flags().StringVar(&eventsFilter.To, "to", "", "last date, YYYY-MM-DD")
	eventsCmd.Flags().IntVarP(&eventsFilter.Limit, "limit", "n", 0, "maximum number of events (0 = all)")
	eventsCmd.Flags().Bool("json", false, "output events as JSON")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, _ []string) error {
	if eventService == nil {
		return errors.New("event service not configured")
	}

	filter := eventsFilter
	category, err := resolveCategory(filter.Category)
	if err != nil {
		return err
	}
	filter.Category = category

	for _, d := range []string{filter.From, filter.To} {
		if _, err := time.Parse(time.DateOnly, d); d != "" && err != nil {
			return fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, d)
		}
	}

	events, err := eventService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	return printEvents(cmd, events)
}

// resolveCategory accepts a taxonomy name or its 1-based number.
func resolveCategory(s string) (string, error) {
	if s == "" || domain.IsTaxonomyCategory(s) {
		return s, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if c, ok := domain.CategoryByIndex(n); ok {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, s)
}
