// Package cli provides the cobra command tree for the siria binary.
package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siria/internal/core/ports/driving"
	"github.com/custodia-labs/siria/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var verbose bool

// Services wired by main. Commands check for nil and report
// "not configured" instead of panicking.
var (
	collector       driving.Collector
	classifier      driving.Classifier
	deduplicator    driving.Deduplicator
	updateService   driving.UpdateService
	eventService    driving.EventService
	sourceService   driving.SourceService
	settingsService driving.SettingsService
	scheduler       driving.Scheduler
	metricsHandler  http.Handler
)

// Services holds the driving ports the commands use.
type Services struct {
	Collector    driving.Collector
	Classifier   driving.Classifier
	Deduplicator driving.Deduplicator
	Update       driving.UpdateService
	Events       driving.EventService
	Sources      driving.SourceService
	Settings     driving.SettingsService
	Scheduler    driving.Scheduler

	// MetricsHandler serves /metrics for long-running commands. Optional.
	MetricsHandler http.Handler
}

var rootCmd = &cobra.Command{
	Use:   "siria",
	Short: "Collect and classify third-sector events",
	Long: `SIRIA gathers event announcements from third-sector organisations,
normalises them, classifies them into a fixed taxonomy and removes
duplicates before storing them locally.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	collector = s.Collector
	classifier = s.Classifier
	deduplicator = s.Deduplicator
	updateService = s.Update
	eventService = s.Events
	sourceService = s.Sources
	settingsService = s.Settings
	scheduler = s.Scheduler
	metricsHandler = s.MetricsHandler
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
